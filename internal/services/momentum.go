package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/facebookgo/clock"

	"github.com/mindpace/mindpace-backend/internal/config"
	"github.com/mindpace/mindpace-backend/internal/data/repos"
	"github.com/mindpace/mindpace-backend/internal/domain"
	"github.com/mindpace/mindpace-backend/internal/platform/apierr"
	"github.com/mindpace/mindpace-backend/internal/platform/logger"
)

type MomentumService interface {
	RecordActivity(userID string, activity domain.ActivityType, value float64) (*domain.MomentumRecord, error)
	Status(userID string) (*domain.MomentumRecord, error)
	ComebackPath(userID string) (*domain.ComebackPlan, error)
	BoostNotification(userID string) (*domain.BoostNotification, error)
}

type momentumState struct {
	rec           domain.MomentumRecord
	lastDecayAt   time.Time
	countersDay   string
	lastActiveDay string
	lastLoginDay  string
	lastWeek      string
	prevScore     float64
}

type momentumService struct {
	log    *logger.Logger
	cfg    config.EngineConfig
	clk    clock.Clock
	events repos.EngagementEventRepo

	mu    sync.Mutex
	users map[string]*momentumState
}

func NewMomentumService(baseLog *logger.Logger, cfg config.EngineConfig, clk clock.Clock, events repos.EngagementEventRepo) MomentumService {
	return &momentumService{
		log:    baseLog.With("service", "MomentumService"),
		cfg:    cfg,
		clk:    clk,
		events: events,
		users:  make(map[string]*momentumState),
	}
}

func (s *momentumService) RecordActivity(userID string, activity domain.ActivityType, value float64) (*domain.MomentumRecord, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apierr.Invalid("missing_user_id", fmt.Errorf("user id is required"))
	}
	if !activity.Valid() {
		return nil, apierr.Invalidf("unknown_activity_type", "unknown activity type %q", activity)
	}
	if value < 0 {
		return nil, apierr.Invalidf("negative_value", "activity value must be non-negative, got %v", value)
	}
	if value == 0 {
		value = 1
	}
	now := s.clk.Now()

	s.mu.Lock()
	st := s.userLocked(userID, now)
	s.decayLocked(st, now)
	s.rollDayLocked(st, now)
	rec := &st.rec

	today := dayKey(now)
	contribution := 0.0
	switch activity {
	case domain.ActivitySessionComplete:
		rec.SessionsToday += int(value)
		contribution = 10 * value
	case domain.ActivityItemComplete:
		rec.ItemsToday += int(value)
		contribution = 3 * value
	case domain.ActivityXPEarned:
		rec.XPToday += value
		contribution = 0.5 * value
	case domain.ActivityDailyLogin:
		// Logging in twice the same day contributes once.
		if st.lastLoginDay != today {
			st.lastLoginDay = today
			contribution = 5
		}
	}

	// Streaks advance at most once per qualifying calendar day.
	if st.lastActiveDay != today {
		if st.lastActiveDay == dayKey(now.Add(-24*time.Hour)) {
			rec.DailyStreak++
		} else {
			rec.DailyStreak = 1
		}
		st.lastActiveDay = today
	}
	week := weekKey(now)
	if st.lastWeek != week {
		if st.lastWeek == weekKey(now.Add(-7*24*time.Hour)) {
			rec.WeeklyStreak++
		} else {
			rec.WeeklyStreak = 1
		}
		st.lastWeek = week
	}

	rec.Score = clampFloat(rec.Score+contribution, 0, 100)
	delta := rec.Score - st.prevScore
	rec.Velocity = 0.7*rec.Velocity + 0.3*delta
	st.prevScore = rec.Score
	rec.LastActivityAt = now
	st.lastDecayAt = now

	s.recomputeLocked(st, now)
	out := *rec
	s.mu.Unlock()

	appendEvent(s.events, s.log, userID, "momentum."+string(activity), map[string]any{
		"value": value,
		"score": out.Score,
	})
	return &out, nil
}

// Status never fails: an unseen user gets the baseline record. Decay is
// applied lazily at read time.
func (s *momentumService) Status(userID string) (*domain.MomentumRecord, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apierr.Invalid("missing_user_id", fmt.Errorf("user id is required"))
	}
	now := s.clk.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.userLocked(userID, now)
	s.decayLocked(st, now)
	s.rollDayLocked(st, now)
	s.recomputeLocked(st, now)
	out := st.rec
	return &out, nil
}

func (s *momentumService) ComebackPath(userID string) (*domain.ComebackPlan, error) {
	rec, err := s.Status(userID)
	if err != nil {
		return nil, err
	}

	plan := &domain.ComebackPlan{UserID: rec.UserID, Score: rec.Score}
	switch {
	case rec.Score < 20:
		plan.Message = "Start tiny. One small win rebuilds the habit."
		plan.Steps = []domain.ComebackStep{
			{Order: 1, Action: "Complete one 2-minute micro-unit", TargetMinutes: 2, Reward: "quick_win_badge"},
			{Order: 2, Action: "Do a 5-minute review of familiar material", TargetMinutes: 5, Reward: "warmup_xp"},
			{Order: 3, Action: "Finish one full 15-minute session", TargetMinutes: 15, Reward: "comeback_bonus"},
		}
	case rec.Score < 45:
		plan.Message = "You're close. Two short sessions bring the momentum back."
		plan.Steps = []domain.ComebackStep{
			{Order: 1, Action: "Do a 5-minute review", TargetMinutes: 5, Reward: "warmup_xp"},
			{Order: 2, Action: "Finish one full 15-minute session", TargetMinutes: 15, Reward: "comeback_bonus"},
		}
	default:
		plan.Message = "Momentum is healthy — keep the rhythm."
		plan.Steps = []domain.ComebackStep{
			{Order: 1, Action: "Complete today's regular session", TargetMinutes: 20, Reward: "streak_xp"},
		}
	}
	return plan, nil
}

// BoostNotification returns nil when nothing warrants a proactive nudge.
func (s *momentumService) BoostNotification(userID string) (*domain.BoostNotification, error) {
	rec, err := s.Status(userID)
	if err != nil {
		return nil, err
	}

	for _, r := range rec.RiskFactors {
		if r == domain.RiskStreakAtRisk {
			return &domain.BoostNotification{
				UserID:  rec.UserID,
				Kind:    domain.RiskStreakAtRisk,
				Title:   "Your streak needs you",
				Message: fmt.Sprintf("A quick session today keeps your %d-day streak alive.", rec.DailyStreak),
			}, nil
		}
	}
	for _, b := range rec.BoostOpportunities {
		switch b {
		case domain.BoostStreakMilestone:
			return &domain.BoostNotification{
				UserID:  rec.UserID,
				Kind:    domain.BoostStreakMilestone,
				Title:   "Milestone in sight",
				Message: fmt.Sprintf("One more day makes it %d in a row.", rec.DailyStreak+1),
			}, nil
		case domain.BoostPushToNextBand:
			return &domain.BoostNotification{
				UserID:  rec.UserID,
				Kind:    domain.BoostPushToNextBand,
				Title:   "So close to strong momentum",
				Message: "A single session would push your momentum into the next band.",
			}, nil
		}
	}
	return nil, nil
}

func (s *momentumService) userLocked(userID string, now time.Time) *momentumState {
	if st, ok := s.users[userID]; ok {
		return st
	}
	st := &momentumState{
		rec: domain.MomentumRecord{
			UserID:             userID,
			Score:              s.cfg.MomentumBaseline,
			State:              domain.MomentumSteady,
			Trend:              "flat",
			RiskFactors:        []string{},
			BoostOpportunities: []string{},
			LastActivityAt:     now,
		},
		lastDecayAt: now,
		countersDay: dayKey(now),
		prevScore:   s.cfg.MomentumBaseline,
	}
	s.users[userID] = st
	return st
}

// decayLocked applies the lazy time decay: DecayPerDay points per full day
// since the last update, floored at zero. No background clock exists; this
// runs on every read and write.
func (s *momentumService) decayLocked(st *momentumState, now time.Time) {
	days := int(now.Sub(st.lastDecayAt).Hours() / 24)
	if days <= 0 {
		return
	}
	st.rec.Score = clampFloat(st.rec.Score-s.cfg.DecayPerDay*float64(days), 0, 100)
	st.lastDecayAt = st.lastDecayAt.Add(time.Duration(days) * 24 * time.Hour)
	st.prevScore = st.rec.Score
}

func (s *momentumService) rollDayLocked(st *momentumState, now time.Time) {
	today := dayKey(now)
	if st.countersDay == today {
		return
	}
	st.countersDay = today
	st.rec.SessionsToday = 0
	st.rec.ItemsToday = 0
	st.rec.XPToday = 0
}

// recomputeLocked rebuilds the derived fields from current state. Risk and
// boost sets are replaced wholesale, never accumulated.
func (s *momentumService) recomputeLocked(st *momentumState, now time.Time) {
	rec := &st.rec

	switch {
	case rec.Score >= 80:
		rec.State = domain.MomentumSurging
	case rec.Score >= 60:
		rec.State = domain.MomentumStrong
	case rec.Score >= 40:
		rec.State = domain.MomentumSteady
	case rec.Score >= 20:
		rec.State = domain.MomentumCooling
	case rec.Score > 0:
		rec.State = domain.MomentumFading
	default:
		rec.State = domain.MomentumDormant
	}

	switch {
	case rec.Velocity > 0.5:
		rec.Trend = "rising"
	case rec.Velocity < -0.5:
		rec.Trend = "falling"
	default:
		rec.Trend = "flat"
	}

	risks := []string{}
	if rec.Score < 30 {
		risks = append(risks, domain.RiskMomentumLow)
	}
	if rec.DailyStreak >= 3 && st.lastActiveDay != dayKey(now) {
		risks = append(risks, domain.RiskStreakAtRisk)
	}
	if now.Sub(rec.LastActivityAt) > 48*time.Hour {
		risks = append(risks, domain.RiskDisengagement)
	}
	rec.RiskFactors = risks

	boosts := []string{}
	if rec.DailyStreak > 0 && rec.DailyStreak%7 == 6 {
		boosts = append(boosts, domain.BoostStreakMilestone)
	}
	if rec.Score >= 40 && rec.Score < 60 {
		boosts = append(boosts, domain.BoostPushToNextBand)
	}
	if rec.ItemsToday > 0 && rec.SessionsToday == 0 {
		boosts = append(boosts, domain.BoostFinishASession)
	}
	rec.BoostOpportunities = boosts
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func weekKey(t time.Time) string {
	y, w := t.ISOWeek()
	return fmt.Sprintf("%d-%02d", y, w)
}
