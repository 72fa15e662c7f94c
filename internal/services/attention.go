package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/facebookgo/clock"
	"github.com/google/uuid"

	"github.com/mindpace/mindpace-backend/internal/config"
	"github.com/mindpace/mindpace-backend/internal/domain"
	"github.com/mindpace/mindpace-backend/internal/platform/apierr"
	"github.com/mindpace/mindpace-backend/internal/platform/logger"
)

type AttentionService interface {
	StartSession(userID string, difficulty float64) (*domain.AttentionSession, error)
	RecordSignal(sessionID string, signal domain.AttentionSignal, value float64) (*domain.SignalResult, error)
	OptimalConfig(userID, contentType string) (*domain.SessionConfig, error)
	Summary(userID string) *domain.AttentionSummary
}

// sessionState is the mutable book-keeping behind one attention session.
// activeSince is zero whenever the distraction-free streak is broken.
type sessionState struct {
	session         domain.AttentionSession
	lastSignalAt    time.Time
	activeSince     time.Time
	lastDistraction time.Time
	flowCredited    float64
}

type attentionService struct {
	log *logger.Logger
	cfg config.EngineConfig
	clk clock.Clock

	mu       sync.Mutex
	profiles map[string]*domain.AttentionProfile
	sessions map[string]*sessionState
}

func NewAttentionService(baseLog *logger.Logger, cfg config.EngineConfig, clk clock.Clock) AttentionService {
	return &attentionService{
		log:      baseLog.With("service", "AttentionService"),
		cfg:      cfg,
		clk:      clk,
		profiles: make(map[string]*domain.AttentionProfile),
		sessions: make(map[string]*sessionState),
	}
}

func (s *attentionService) StartSession(userID string, difficulty float64) (*domain.AttentionSession, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apierr.Invalid("missing_user_id", fmt.Errorf("user id is required"))
	}
	difficulty = clamp01(difficulty)
	now := s.clk.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.profileLocked(userID, now)

	// Harder content gets a shorter optimal window. Fixed at start; only the
	// break schedule advances afterwards.
	optimal := clampFloat(p.PreferredLengthMins*(1.2-0.5*difficulty), s.cfg.MinSessionMinutes, s.cfg.MaxSessionMinutes)

	risk := s.cfg.RiskBase + s.cfg.RiskDifficultyWeight*difficulty
	if hourIn(p.DistractionHours, now.Hour()) {
		risk += s.cfg.RiskDistractionHourBonus
	}
	risk = clamp01(risk)

	firstBreak := now.Add(minutes(optimal * s.cfg.BreakPointFraction))
	sess := domain.AttentionSession{
		ID:                   uuid.New().String(),
		UserID:               userID,
		ContentDifficulty:    difficulty,
		StartedAt:            now,
		OptimalLengthMinutes: optimal,
		NextBreakAt:          &firstBreak,
		DistractionRisk:      risk,
	}
	s.sessions[sess.ID] = &sessionState{
		session:      sess,
		lastSignalAt: now,
		activeSince:  now,
	}
	p.CurrentSessionID = sess.ID
	p.UpdatedAt = now

	s.log.Debug("attention session started", "session_id", sess.ID, "user_id", userID, "optimal_minutes", optimal)
	out := sess
	return &out, nil
}

func (s *attentionService) RecordSignal(sessionID string, signal domain.AttentionSignal, value float64) (*domain.SignalResult, error) {
	if !signal.Valid() {
		return nil, apierr.Invalidf("unknown_signal_type", "unknown signal type %q", signal)
	}
	now := s.clk.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[strings.TrimSpace(sessionID)]
	if !ok {
		return nil, apierr.NotFound("session_not_found", fmt.Errorf("unknown session %q", sessionID))
	}
	sess := &st.session
	p := s.profileLocked(sess.UserID, now)

	res := &domain.SignalResult{SessionID: sess.ID, Signal: signal}

	switch signal {
	case domain.SignalActive:
		if st.activeSince.IsZero() {
			st.activeSince = now
			st.flowCredited = 0
		}
		streak := now.Sub(st.activeSince).Minutes()
		if streak >= s.cfg.FlowThresholdMinutes {
			delta := streak - st.flowCredited
			if delta > 0 {
				p.TotalFlowMinutes += delta
				st.flowCredited = streak
			}
			if streak > p.BestFlowStreakMinutes {
				p.BestFlowStreakMinutes = streak
			}
			res.InFlow = true
			// Hours where the user reaches flow are peak hours; sets stay
			// disjoint with distraction-prone hours.
			if !hourIn(p.DistractionHours, now.Hour()) {
				p.PeakHours = appendHour(p.PeakHours, now.Hour())
			}
		}
		sess.DistractionRisk = clamp01(sess.DistractionRisk * 0.95)

	case domain.SignalIdle:
		s.endStreakLocked(st, p, now)
		sess.DistractionRisk = clamp01(sess.DistractionRisk + 0.08)

	case domain.SignalDistraction:
		s.endStreakLocked(st, p, now)
		st.lastDistraction = now
		sess.DistractionRisk = clamp01(sess.DistractionRisk + 0.25)
		if !hourIn(p.PeakHours, now.Hour()) && !hourIn(p.DistractionHours, now.Hour()) {
			// A repeat offender hour becomes distraction-prone; sets stay disjoint.
			if sess.DistractionRisk >= s.cfg.BreakRiskThreshold {
				p.DistractionHours = appendHour(p.DistractionHours, now.Hour())
			}
		}
		if sess.DistractionRisk >= s.cfg.BreakRiskThreshold {
			res.BreakRecommended = true
			at := now
			sess.NextBreakAt = &at
		}

	case domain.SignalReturn:
		if !st.lastDistraction.IsZero() {
			recovery := now.Sub(st.lastDistraction)
			p.FlowTriggers = appendCapped(p.FlowTriggers, fmt.Sprintf("recovered_after_%ds", int(recovery.Seconds())), 20)
			st.lastDistraction = time.Time{}
		}
		sess.DistractionRisk = clamp01(sess.DistractionRisk * 0.6)
		st.activeSince = now
		st.flowCredited = 0
		next := now.Add(minutes(sess.OptimalLengthMinutes * s.cfg.BreakPointFraction))
		sess.NextBreakAt = &next

	case domain.SignalProgress:
		sess.DistractionRisk = clamp01(sess.DistractionRisk - 0.1)
	}

	st.lastSignalAt = now
	p.UpdatedAt = now

	res.DistractionRisk = sess.DistractionRisk
	res.NextBreakAt = sess.NextBreakAt
	res.FlowMinutes = p.TotalFlowMinutes
	return res, nil
}

// endStreakLocked closes the current distraction-free streak and folds its
// length into the rolling focus average.
func (s *attentionService) endStreakLocked(st *sessionState, p *domain.AttentionProfile, now time.Time) {
	if st.activeSince.IsZero() {
		return
	}
	length := now.Sub(st.activeSince).Minutes()
	if length > 0.5 {
		p.AvgFocusMinutes = 0.8*p.AvgFocusMinutes + 0.2*length
	}
	st.activeSince = time.Time{}
	st.flowCredited = 0
}

func (s *attentionService) OptimalConfig(userID, contentType string) (*domain.SessionConfig, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apierr.Invalid("missing_user_id", fmt.Errorf("user id is required"))
	}
	now := s.clk.Now()

	s.mu.Lock()
	p, ok := s.profiles[userID]
	var peak, distraction []int
	base := s.cfg.DefaultSessionMinutes
	if ok {
		peak = append([]int(nil), p.PeakHours...)
		distraction = append([]int(nil), p.DistractionHours...)
		base = p.PreferredLengthMins
	}
	s.mu.Unlock()

	inPeak := hourIn(peak, now.Hour())
	inDistraction := hourIn(distraction, now.Hour())

	rec := base
	if inPeak {
		rec *= 1.2
	}
	if inDistraction {
		rec *= 0.75
	}
	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "video":
		rec *= 1.15
	case "quiz", "drill":
		rec *= 0.85
	}
	rec = clampFloat(rec, s.cfg.MinSessionMinutes, s.cfg.MaxSessionMinutes)

	breakEvery := rec * s.cfg.BreakPointFraction
	breakLen := 60
	if inDistraction {
		breakEvery = rec * s.cfg.BreakPointFraction * 0.75
		breakLen = 120
	}

	return &domain.SessionConfig{
		UserID:             userID,
		ContentType:        strings.TrimSpace(contentType),
		RecommendedMinutes: rec,
		BreakEveryMinutes:  breakEvery,
		BreakLengthSeconds: breakLen,
		InPeakHour:         inPeak,
		InDistractionHour:  inDistraction,
	}, nil
}

func (s *attentionService) Summary(userID string) *domain.AttentionSummary {
	userID = strings.TrimSpace(userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	out := &domain.AttentionSummary{
		UserID:          userID,
		AvgFocusMinutes: s.cfg.DefaultSessionMinutes,
		PeakHours:       []int{},
	}
	if p, ok := s.profiles[userID]; ok {
		out.AvgFocusMinutes = p.AvgFocusMinutes
		out.TotalFlowMinutes = p.TotalFlowMinutes
		out.BestFlowStreakMinutes = p.BestFlowStreakMinutes
		out.PeakHours = append([]int{}, p.PeakHours...)
	}
	for _, st := range s.sessions {
		if st.session.UserID == userID {
			out.ActiveSessions++
		}
	}
	return out
}

// profileLocked returns the user's profile, creating the neutral default on
// first access. Caller holds s.mu.
func (s *attentionService) profileLocked(userID string, now time.Time) *domain.AttentionProfile {
	if p, ok := s.profiles[userID]; ok {
		return p
	}
	p := &domain.AttentionProfile{
		UserID:              userID,
		AvgFocusMinutes:     s.cfg.DefaultSessionMinutes,
		PreferredLengthMins: s.cfg.DefaultSessionMinutes,
		PeakHours:           []int{},
		DistractionHours:    []int{},
		FlowTriggers:        []string{},
		UpdatedAt:           now,
	}
	s.profiles[userID] = p
	return p
}

func hourIn(hours []int, h int) bool {
	for _, v := range hours {
		if v == h {
			return true
		}
	}
	return false
}

func appendHour(hours []int, h int) []int {
	if hourIn(hours, h) {
		return hours
	}
	return append(hours, h)
}

func appendCapped(list []string, v string, max int) []string {
	list = append(list, v)
	if len(list) > max {
		list = list[len(list)-max:]
	}
	return list
}

func minutes(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}
