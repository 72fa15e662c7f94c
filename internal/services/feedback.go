package services

import (
	"fmt"
	"strings"
	"sync"

	"github.com/facebookgo/clock"

	"github.com/mindpace/mindpace-backend/internal/config"
	"github.com/mindpace/mindpace-backend/internal/data/repos"
	"github.com/mindpace/mindpace-backend/internal/domain"
	"github.com/mindpace/mindpace-backend/internal/platform/apierr"
	"github.com/mindpace/mindpace-backend/internal/platform/logger"
)

type FeedbackService interface {
	Generate(userID string, event domain.FeedbackEventType, fc domain.FeedbackContext) (*domain.FeedbackPayload, error)
	ProgressAnimation(userID, target string) (*domain.ProgressAnimation, error)
	Stats(userID string) *domain.UserFeedbackStats
}

// XP required to reach each level (level 1 starts at 0). Past the table, each
// further level costs 800 XP.
var levelThresholds = []int{0, 100, 250, 450, 700, 1000, 1400, 1900, 2500, 3200}

const xpPerExtraLevel = 800

func levelForXP(xp int) int {
	if xp < 0 {
		return 1
	}
	last := len(levelThresholds) - 1
	if xp >= levelThresholds[last] {
		return last + 1 + (xp-levelThresholds[last])/xpPerExtraLevel
	}
	for i := last; i >= 0; i-- {
		if xp >= levelThresholds[i] {
			return i + 1
		}
	}
	return 1
}

// levelSpan returns the XP floor of the current level and of the next one.
func levelSpan(level int) (floor, next int) {
	switch {
	case level <= 0:
		return 0, levelThresholds[1]
	case level <= len(levelThresholds):
		floor = levelThresholds[level-1]
	default:
		floor = levelThresholds[len(levelThresholds)-1] + (level-len(levelThresholds))*xpPerExtraLevel
	}
	if level < len(levelThresholds) {
		next = levelThresholds[level]
	} else {
		next = floor + xpPerExtraLevel
	}
	return floor, next
}

type feedbackState struct {
	stats   domain.UserFeedbackStats
	xpToday int
	xpDay   string
}

type feedbackService struct {
	log    *logger.Logger
	cfg    config.EngineConfig
	clk    clock.Clock
	events repos.EngagementEventRepo

	mu    sync.Mutex
	users map[string]*feedbackState
}

func NewFeedbackService(baseLog *logger.Logger, cfg config.EngineConfig, clk clock.Clock, events repos.EngagementEventRepo) FeedbackService {
	return &feedbackService{
		log:    baseLog.With("service", "FeedbackService"),
		cfg:    cfg,
		clk:    clk,
		events: events,
		users:  make(map[string]*feedbackState),
	}
}

type presentation struct {
	animation string
	color     string
	icon      string
	sound     string
	haptic    string
	message   string
}

// Cosmetic lookup tables keyed by event type and intensity (1-4). The same
// inputs always produce the same payload.
var feedbackTable = map[domain.FeedbackEventType][4]presentation{
	domain.EventCorrect: {
		{"pop_small", "#4ade80", "check", "ding", "tap_light", "Correct!"},
		{"pop_medium", "#22c55e", "check_double", "ding_up", "tap_double", "Two in a row!"},
		{"burst", "#16a34a", "flame_small", "chime", "buzz_short", "You're on a roll!"},
		{"fireworks", "#15803d", "flame", "fanfare_short", "buzz_double", "Unstoppable!"},
	},
	domain.EventIncorrect: {
		{"shake_soft", "#f87171", "retry", "thud_soft", "none", "Not quite — try again."},
		{"shake_soft", "#f87171", "retry", "thud_soft", "none", "Close. Look once more."},
		{"fade_gentle", "#fca5a5", "lightbulb", "none", "none", "Let's slow down and look at a hint."},
		{"fade_gentle", "#fca5a5", "lightbulb", "none", "none", "Tough one. A short break can help."},
	},
	domain.EventStreak: {
		{"streak_glow", "#fbbf24", "flame_small", "spark", "tap_light", "Streak going!"},
		{"streak_glow", "#f59e0b", "flame", "spark", "tap_double", "Keep the streak alive!"},
		{"streak_blaze", "#d97706", "flame", "spark_up", "buzz_short", "Blazing streak!"},
		{"streak_blaze", "#b45309", "flame_big", "spark_up", "buzz_double", "Legendary streak!"},
	},
	domain.EventLevelUp: {
		{"level_rise", "#60a5fa", "star", "fanfare", "buzz_long", "Level up!"},
		{"level_rise", "#3b82f6", "star", "fanfare", "buzz_long", "Level up!"},
		{"level_rise", "#2563eb", "star_burst", "fanfare", "buzz_long", "New level reached!"},
		{"level_rise", "#1d4ed8", "star_burst", "fanfare_long", "buzz_long", "New level reached!"},
	},
	domain.EventFlow: {
		{"wave_calm", "#a78bfa", "wave", "ambient", "none", "You found your flow."},
		{"wave_calm", "#8b5cf6", "wave", "ambient", "none", "Deep focus — nice."},
		{"wave_deep", "#7c3aed", "wave", "ambient", "none", "Fully immersed."},
		{"wave_deep", "#6d28d9", "wave_big", "ambient", "none", "Peak flow state."},
	},
}

func (s *feedbackService) Generate(userID string, event domain.FeedbackEventType, fc domain.FeedbackContext) (*domain.FeedbackPayload, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apierr.Invalid("missing_user_id", fmt.Errorf("user id is required"))
	}
	if !event.Valid() {
		return nil, apierr.Invalidf("unknown_event_type", "unknown event type %q", event)
	}
	difficulty := clamp01(fc.Difficulty)
	if fc.ConsecutiveErrors < 0 {
		fc.ConsecutiveErrors = 0
	}
	now := s.clk.Now()

	s.mu.Lock()
	st := s.userLocked(userID)
	stats := &st.stats

	prevLevel := stats.Level
	xpGain := 0
	switch event {
	case domain.EventCorrect:
		stats.TotalCorrect++
		stats.CurrentStreak++
		if stats.CurrentStreak > stats.BestStreak {
			stats.BestStreak = stats.CurrentStreak
		}
		bonus := stats.CurrentStreak
		if bonus > 10 {
			bonus = 10
		}
		// Callers may price the item themselves; the configured base is the
		// default.
		base := s.cfg.XPBase
		if fc.XP > 0 {
			base = fc.XP
		}
		xpGain = int(float64(base)*(1+difficulty)) + bonus
	case domain.EventIncorrect:
		stats.TotalIncorrect++
		stats.CurrentStreak = 0
		xpGain = 2
	case domain.EventFlow:
		xpGain = 5
	case domain.EventStreak, domain.EventLevelUp:
		// Presentation-only events: no counter changes.
	}

	stats.XP += xpGain
	stats.Level = levelForXP(stats.XP)
	leveledUp := stats.Level > prevLevel
	stats.Accuracy = accuracy(stats.TotalCorrect, stats.TotalIncorrect)

	day := now.Format("2006-01-02")
	if st.xpDay != day {
		st.xpDay = day
		st.xpToday = 0
	}
	st.xpToday += xpGain

	intensity := intensityFor(event, stats.CurrentStreak)
	timing := "immediate"
	if event == domain.EventIncorrect && fc.ConsecutiveErrors >= 3 {
		// Back off when the user is struggling; don't pile on instantly.
		timing = "delayed"
		if intensity < 3 {
			intensity = 3
		}
	}

	look := feedbackTable[event][intensity-1]
	if leveledUp {
		look = feedbackTable[domain.EventLevelUp][intensity-1]
	}

	snapshot := *stats
	s.mu.Unlock()

	payload := &domain.FeedbackPayload{
		Event:     event,
		Intensity: intensity,
		Timing:    timing,
		Animation: look.animation,
		Color:     look.color,
		Icon:      look.icon,
		Message:   look.message,
		Sound:     look.sound,
		Haptic:    look.haptic,
		XPAwarded: xpGain,
		LevelUp:   leveledUp,
		Stats:     &snapshot,
	}

	appendEvent(s.events, s.log, userID, "feedback."+string(event), payload)
	return payload, nil
}

func intensityFor(event domain.FeedbackEventType, streak int) int {
	if event == domain.EventIncorrect {
		return 1
	}
	switch {
	case streak >= 10:
		return 4
	case streak >= 5:
		return 3
	case streak >= 3:
		return 2
	default:
		return 1
	}
}

func (s *feedbackService) ProgressAnimation(userID, target string) (*domain.ProgressAnimation, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apierr.Invalid("missing_user_id", fmt.Errorf("user id is required"))
	}
	target = strings.ToLower(strings.TrimSpace(target))

	s.mu.Lock()
	defer s.mu.Unlock()

	var stats domain.UserFeedbackStats
	xpToday := 0
	if st, ok := s.users[userID]; ok {
		stats = st.stats
		if st.xpDay == s.clk.Now().Format("2006-01-02") {
			xpToday = st.xpToday
		}
	} else {
		stats = defaultStats(userID)
	}

	out := &domain.ProgressAnimation{UserID: userID, Target: target}
	switch target {
	case "daily":
		out.Style = "progress_ring"
		out.Percent = clampFloat(float64(xpToday)/float64(s.cfg.DailyXPGoal)*100, 0, 100)
		if out.Percent >= 100 {
			out.Milestone = "daily_goal_met"
		}
	case "level":
		out.Style = "level_bar"
		floor, next := levelSpan(stats.Level)
		span := next - floor
		if span <= 0 {
			span = 1
		}
		out.Percent = clampFloat(float64(stats.XP-floor)/float64(span)*100, 0, 100)
		out.Milestone = fmt.Sprintf("level_%d", stats.Level+1)
	default:
		return nil, apierr.Invalidf("unknown_target", "unknown progress target %q", target)
	}
	out.PulseSpeed = 1 + out.Percent/100
	return out, nil
}

// Stats returns the current stats snapshot, or a fresh default for a user the
// engine has never seen. Pure read; unknown users are not materialized.
func (s *feedbackService) Stats(userID string) *domain.UserFeedbackStats {
	userID = strings.TrimSpace(userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.users[userID]; ok {
		out := st.stats
		return &out
	}
	out := defaultStats(userID)
	return &out
}

func (s *feedbackService) userLocked(userID string) *feedbackState {
	if st, ok := s.users[userID]; ok {
		return st
	}
	st := &feedbackState{stats: defaultStats(userID)}
	s.users[userID] = st
	return st
}

func defaultStats(userID string) domain.UserFeedbackStats {
	return domain.UserFeedbackStats{UserID: userID, Level: 1}
}

func accuracy(correct, incorrect int) float64 {
	total := correct + incorrect
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total)
}
