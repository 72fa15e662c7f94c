package domain

import "time"

// AttentionProfile is the per-user rolling picture of focus behavior. Hour
// sets are disjoint: an hour is peak, distraction-prone, or neither.
type AttentionProfile struct {
	UserID                string    `json:"user_id"`
	AvgFocusMinutes       float64   `json:"avg_focus_minutes"`
	PreferredLengthMins   float64   `json:"preferred_length_minutes"`
	PeakHours             []int     `json:"peak_hours"`
	DistractionHours      []int     `json:"distraction_hours"`
	FlowTriggers          []string  `json:"flow_triggers"`
	TotalFlowMinutes      float64   `json:"total_flow_minutes"`
	BestFlowStreakMinutes float64   `json:"best_flow_streak_minutes"`
	CurrentSessionID      string    `json:"current_session_id,omitempty"`
	UpdatedAt             time.Time `json:"updated_at"`
}

type AttentionSession struct {
	ID                   string     `json:"id"`
	UserID               string     `json:"user_id"`
	ContentDifficulty    float64    `json:"content_difficulty"`
	StartedAt            time.Time  `json:"started_at"`
	OptimalLengthMinutes float64    `json:"optimal_length_minutes"`
	NextBreakAt          *time.Time `json:"next_break_at,omitempty"`
	DistractionRisk      float64    `json:"distraction_risk"`
}

// SignalResult is what one attention signal did to the session.
type SignalResult struct {
	SessionID        string          `json:"session_id"`
	Signal           AttentionSignal `json:"signal"`
	DistractionRisk  float64         `json:"distraction_risk"`
	BreakRecommended bool            `json:"break_recommended"`
	NextBreakAt      *time.Time      `json:"next_break_at,omitempty"`
	FlowMinutes      float64         `json:"flow_minutes"`
	InFlow           bool            `json:"in_flow"`
}

type SessionConfig struct {
	UserID             string  `json:"user_id"`
	ContentType        string  `json:"content_type"`
	RecommendedMinutes float64 `json:"recommended_minutes"`
	BreakEveryMinutes  float64 `json:"break_every_minutes"`
	BreakLengthSeconds int     `json:"break_length_seconds"`
	InPeakHour         bool    `json:"in_peak_hour"`
	InDistractionHour  bool    `json:"in_distraction_hour"`
}

type AttentionSummary struct {
	UserID                string  `json:"user_id"`
	AvgFocusMinutes       float64 `json:"avg_focus_minutes"`
	TotalFlowMinutes      float64 `json:"total_flow_minutes"`
	BestFlowStreakMinutes float64 `json:"best_flow_streak_minutes"`
	PeakHours             []int   `json:"peak_hours"`
	ActiveSessions        int     `json:"active_sessions"`
}
