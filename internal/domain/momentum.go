package domain

import "time"

type MomentumState string

const (
	MomentumSurging MomentumState = "surging"
	MomentumStrong  MomentumState = "strong"
	MomentumSteady  MomentumState = "steady"
	MomentumCooling MomentumState = "cooling"
	MomentumFading  MomentumState = "fading"
	MomentumDormant MomentumState = "dormant"
)

// MomentumRecord is one user's engagement trend. Score stays in [0,100];
// risk factors and boost opportunities are recomputed on every read, never
// accumulated.
type MomentumRecord struct {
	UserID             string        `json:"user_id"`
	Score              float64       `json:"score"`
	State              MomentumState `json:"state"`
	DailyStreak        int           `json:"daily_streak"`
	WeeklyStreak       int           `json:"weekly_streak"`
	SessionsToday      int           `json:"sessions_today"`
	ItemsToday         int           `json:"items_today"`
	XPToday            float64       `json:"xp_today"`
	Trend              string        `json:"trend"`
	Velocity           float64       `json:"velocity"`
	RiskFactors        []string      `json:"risk_factors"`
	BoostOpportunities []string      `json:"boost_opportunities"`
	LastActivityAt     time.Time     `json:"last_activity_at"`
}

const (
	RiskMomentumLow      = "momentum_low"
	RiskStreakAtRisk     = "streak_at_risk"
	RiskDisengagement    = "disengagement_risk"
	BoostStreakMilestone = "streak_milestone_close"
	BoostPushToNextBand  = "push_to_next_band"
	BoostFinishASession  = "finish_a_session"
)

type ComebackStep struct {
	Order         int    `json:"order"`
	Action        string `json:"action"`
	TargetMinutes int    `json:"target_minutes"`
	Reward        string `json:"reward"`
}

type ComebackPlan struct {
	UserID  string         `json:"user_id"`
	Score   float64        `json:"score"`
	Message string         `json:"message"`
	Steps   []ComebackStep `json:"steps"`
}

type BoostNotification struct {
	UserID  string `json:"user_id"`
	Kind    string `json:"kind"`
	Title   string `json:"title"`
	Message string `json:"message"`
}
