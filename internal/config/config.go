package config

import "time"

type HTTPConfig struct {
	Addr              string        `yaml:"addr"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
	MaxRequestBytes   int64         `yaml:"max_request_bytes"`
}

// EngineConfig holds every tuning constant of the quality engine. The shape of
// each rule (monotonicity, clamping, banding) is the contract; these values
// only tune it.
type EngineConfig struct {
	// Attention
	DefaultSessionMinutes    float64 `yaml:"default_session_minutes"`
	MinSessionMinutes        float64 `yaml:"min_session_minutes"`
	MaxSessionMinutes        float64 `yaml:"max_session_minutes"`
	BreakPointFraction       float64 `yaml:"break_point_fraction"`
	BreakRiskThreshold       float64 `yaml:"break_risk_threshold"`
	FlowThresholdMinutes     float64 `yaml:"flow_threshold_minutes"`
	RiskBase                 float64 `yaml:"risk_base"`
	RiskDifficultyWeight     float64 `yaml:"risk_difficulty_weight"`
	RiskDistractionHourBonus float64 `yaml:"risk_distraction_hour_bonus"`

	// Micro-learning
	ReadingWordsPerMinute int     `yaml:"reading_words_per_minute"`
	ChunkTolerance        float64 `yaml:"chunk_tolerance"`
	MinMomentSeconds      int     `yaml:"min_moment_seconds"`
	MaxMomentSuggestions  int     `yaml:"max_moment_suggestions"`
	MaxFeedCount          int     `yaml:"max_feed_count"`

	// Feedback
	XPBase      int `yaml:"xp_base"`
	DailyXPGoal int `yaml:"daily_xp_goal"`

	// Cognitive load
	FatigueSlope     float64 `yaml:"fatigue_slope"`
	CapacityBaseline float64 `yaml:"capacity_baseline"`
	MinCapacity      float64 `yaml:"min_capacity"`

	// Momentum
	MomentumBaseline float64 `yaml:"momentum_baseline"`
	DecayPerDay      float64 `yaml:"decay_per_day"`

	// Dashboard
	ReportCacheTTL time.Duration `yaml:"report_cache_ttl"`
}

type Config struct {
	Env    string       `yaml:"env"`
	HTTP   HTTPConfig   `yaml:"http"`
	Engine EngineConfig `yaml:"engine"`
}
