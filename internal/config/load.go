package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mindpace/mindpace-backend/internal/platform/envutil"
)

func Default() *Config {
	return &Config{
		Env: "development",
		HTTP: HTTPConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       2 * time.Minute,
			ShutdownTimeout:   15 * time.Second,
			MaxRequestBytes:   1 << 20,
		},
		Engine: EngineConfig{
			DefaultSessionMinutes:    25,
			MinSessionMinutes:        10,
			MaxSessionMinutes:        50,
			BreakPointFraction:       0.4,
			BreakRiskThreshold:       0.7,
			FlowThresholdMinutes:     10,
			RiskBase:                 0.1,
			RiskDifficultyWeight:     0.25,
			RiskDistractionHourBonus: 0.3,

			ReadingWordsPerMinute: 200,
			ChunkTolerance:        0.10,
			MinMomentSeconds:      30,
			MaxMomentSuggestions:  3,
			MaxFeedCount:          20,

			XPBase:      10,
			DailyXPGoal: 50,

			FatigueSlope:     0.015,
			CapacityBaseline: 100,
			MinCapacity:      20,

			MomentumBaseline: 50,
			DecayPerDay:      8,

			ReportCacheTTL: 30 * time.Second,
		},
	}
}

// Load builds the config from defaults, then an optional YAML file
// (MINDPACE_CONFIG_PATH, falling back to ./config/config.yaml), then env
// overrides, and validates the result.
func Load() (*Config, error) {
	cfg := Default()

	cfgPath := strings.TrimSpace(os.Getenv("MINDPACE_CONFIG_PATH"))
	if cfgPath == "" {
		if wd, err := os.Getwd(); err == nil {
			p := filepath.Join(wd, "config", "config.yaml")
			if _, err := os.Stat(p); err == nil {
				cfgPath = p
			}
		}
	}
	if cfgPath != "" {
		b, err := os.ReadFile(cfgPath)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", cfgPath, err)
		}
	}

	if v := strings.TrimSpace(os.Getenv("LOG_MODE")); v != "" {
		cfg.Env = v
	}
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		cfg.HTTP.Addr = ":" + v
	}
	if v := strings.TrimSpace(os.Getenv("HTTP_ADDR")); v != "" {
		cfg.HTTP.Addr = v
	}
	cfg.Engine.MinMomentSeconds = envutil.Int("MICRO_MIN_MOMENT_SECONDS", cfg.Engine.MinMomentSeconds)
	cfg.Engine.DecayPerDay = envutil.Float("MOMENTUM_DECAY_PER_DAY", cfg.Engine.DecayPerDay)
	cfg.Engine.FlowThresholdMinutes = envutil.Float("ATTENTION_FLOW_THRESHOLD_MINUTES", cfg.Engine.FlowThresholdMinutes)

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Env) == "" {
		c.Env = "development"
	}
	if strings.TrimSpace(c.HTTP.Addr) == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.HTTP.MaxRequestBytes <= 0 {
		c.HTTP.MaxRequestBytes = 1 << 20
	}
	e := &c.Engine
	if e.MinSessionMinutes <= 0 || e.MaxSessionMinutes <= e.MinSessionMinutes {
		return fmt.Errorf("invalid session length bounds [%v, %v]", e.MinSessionMinutes, e.MaxSessionMinutes)
	}
	if e.DefaultSessionMinutes < e.MinSessionMinutes || e.DefaultSessionMinutes > e.MaxSessionMinutes {
		return fmt.Errorf("default_session_minutes %v outside [%v, %v]", e.DefaultSessionMinutes, e.MinSessionMinutes, e.MaxSessionMinutes)
	}
	if e.BreakPointFraction <= 0 || e.BreakPointFraction >= 1 {
		return fmt.Errorf("break_point_fraction must be in (0,1)")
	}
	if e.BreakRiskThreshold <= 0 || e.BreakRiskThreshold > 1 {
		return fmt.Errorf("break_risk_threshold must be in (0,1]")
	}
	if e.FlowThresholdMinutes <= 0 {
		return fmt.Errorf("flow_threshold_minutes must be positive")
	}
	if e.ReadingWordsPerMinute <= 0 {
		return fmt.Errorf("reading_words_per_minute must be positive")
	}
	if e.ChunkTolerance < 0 || e.ChunkTolerance > 0.5 {
		return fmt.Errorf("chunk_tolerance must be in [0, 0.5]")
	}
	if e.MinMomentSeconds <= 0 {
		return fmt.Errorf("min_moment_seconds must be positive")
	}
	if e.MaxMomentSuggestions <= 0 {
		e.MaxMomentSuggestions = 3
	}
	if e.MaxFeedCount <= 0 {
		e.MaxFeedCount = 20
	}
	if e.XPBase <= 0 {
		return fmt.Errorf("xp_base must be positive")
	}
	if e.DailyXPGoal <= 0 {
		return fmt.Errorf("daily_xp_goal must be positive")
	}
	if e.FatigueSlope <= 0 {
		return fmt.Errorf("fatigue_slope must be positive")
	}
	if e.CapacityBaseline <= 0 || e.MinCapacity < 0 || e.MinCapacity >= e.CapacityBaseline {
		return fmt.Errorf("invalid capacity bounds")
	}
	if e.MomentumBaseline < 0 || e.MomentumBaseline > 100 {
		return fmt.Errorf("momentum_baseline must be in [0,100]")
	}
	if e.DecayPerDay < 0 {
		return fmt.Errorf("decay_per_day must be non-negative")
	}
	if e.ReportCacheTTL < 0 {
		e.ReportCacheTTL = 0
	}
	return nil
}
