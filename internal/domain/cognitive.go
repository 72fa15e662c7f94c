package domain

// ContentLoad scores a piece of content along Sweller's three cognitive load
// dimensions, each on a 0-100 scale.
type ContentLoad struct {
	Intrinsic  float64 `json:"intrinsic"`
	Extraneous float64 `json:"extraneous"`
	Germane    float64 `json:"germane"`
	Total      float64 `json:"total"`
	Level      string  `json:"level"`
}

// Load level banding. The thresholds are the contract: <40 minimal,
// [40,70) optimal, [70,85) high, >=85 overload.
const (
	LoadMinimal  = "minimal"
	LoadOptimal  = "optimal"
	LoadHigh     = "high"
	LoadOverload = "overload"
)

func LoadLevelFor(total float64) string {
	switch {
	case total < 40:
		return LoadMinimal
	case total < 70:
		return LoadOptimal
	case total < 85:
		return LoadHigh
	default:
		return LoadOverload
	}
}

// CognitiveState is derived per query, never stored long-term. FatigueFactor
// is >= 1 and grows with continuous session duration.
type CognitiveState struct {
	UserID            string  `json:"user_id"`
	SessionMinutes    float64 `json:"session_minutes"`
	FatigueFactor     float64 `json:"fatigue_factor"`
	AvailableCapacity float64 `json:"available_capacity"`
}

type AdjustedContent struct {
	Content     string   `json:"content"`
	Adjustments []string `json:"adjustments"`
	LoadBefore  float64  `json:"load_before"`
	LoadAfter   float64  `json:"load_after"`
}

type PacingRecommendation struct {
	UserID             string  `json:"user_id"`
	Pace               string  `json:"pace"`
	Reason             string  `json:"reason"`
	SuggestedBreakMins float64 `json:"suggested_break_minutes,omitempty"`
}

const (
	PaceSlowDown = "slow_down"
	PaceSteady   = "steady"
	PaceSpeedUp  = "speed_up"
)
