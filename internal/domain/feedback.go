package domain

// UserFeedbackStats persists per user for the process lifetime. Totals only
// grow; best streak never drops below current streak.
type UserFeedbackStats struct {
	UserID         string  `json:"user_id"`
	TotalCorrect   int     `json:"total_correct"`
	TotalIncorrect int     `json:"total_incorrect"`
	CurrentStreak  int     `json:"current_streak"`
	BestStreak     int     `json:"best_streak"`
	XP             int     `json:"xp"`
	Level          int     `json:"level"`
	Accuracy       float64 `json:"accuracy"`
}

// FeedbackContext qualifies one feedback event. XP, when positive, overrides
// the configured base award for a correct answer.
type FeedbackContext struct {
	Difficulty        float64 `json:"difficulty"`
	XP                int     `json:"xp"`
	ConsecutiveErrors int     `json:"consecutive_errors"`
}

// FeedbackPayload is the presentation side of one feedback event. It always
// agrees with the stats snapshot it carries.
type FeedbackPayload struct {
	Event     FeedbackEventType  `json:"event"`
	Intensity int                `json:"intensity"`
	Timing    string             `json:"timing"`
	Animation string             `json:"animation"`
	Color     string             `json:"color"`
	Icon      string             `json:"icon"`
	Message   string             `json:"message"`
	Sound     string             `json:"sound"`
	Haptic    string             `json:"haptic"`
	XPAwarded int                `json:"xp_awarded"`
	LevelUp   bool               `json:"level_up"`
	Stats     *UserFeedbackStats `json:"stats"`
}

type ProgressAnimation struct {
	UserID     string  `json:"user_id"`
	Target     string  `json:"target"`
	Style      string  `json:"style"`
	Percent    float64 `json:"percent"`
	Milestone  string  `json:"milestone,omitempty"`
	PulseSpeed float64 `json:"pulse_speed"`
}
