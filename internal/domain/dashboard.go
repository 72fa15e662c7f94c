package domain

import "time"

type Recommendation struct {
	Priority int    `json:"priority"`
	Kind     string `json:"kind"`
	Message  string `json:"message"`
}

// QualityReport merges the four trackers' current state for one user. Every
// section tolerates a freshly-defaulted profile.
type QualityReport struct {
	UserID          string             `json:"user_id"`
	GeneratedAt     time.Time          `json:"generated_at"`
	Attention       *AttentionSummary  `json:"attention"`
	Performance     *UserFeedbackStats `json:"performance"`
	Momentum        *MomentumRecord    `json:"momentum"`
	Cognitive       *CognitiveState    `json:"cognitive"`
	Recommendations []Recommendation   `json:"recommendations"`
}
