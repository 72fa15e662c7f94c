package domain

// MicroContentUnit is immutable once produced by the chunker.
type MicroContentUnit struct {
	ID              string          `json:"id"`
	ContentType     string          `json:"content_type"`
	Topic           string          `json:"topic"`
	Title           string          `json:"title"`
	Content         string          `json:"content"`
	VisualAid       string          `json:"visual_aid,omitempty"`
	DurationSeconds int             `json:"duration_seconds"`
	Interaction     InteractionMode `json:"interaction"`
}

// LearningMoment is an ephemeral detection result: returned once, never
// stored. Callers act on it immediately or recompute.
type LearningMoment struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	Type             MomentType `json:"type"`
	AvailableSeconds int        `json:"available_seconds"`
	SuggestedUnitIDs []string   `json:"suggested_unit_ids"`
}
