package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// EngagementEvent is the optional append-only log row written after feedback
// events and momentum activities. Best-effort: a failed write never fails the
// request that produced it.
type EngagementEvent struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    string         `json:"user_id" gorm:"index"`
	Kind      string         `json:"kind" gorm:"index"`
	Payload   datatypes.JSON `json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
}

func (EngagementEvent) TableName() string { return "engagement_event" }
