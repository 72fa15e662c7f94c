package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mindpace/mindpace-backend/internal/domain"
	"github.com/mindpace/mindpace-backend/internal/platform/logger"
)

// EngagementEventRepo is the append-only log behind the feedback and momentum
// trackers. Services treat a nil repo as "logging disabled".
type EngagementEventRepo interface {
	Append(ctx context.Context, ev *domain.EngagementEvent) error
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.EngagementEvent, error)
}

type engagementEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEngagementEventRepo(db *gorm.DB, baseLog *logger.Logger) EngagementEventRepo {
	return &engagementEventRepo{
		db:  db,
		log: baseLog.With("repo", "EngagementEventRepo"),
	}
}

func (r *engagementEventRepo) Append(ctx context.Context, ev *domain.EngagementEvent) error {
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(ev).Error
}

func (r *engagementEventRepo) ListByUser(ctx context.Context, userID string, limit int) ([]domain.EngagementEvent, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var out []domain.EngagementEvent
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}
