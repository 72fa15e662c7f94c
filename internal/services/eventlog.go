package services

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/mindpace/mindpace-backend/internal/data/repos"
	"github.com/mindpace/mindpace-backend/internal/domain"
	"github.com/mindpace/mindpace-backend/internal/platform/logger"
)

// appendEvent writes one row to the engagement log, best-effort. Called after
// the in-memory update, outside any service lock; failures are logged and
// never propagate to the caller.
func appendEvent(events repos.EngagementEventRepo, log *logger.Logger, userID, kind string, payload any) {
	if events == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Warn("engagement event marshal failed", "kind", kind, "error", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := events.Append(ctx, &domain.EngagementEvent{
		UserID:  userID,
		Kind:    kind,
		Payload: datatypes.JSON(raw),
	}); err != nil {
		log.Warn("engagement event append failed", "kind", kind, "error", err)
	}
}
