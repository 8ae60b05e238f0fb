// Package audit writes fire-and-forget mutation records through the
// worker pool so request latency never waits on the audit table.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/ecavus/stayhub-backend/internal/models"
	repo "github.com/ecavus/stayhub-backend/internal/repository"
	"github.com/ecavus/stayhub-backend/internal/worker"
)

type Recorder struct {
	logs repo.AuditLogs
	pool *worker.Pool
}

func NewRecorder(logs repo.AuditLogs, pool *worker.Pool) *Recorder {
	return &Recorder{logs: logs, pool: pool}
}

// Record enqueues an audit entry. Failures are logged, never surfaced to
// the request that triggered them.
func (r *Recorder) Record(entityType, entityID, action, actorID string, details map[string]any) {
	if r == nil || r.pool == nil {
		return
	}
	l := models.AuditLog{
		EntityType: entityType,
		EntityID:   &entityID,
		Action:     action,
		Details:    details,
	}
	if actorID != "" {
		l.ActorID = &actorID
	}
	r.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := r.logs.Create(ctx, l); err != nil {
			slog.Error("audit write", "entity", entityType, "action", action, "err", err)
		}
	})
}
