package activitylog

import (
	"context"
	"database/sql"
	"time"

	"github.com/lexserve/backoffice/internal/application/port"
	"github.com/lexserve/backoffice/internal/domain/entity"
	"go.uber.org/zap"
)

const writeTimeout = 5 * time.Second

// Writer persists activity entries fire-and-forget. Failures are logged and
// never surfaced: the activity log is informative, not load-bearing.
type Writer struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewWriter creates a new activity log writer
func NewWriter(db *sql.DB, logger *zap.Logger) *Writer {
	return &Writer{db: db, logger: logger}
}

// Record writes the entry asynchronously. The caller's context is not used
// for the write so an already-finished request cannot cancel it.
func (w *Writer) Record(_ context.Context, entry *entity.ActivityEntry) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		query := `
			INSERT INTO activity_log (
				actor_id, actor_role, action, entity_kind, entity_id, detail, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?)
		`

		_, err := w.db.ExecContext(ctx, query,
			entry.ActorID,
			entry.ActorRole,
			entry.Action,
			entry.EntityKind,
			entry.EntityID,
			entry.Detail,
			entry.CreatedAt,
		)
		if err != nil {
			w.logger.Warn("Failed to write activity entry",
				zap.String("action", entry.Action),
				zap.String("entity_kind", entry.EntityKind),
				zap.Int64("entity_id", entry.EntityID),
				zap.Error(err))
		}
	}()
}

// Verify interface compliance
var _ port.ActivityLogger = (*Writer)(nil)
