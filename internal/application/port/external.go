package port

import (
	"context"

	"github.com/lexserve/backoffice/internal/domain/entity"
)

// Actor is the acting user's identity as supplied by the auth collaborator.
// The core never authenticates, it only records who acted.
type Actor struct {
	ID   string
	Role string
}

// ActivityLogger is notified of every transition. Implementations are
// fire-and-forget: Record must not block the operation and its failures are
// never surfaced to the caller.
type ActivityLogger interface {
	Record(ctx context.Context, entry *entity.ActivityEntry)
}
