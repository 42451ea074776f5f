package repositories

import (
	"context"
	"time"

	"rampsync.backend/internal/domain/entities"
)

// WebhookEventRepository is the idempotent store of provider notifications
type WebhookEventRepository interface {
	// Store inserts the event unless one with the same EventID exists, in which
	// case the existing record is returned untouched with Duplicate set.
	Store(ctx context.Context, event *entities.WebhookEvent) (*entities.StoreResult, error)
	// MarkProcessed flags the event processed. Unknown ids are ignored.
	MarkProcessed(ctx context.Context, eventID string) error
	GetByEventID(ctx context.Context, eventID string) (*entities.WebhookEvent, error)
	ListUnprocessed(ctx context.Context, limit, offset int) ([]*entities.WebhookEvent, int64, error)
	CountUnprocessedBefore(ctx context.Context, before time.Time) (int64, error)
}
