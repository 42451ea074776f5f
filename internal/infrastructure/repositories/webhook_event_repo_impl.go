package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"rampsync.backend/internal/domain/entities"
	domainerrors "rampsync.backend/internal/domain/errors"
	"rampsync.backend/internal/infrastructure/models"
)

// WebhookEventRepository is the idempotent event store
type WebhookEventRepository struct {
	db *gorm.DB
}

// NewWebhookEventRepository creates a new webhook event repository
func NewWebhookEventRepository(db *gorm.DB) *WebhookEventRepository {
	return &WebhookEventRepository{db: db}
}

// Store inserts the event with processed=false. If the event id is already
// known (found by lookup, or lost to a concurrent insert) the stored record is
// returned unchanged and the result is marked duplicate.
func (r *WebhookEventRepository) Store(ctx context.Context, event *entities.WebhookEvent) (*entities.StoreResult, error) {
	if event.EventID == "" {
		return nil, domainerrors.ErrInvalidPayload
	}

	existing, err := r.GetByEventID(ctx, event.EventID)
	if err == nil {
		return &entities.StoreResult{Event: existing, Duplicate: true}, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	m := &models.WebhookEvent{
		EventID:           event.EventID,
		EventCategory:     string(event.Category),
		EventType:         event.EventType,
		EventObjectID:     event.ObjectID,
		EventObjectStatus: event.ObjectStatus.Ptr(),
		EventObject:       string(event.Object),
		EventCreatedAt:    event.EventCreatedAt,
	}
	if m.EventObject == "" {
		m.EventObject = "null"
	}
	if len(event.ObjectChanges) > 0 {
		changes := string(event.ObjectChanges)
		m.EventObjectChange = &changes
	}

	res := GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}},
		DoNothing: true,
	}).Create(m)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		existing, err := r.GetByEventID(ctx, event.EventID)
		if err != nil {
			return nil, err
		}
		return &entities.StoreResult{Event: existing, Duplicate: true}, nil
	}

	return &entities.StoreResult{Event: r.toEntity(m)}, nil
}

// MarkProcessed flags the event processed. Unknown ids are a no-op.
func (r *WebhookEventRepository) MarkProcessed(ctx context.Context, eventID string) error {
	return GetDB(ctx, r.db).Model(&models.WebhookEvent{}).
		Where("event_id = ?", eventID).
		Updates(map[string]interface{}{
			"processed":    true,
			"processed_at": time.Now(),
		}).Error
}

// GetByEventID gets an event by the provider's event id
func (r *WebhookEventRepository) GetByEventID(ctx context.Context, eventID string) (*entities.WebhookEvent, error) {
	var m models.WebhookEvent
	if err := GetDB(ctx, r.db).Where("event_id = ?", eventID).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ListUnprocessed pages through the unprocessed backlog, oldest first
func (r *WebhookEventRepository) ListUnprocessed(ctx context.Context, limit, offset int) ([]*entities.WebhookEvent, int64, error) {
	var total int64
	query := GetDB(ctx, r.db).Model(&models.WebhookEvent{}).Where("processed = ?", false)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.WebhookEvent
	if err := GetDB(ctx, r.db).
		Where("processed = ?", false).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	events := make([]*entities.WebhookEvent, 0, len(ms))
	for i := range ms {
		events = append(events, r.toEntity(&ms[i]))
	}
	return events, total, nil
}

// CountUnprocessedBefore counts unprocessed events received before the cutoff
func (r *WebhookEventRepository) CountUnprocessedBefore(ctx context.Context, before time.Time) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).Model(&models.WebhookEvent{}).
		Where("processed = ? AND created_at < ?", false, before).
		Count(&total).Error
	return total, err
}

func (r *WebhookEventRepository) toEntity(m *models.WebhookEvent) *entities.WebhookEvent {
	e := &entities.WebhookEvent{
		ID:             m.ID,
		EventID:        m.EventID,
		Category:       entities.EventCategory(m.EventCategory),
		EventType:      m.EventType,
		ObjectID:       m.EventObjectID,
		ObjectStatus:   null.StringFromPtr(m.EventObjectStatus),
		Object:         []byte(m.EventObject),
		EventCreatedAt: m.EventCreatedAt,
		Processed:      m.Processed,
		ProcessedAt:    null.TimeFromPtr(m.ProcessedAt),
		CreatedAt:      m.CreatedAt,
	}
	if m.EventObjectChange != nil {
		e.ObjectChanges = []byte(*m.EventObjectChange)
	}
	return e
}
