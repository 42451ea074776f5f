package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"rampsync.backend/internal/domain/entities"
	domainerrors "rampsync.backend/internal/domain/errors"
	"rampsync.backend/internal/domain/repositories"
	"rampsync.backend/internal/infrastructure/provider"
	"rampsync.backend/pkg/logger"
	"rampsync.backend/pkg/metrics"
	"rampsync.backend/pkg/utils"
)

// EventRouting dispatches a stored event to its category handler
type EventRouting interface {
	Route(ctx context.Context, event *entities.WebhookEvent) error
}

// WebhookUsecase stores provider notifications idempotently and processes
// each new one exactly once.
type WebhookUsecase struct {
	eventRepo repositories.WebhookEventRepository
	router    EventRouting
}

// IngestResult describes what happened to one delivery after it was stored
type IngestResult struct {
	Event     *entities.WebhookEvent
	Duplicate bool
	Processed bool
	// ProcessingErr is logged and kept for the caller, never returned as an error
	ProcessingErr error
}

// NewWebhookUsecase creates a new webhook usecase
func NewWebhookUsecase(eventRepo repositories.WebhookEventRepository, router EventRouting) *WebhookUsecase {
	return &WebhookUsecase{
		eventRepo: eventRepo,
		router:    router,
	}
}

// Ingest stores the delivery and, if it is new, routes it. Only a storage
// failure is returned as an error; processing failures leave the event
// unprocessed for manual follow-up.
func (u *WebhookUsecase) Ingest(ctx context.Context, payload *provider.WebhookEvent) (*IngestResult, error) {
	if payload.EventID == "" {
		return nil, domainerrors.BadRequest("event_id is required")
	}
	ctx = logger.WithEventID(ctx, payload.EventID)
	category := payload.EventCategory

	stored, err := u.eventRepo.Store(ctx, eventFromPayload(payload))
	if err != nil {
		metrics.WebhookEventsTotal.WithLabelValues(category, metrics.OutcomeStoreFailed).Inc()
		logger.Error(ctx, "Failed to store webhook event", zap.Error(err))
		return nil, fmt.Errorf("store webhook event: %w", err)
	}

	result := &IngestResult{Event: stored.Event, Duplicate: stored.Duplicate}
	if stored.Duplicate {
		metrics.WebhookEventsTotal.WithLabelValues(category, metrics.OutcomeDuplicate).Inc()
		logger.Info(ctx, "Duplicate webhook event ignored",
			zap.String("category", category),
			zap.Bool("processed", stored.Event.Processed),
		)
		return result, nil
	}

	if err := u.process(ctx, stored.Event); err != nil {
		result.ProcessingErr = err
		return result, nil
	}
	result.Processed = true
	return result, nil
}

// Reprocess routes a stored event that is still unprocessed
func (u *WebhookUsecase) Reprocess(ctx context.Context, eventID string) (*entities.WebhookEvent, error) {
	ctx = logger.WithEventID(ctx, eventID)

	event, err := u.eventRepo.GetByEventID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("webhook event not found")
		}
		return nil, err
	}
	if event.Processed {
		return nil, domainerrors.Conflict("webhook event already processed")
	}

	if err := u.process(ctx, event); err != nil {
		return nil, domainerrors.NewAppError(http.StatusUnprocessableEntity, domainerrors.CodeBadRequest, "webhook event processing failed", err)
	}
	return u.eventRepo.GetByEventID(ctx, eventID)
}

// ListUnprocessed returns a page of the unprocessed backlog, oldest first
func (u *WebhookUsecase) ListUnprocessed(ctx context.Context, page, limit int) ([]*entities.WebhookEvent, utils.PaginationMeta, error) {
	params := utils.GetPaginationParams(page, limit)
	events, total, err := u.eventRepo.ListUnprocessed(ctx, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return events, utils.CalculateMeta(total, params.Page, params.Limit), nil
}

func (u *WebhookUsecase) process(ctx context.Context, event *entities.WebhookEvent) error {
	category := string(event.Category)
	start := time.Now()
	err := u.router.Route(ctx, event)
	metrics.WebhookProcessingDuration.WithLabelValues(category).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.WebhookEventsTotal.WithLabelValues(category, metrics.OutcomeFailed).Inc()
		logger.Error(ctx, "Webhook event processing failed, left unprocessed",
			zap.String("category", category),
			zap.String("event_type", event.EventType),
			zap.Error(err),
		)
		return err
	}

	if err := u.eventRepo.MarkProcessed(ctx, event.EventID); err != nil {
		// Side effects are applied; the event just stays in the backlog
		logger.Error(ctx, "Failed to mark webhook event processed", zap.Error(err))
		return err
	}
	metrics.WebhookEventsTotal.WithLabelValues(category, metrics.OutcomeProcessed).Inc()
	return nil
}

func eventFromPayload(p *provider.WebhookEvent) *entities.WebhookEvent {
	event := &entities.WebhookEvent{
		EventID:        p.EventID,
		Category:       entities.EventCategory(p.EventCategory),
		EventType:      p.EventType,
		ObjectID:       p.EventObjectID,
		ObjectStatus:   null.StringFromPtr(p.EventObjectStatus),
		Object:         p.EventObject,
		EventCreatedAt: p.EventCreatedAt,
	}
	if len(p.EventObjectChanges) > 0 && string(p.EventObjectChanges) != "null" {
		event.ObjectChanges = json.RawMessage(p.EventObjectChanges)
	}
	if len(event.Object) == 0 {
		event.Object = json.RawMessage("null")
	}
	return event
}
