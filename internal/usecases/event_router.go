package usecases

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
	"rampsync.backend/internal/domain/entities"
	"rampsync.backend/pkg/logger"
)

// CategoryHandler applies one category of provider events to local state
type CategoryHandler interface {
	Handle(ctx context.Context, eventType string, object json.RawMessage) error
}

// EventRouter dispatches a stored event to the handler registered for its category
type EventRouter struct {
	handlers map[entities.EventCategory]CategoryHandler
}

// NewEventRouter creates a router over the given category handlers
func NewEventRouter(handlers map[entities.EventCategory]CategoryHandler) *EventRouter {
	return &EventRouter{handlers: handlers}
}

// Route runs the handler for event.Category. Categories without a handler are
// logged and skipped; that is not an error.
func (r *EventRouter) Route(ctx context.Context, event *entities.WebhookEvent) error {
	handler, ok := r.handlers[event.Category]
	if !ok {
		logger.Info(ctx, "No handler for webhook category, skipping",
			zap.String("category", string(event.Category)),
			zap.String("event_type", event.EventType),
		)
		return nil
	}
	return handler.Handle(ctx, event.EventType, event.Object)
}

// Handles reports whether a handler is registered for category
func (r *EventRouter) Handles(category entities.EventCategory) bool {
	_, ok := r.handlers[category]
	return ok
}
