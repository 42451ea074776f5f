package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// EventCategory is the provider's event_category tag
type EventCategory string

const (
	EventCategoryCustomer               EventCategory = "customer"
	EventCategoryKYCLink                EventCategory = "kyc_link"
	EventCategoryTransfer               EventCategory = "transfer"
	EventCategoryLiquidationDrain       EventCategory = "liquidation_address.drain"
	EventCategoryVirtualAccountActivity EventCategory = "virtual_account.activity"
)

// WebhookEvent is one notification received from the provider. The payload is
// immutable once stored; only the processed flag changes.
type WebhookEvent struct {
	ID             uuid.UUID       `json:"id"`
	EventID        string          `json:"eventId"`
	Category       EventCategory   `json:"category"`
	EventType      string          `json:"eventType"`
	ObjectID       string          `json:"objectId"`
	ObjectStatus   null.String     `json:"objectStatus"`
	Object         json.RawMessage `json:"object"`
	ObjectChanges  json.RawMessage `json:"objectChanges,omitempty"`
	EventCreatedAt string          `json:"eventCreatedAt"`
	Processed      bool            `json:"processed"`
	ProcessedAt    null.Time       `json:"processedAt"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// StoreResult reports whether Store inserted a new event or found an existing one
type StoreResult struct {
	Event     *WebhookEvent
	Duplicate bool
}
