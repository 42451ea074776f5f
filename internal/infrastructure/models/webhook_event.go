package models

import "time"

// WebhookEvent is the idempotency record for provider notifications. The
// unique index on event_id is what makes concurrent duplicate deliveries safe.
type WebhookEvent struct {
	Base
	EventID           string     `gorm:"type:varchar(128);uniqueIndex;not null"`
	EventCategory     string     `gorm:"type:varchar(64);not null;index"`
	EventType         string     `gorm:"type:varchar(64)"`
	EventObjectID     string     `gorm:"type:varchar(128);index"`
	EventObjectStatus *string    `gorm:"type:varchar(64)"`
	EventObject       string     `gorm:"type:jsonb;not null"`
	EventObjectChange *string    `gorm:"column:event_object_changes;type:jsonb"`
	EventCreatedAt    string     `gorm:"type:varchar(64)"`
	Processed         bool       `gorm:"not null;default:false;index"`
	ProcessedAt       *time.Time `gorm:"type:timestamp"`
}
