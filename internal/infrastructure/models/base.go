package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"rampsync.backend/pkg/utils"
)

// Base carries the local primary key and timestamps. IDs are generated in
// the application so the schema needs no database-side uuid function.
type Base struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = utils.GenerateUUIDv7()
	}
	return nil
}

// All returns every model in migration order
func All() []interface{} {
	return []interface{}{
		&User{},
		&WebhookEvent{},
		&Customer{},
		&KYCLink{},
		&Wallet{},
		&VirtualAccount{},
		&VirtualAccountEvent{},
		&ExternalAccount{},
		&Transfer{},
		&LiquidationAddress{},
		&Drain{},
	}
}
