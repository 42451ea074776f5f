package models

import (
	"github.com/google/uuid"
	"rampsync.backend/internal/domain/entities"
)

type Customer struct {
	Base
	ExternalID       string                         `gorm:"type:varchar(64);uniqueIndex;not null"`
	UserID           *uuid.UUID                     `gorm:"type:uuid;index"`
	FirstName        string                         `gorm:"type:varchar(100)"`
	LastName         string                         `gorm:"type:varchar(100)"`
	Email            string                         `gorm:"type:varchar(255)"`
	Type             string                         `gorm:"type:varchar(32)"`
	Status           string                         `gorm:"type:varchar(64)"`
	HasAcceptedTOS   bool                           `gorm:"column:has_accepted_terms_of_service"`
	Endorsements     []entities.Endorsement         `gorm:"type:jsonb;serializer:json"`
	Capabilities     *entities.CustomerCapabilities `gorm:"type:jsonb;serializer:json"`
	RejectionReasons []string                       `gorm:"type:jsonb;serializer:json"`
}
