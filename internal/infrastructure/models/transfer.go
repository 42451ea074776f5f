package models

import (
	"github.com/google/uuid"
	"rampsync.backend/internal/domain/entities"
)

type Transfer struct {
	Base
	ExternalID                string                        `gorm:"type:varchar(64);uniqueIndex;not null"`
	UserID                    *uuid.UUID                    `gorm:"type:uuid;index"`
	CustomerID                string                        `gorm:"type:varchar(64);index"`
	State                     string                        `gorm:"type:varchar(64)"`
	Amount                    string                        `gorm:"type:varchar(64)"`
	Currency                  string                        `gorm:"type:varchar(16)"`
	DeveloperFee              string                        `gorm:"type:varchar(64)"`
	ClientReferenceID         string                        `gorm:"type:varchar(255)"`
	Source                    *entities.Endpoint            `gorm:"type:jsonb;serializer:json"`
	Destination               *entities.Endpoint            `gorm:"type:jsonb;serializer:json"`
	SourceDepositInstructions *entities.DepositInstructions `gorm:"type:jsonb;serializer:json"`
	Receipt                   *entities.Receipt             `gorm:"type:jsonb;serializer:json"`
	Features                  *entities.TransferFeatures    `gorm:"type:jsonb;serializer:json"`
	ProviderCreatedAt         string                        `gorm:"type:varchar(64)"`
}
