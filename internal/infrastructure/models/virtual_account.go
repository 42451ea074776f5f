package models

import (
	"github.com/google/uuid"
	"rampsync.backend/internal/domain/entities"
)

type VirtualAccount struct {
	Base
	ExternalID                string                        `gorm:"type:varchar(64);uniqueIndex;not null"`
	UserID                    *uuid.UUID                    `gorm:"type:uuid;index"`
	CustomerID                string                        `gorm:"type:varchar(64);index"`
	Status                    string                        `gorm:"type:varchar(32)"`
	DeveloperFeePercent       string                        `gorm:"type:varchar(32)"`
	SourceDepositInstructions *entities.DepositInstructions `gorm:"type:jsonb;serializer:json"`
	Destination               *entities.Endpoint            `gorm:"type:jsonb;serializer:json"`
}

// VirtualAccountEvent is append-only; rows are never patched
type VirtualAccountEvent struct {
	Base
	ExternalID         string             `gorm:"type:varchar(64);uniqueIndex;not null"`
	VirtualAccountID   string             `gorm:"type:varchar(64);index;not null"`
	CustomerID         string             `gorm:"type:varchar(64);index"`
	Type               string             `gorm:"type:varchar(64);not null"`
	Amount             string             `gorm:"type:varchar(64)"`
	Currency           string             `gorm:"type:varchar(16)"`
	DeveloperFeeAmount string             `gorm:"type:varchar(64)"`
	ExchangeFeeAmount  string             `gorm:"type:varchar(64)"`
	SubtotalAmount     string             `gorm:"type:varchar(64)"`
	GasFee             string             `gorm:"type:varchar(64)"`
	DepositID          string             `gorm:"type:varchar(64)"`
	Source             *entities.Endpoint `gorm:"type:jsonb;serializer:json"`
	Receipt            *entities.Receipt  `gorm:"type:jsonb;serializer:json"`
	Refund             *entities.Refund   `gorm:"type:jsonb;serializer:json"`
	AccountUpdate      *string            `gorm:"type:jsonb"`
	ProviderCreatedAt  string             `gorm:"type:varchar(64)"`
}
