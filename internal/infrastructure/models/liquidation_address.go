package models

import (
	"github.com/google/uuid"
	"rampsync.backend/internal/domain/entities"
)

type LiquidationAddress struct {
	Base
	ExternalID             string     `gorm:"type:varchar(64);uniqueIndex;not null"`
	UserID                 *uuid.UUID `gorm:"type:uuid;index"`
	CustomerID             string     `gorm:"type:varchar(64);index"`
	Chain                  string     `gorm:"type:varchar(32)"`
	Address                string     `gorm:"type:varchar(255)"`
	Currency               string     `gorm:"type:varchar(16)"`
	State                  string     `gorm:"type:varchar(32)"`
	ExternalAccountID      string     `gorm:"type:varchar(64)"`
	DestinationPaymentRail string     `gorm:"type:varchar(32)"`
	DestinationCurrency    string     `gorm:"type:varchar(16)"`
	DestinationAddress     string     `gorm:"type:varchar(255)"`
}

type Drain struct {
	Base
	ExternalID           string             `gorm:"type:varchar(64);uniqueIndex;not null"`
	UserID               *uuid.UUID         `gorm:"type:uuid;index"`
	LiquidationAddressID string             `gorm:"type:varchar(64);index"`
	CustomerID           string             `gorm:"type:varchar(64);index"`
	Amount               string             `gorm:"type:varchar(64)"`
	Currency             string             `gorm:"type:varchar(16)"`
	State                string             `gorm:"type:varchar(64)"`
	SourcePaymentRail    string             `gorm:"type:varchar(32)"`
	FromAddress          string             `gorm:"type:varchar(255)"`
	Destination          *entities.Endpoint `gorm:"type:jsonb;serializer:json"`
	DepositTxHash        string             `gorm:"type:varchar(128)"`
	DestinationTxHash    string             `gorm:"type:varchar(128)"`
	Receipt              *entities.Receipt  `gorm:"type:jsonb;serializer:json"`
	ProviderCreatedAt    string             `gorm:"type:varchar(64)"`
}
