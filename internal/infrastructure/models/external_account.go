package models

import "github.com/google/uuid"

type ExternalAccount struct {
	Base
	ExternalID       string     `gorm:"type:varchar(64);uniqueIndex;not null"`
	UserID           *uuid.UUID `gorm:"type:uuid;index"`
	CustomerID       string     `gorm:"type:varchar(64);index"`
	BankName         string     `gorm:"type:varchar(255)"`
	AccountOwnerName string     `gorm:"type:varchar(255)"`
	AccountOwnerType string     `gorm:"type:varchar(32)"`
	AccountType      string     `gorm:"type:varchar(32)"`
	Currency         string     `gorm:"type:varchar(16)"`
	Last4            string     `gorm:"type:varchar(8)"`
	Active           bool
}
