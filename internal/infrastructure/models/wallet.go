package models

import "github.com/google/uuid"

type Wallet struct {
	Base
	ExternalID string     `gorm:"type:varchar(64);uniqueIndex;not null"`
	UserID     *uuid.UUID `gorm:"type:uuid;index"`
	CustomerID string     `gorm:"type:varchar(64);index"`
	Chain      string     `gorm:"type:varchar(32)"`
	Address    string     `gorm:"type:varchar(255)"`
}
