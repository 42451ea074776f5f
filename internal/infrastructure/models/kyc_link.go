package models

import "github.com/google/uuid"

type KYCLink struct {
	Base
	ExternalID       string     `gorm:"type:varchar(64);uniqueIndex;not null"`
	UserID           *uuid.UUID `gorm:"type:uuid;index"`
	CustomerID       string     `gorm:"type:varchar(64);index"`
	FullName         string     `gorm:"type:varchar(200)"`
	Email            string     `gorm:"type:varchar(255)"`
	Type             string     `gorm:"type:varchar(32)"`
	KYCLink          string     `gorm:"column:kyc_link;type:text"`
	TOSLink          string     `gorm:"column:tos_link;type:text"`
	KYCStatus        string     `gorm:"column:kyc_status;type:varchar(32)"`
	TOSStatus        string     `gorm:"column:tos_status;type:varchar(32)"`
	RejectionReasons []string   `gorm:"type:jsonb;serializer:json"`
}

func (KYCLink) TableName() string {
	return "kyc_links"
}
