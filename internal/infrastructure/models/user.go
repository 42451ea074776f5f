package models

type User struct {
	Base
	Email              string  `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name               string  `gorm:"type:varchar(100);not null"`
	Role               string  `gorm:"type:varchar(50);not null;default:'USER'"`
	VerificationStatus string  `gorm:"type:varchar(50);not null;default:'not_started'"`
	ExternalCustomerID *string `gorm:"type:varchar(64);uniqueIndex"`
}
