package entities

import (
	"time"

	"github.com/google/uuid"
)

// ExternalAccount mirrors a bank account registered with the provider for payouts
type ExternalAccount struct {
	ID               uuid.UUID  `json:"id"`
	ExternalID       string     `json:"externalId"`
	UserID           *uuid.UUID `json:"userId,omitempty"`
	CustomerID       string     `json:"customerId,omitempty"`
	BankName         string     `json:"bankName,omitempty"`
	AccountOwnerName string     `json:"accountOwnerName,omitempty"`
	AccountOwnerType string     `json:"accountOwnerType,omitempty"`
	AccountType      string     `json:"accountType,omitempty"`
	Currency         string     `json:"currency,omitempty"`
	Last4            string     `json:"last4,omitempty"`
	Active           bool       `json:"active"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}
