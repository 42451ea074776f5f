package entities

import (
	"time"

	"github.com/google/uuid"
)

// Wallet mirrors a provider custody wallet
type Wallet struct {
	ID         uuid.UUID  `json:"id"`
	ExternalID string     `json:"externalId"`
	UserID     *uuid.UUID `json:"userId,omitempty"`
	CustomerID string     `json:"customerId,omitempty"`
	Chain      string     `json:"chain,omitempty"`
	Address    string     `json:"address,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}
