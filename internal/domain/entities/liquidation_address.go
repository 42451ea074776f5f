package entities

import (
	"time"

	"github.com/google/uuid"
)

// LiquidationAddress mirrors a provider crypto deposit address that drains to a destination
type LiquidationAddress struct {
	ID                     uuid.UUID  `json:"id"`
	ExternalID             string     `json:"externalId"`
	UserID                 *uuid.UUID `json:"userId,omitempty"`
	CustomerID             string     `json:"customerId,omitempty"`
	Chain                  string     `json:"chain,omitempty"`
	Address                string     `json:"address,omitempty"`
	Currency               string     `json:"currency,omitempty"`
	State                  string     `json:"state,omitempty"`
	ExternalAccountID      string     `json:"externalAccountId,omitempty"`
	DestinationPaymentRail string     `json:"destinationPaymentRail,omitempty"`
	DestinationCurrency    string     `json:"destinationCurrency,omitempty"`
	DestinationAddress     string     `json:"destinationAddress,omitempty"`
	CreatedAt              time.Time  `json:"createdAt"`
	UpdatedAt              time.Time  `json:"updatedAt"`
}

// Drain is one movement of funds out of a liquidation address
type Drain struct {
	ID                   uuid.UUID  `json:"id"`
	ExternalID           string     `json:"externalId"`
	UserID               *uuid.UUID `json:"userId,omitempty"`
	LiquidationAddressID string     `json:"liquidationAddressId,omitempty"`
	CustomerID           string     `json:"customerId,omitempty"`
	Amount               string     `json:"amount,omitempty"`
	Currency             string     `json:"currency,omitempty"`
	State                string     `json:"state,omitempty"`
	SourcePaymentRail    string     `json:"sourcePaymentRail,omitempty"`
	FromAddress          string     `json:"fromAddress,omitempty"`
	Destination          *Endpoint  `json:"destination,omitempty"`
	DepositTxHash        string     `json:"depositTxHash,omitempty"`
	DestinationTxHash    string     `json:"destinationTxHash,omitempty"`
	Receipt              *Receipt   `json:"receipt,omitempty"`
	ProviderCreatedAt    string     `json:"providerCreatedAt,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}
