package entities

import (
	"time"

	"github.com/google/uuid"
)

// TransferFeatures are optional provider feature flags on a transfer
type TransferFeatures struct {
	FlexibleAmount      bool `json:"flexibleAmount,omitempty"`
	StaticTemplate      bool `json:"staticTemplate,omitempty"`
	AllowAnyFromAddress bool `json:"allowAnyFromAddress,omitempty"`
}

// Transfer mirrors a provider transfer. State is stored verbatim (e.g. "payment_processed").
type Transfer struct {
	ID                        uuid.UUID            `json:"id"`
	ExternalID                string               `json:"externalId"`
	UserID                    *uuid.UUID           `json:"userId,omitempty"`
	CustomerID                string               `json:"customerId,omitempty"`
	State                     string               `json:"state,omitempty"`
	Amount                    string               `json:"amount,omitempty"`
	Currency                  string               `json:"currency,omitempty"`
	DeveloperFee              string               `json:"developerFee,omitempty"`
	ClientReferenceID         string               `json:"clientReferenceId,omitempty"`
	Source                    *Endpoint            `json:"source,omitempty"`
	Destination               *Endpoint            `json:"destination,omitempty"`
	SourceDepositInstructions *DepositInstructions `json:"sourceDepositInstructions,omitempty"`
	Receipt                   *Receipt             `json:"receipt,omitempty"`
	Features                  *TransferFeatures    `json:"features,omitempty"`
	ProviderCreatedAt         string               `json:"providerCreatedAt,omitempty"`
	CreatedAt                 time.Time            `json:"createdAt"`
	UpdatedAt                 time.Time            `json:"updatedAt"`
}
