package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Endorsement is a provider approval for a product line (e.g. "base", "sepa")
type Endorsement struct {
	Name         string   `json:"name"`
	Status       string   `json:"status"`
	Requirements []string `json:"requirements,omitempty"`
}

// CustomerCapabilities is the provider's per-direction capability state
type CustomerCapabilities struct {
	PayinCrypto  string `json:"payinCrypto,omitempty"`
	PayoutCrypto string `json:"payoutCrypto,omitempty"`
	PayinFiat    string `json:"payinFiat,omitempty"`
	PayoutFiat   string `json:"payoutFiat,omitempty"`
}

// Customer mirrors a provider customer. Status is stored verbatim.
type Customer struct {
	ID               uuid.UUID            `json:"id"`
	ExternalID       string               `json:"externalId"`
	UserID           *uuid.UUID           `json:"userId,omitempty"`
	FirstName        string               `json:"firstName,omitempty"`
	LastName         string               `json:"lastName,omitempty"`
	Email            string               `json:"email,omitempty"`
	Type             string               `json:"type,omitempty"`
	Status           string               `json:"status,omitempty"`
	HasAcceptedTOS   null.Bool            `json:"hasAcceptedTermsOfService"`
	Endorsements     []Endorsement        `json:"endorsements,omitempty"`
	Capabilities     CustomerCapabilities `json:"capabilities"`
	RejectionReasons []string             `json:"rejectionReasons,omitempty"`
	CreatedAt        time.Time            `json:"createdAt"`
	UpdatedAt        time.Time            `json:"updatedAt"`
}
