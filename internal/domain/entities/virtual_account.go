package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Virtual account statuses
const (
	VirtualAccountActivated   = "activated"
	VirtualAccountDeactivated = "deactivated"
)

// Virtual account activity types that change the parent account status
const (
	VirtualAccountActivityDeactivation = "deactivation"
	VirtualAccountActivityReactivation = "reactivation"
)

// VirtualAccount mirrors a provider fiat deposit account forwarding to a crypto destination
type VirtualAccount struct {
	ID                        uuid.UUID            `json:"id"`
	ExternalID                string               `json:"externalId"`
	UserID                    *uuid.UUID           `json:"userId,omitempty"`
	CustomerID                string               `json:"customerId,omitempty"`
	Status                    string               `json:"status,omitempty"`
	DeveloperFeePercent       string               `json:"developerFeePercent,omitempty"`
	SourceDepositInstructions *DepositInstructions `json:"sourceDepositInstructions,omitempty"`
	Destination               *Endpoint            `json:"destination,omitempty"`
	CreatedAt                 time.Time            `json:"createdAt"`
	UpdatedAt                 time.Time            `json:"updatedAt"`
}

// Refund describes a returned deposit
type Refund struct {
	Reason       string `json:"reason,omitempty"`
	Amount       string `json:"amount,omitempty"`
	Currency     string `json:"currency,omitempty"`
	RefundedAt   string `json:"refundedAt,omitempty"`
	TraceNumber  string `json:"traceNumber,omitempty"`
	ReturnStatus string `json:"returnStatus,omitempty"`
}

// VirtualAccountEvent is one immutable activity entry on a virtual account
type VirtualAccountEvent struct {
	ID                 uuid.UUID       `json:"id"`
	ExternalID         string          `json:"externalId"`
	VirtualAccountID   string          `json:"virtualAccountId"`
	CustomerID         string          `json:"customerId,omitempty"`
	Type               string          `json:"type"`
	Amount             string          `json:"amount,omitempty"`
	Currency           string          `json:"currency,omitempty"`
	DeveloperFeeAmount string          `json:"developerFeeAmount,omitempty"`
	ExchangeFeeAmount  string          `json:"exchangeFeeAmount,omitempty"`
	SubtotalAmount     string          `json:"subtotalAmount,omitempty"`
	GasFee             string          `json:"gasFee,omitempty"`
	DepositID          string          `json:"depositId,omitempty"`
	Source             *Endpoint       `json:"source,omitempty"`
	Receipt            *Receipt        `json:"receipt,omitempty"`
	Refund             *Refund         `json:"refund,omitempty"`
	AccountUpdate      json.RawMessage `json:"accountUpdate,omitempty"`
	ProviderCreatedAt  string          `json:"providerCreatedAt,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
}

// ParentStatus returns the status this activity forces on its virtual account, if any
func (e *VirtualAccountEvent) ParentStatus() (string, bool) {
	switch e.Type {
	case VirtualAccountActivityDeactivation:
		return VirtualAccountDeactivated, true
	case VirtualAccountActivityReactivation:
		return VirtualAccountActivated, true
	}
	return "", false
}
