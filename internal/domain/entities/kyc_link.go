package entities

import (
	"time"

	"github.com/google/uuid"
)

// Provider-side KYC link statuses
const (
	KYCLinkStatusNotStarted  = "not_started"
	KYCLinkStatusIncomplete  = "incomplete"
	KYCLinkStatusAwaitingUBO = "awaiting_ubo"
	KYCLinkStatusUnderReview = "under_review"
	KYCLinkStatusPaused      = "paused"
	KYCLinkStatusApproved    = "approved"
	KYCLinkStatusRejected    = "rejected"
	KYCLinkStatusOffboarded  = "offboarded"

	TOSStatusPending  = "pending"
	TOSStatusApproved = "approved"
)

// KYCLink mirrors a provider hosted-verification link. UserID stays nil when
// the link was first seen through a webhook and no local user claimed it yet.
type KYCLink struct {
	ID               uuid.UUID  `json:"id"`
	ExternalID       string     `json:"externalId"`
	UserID           *uuid.UUID `json:"userId,omitempty"`
	CustomerID       string     `json:"customerId,omitempty"`
	FullName         string     `json:"fullName,omitempty"`
	Email            string     `json:"email,omitempty"`
	Type             string     `json:"type,omitempty"`
	KYCLink          string     `json:"kycLink,omitempty"`
	TOSLink          string     `json:"tosLink,omitempty"`
	KYCStatus        string     `json:"kycStatus,omitempty"`
	TOSStatus        string     `json:"tosStatus,omitempty"`
	RejectionReasons []string   `json:"rejectionReasons,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// VerificationStatus maps the provider link state onto the user's dashboard status
func (k *KYCLink) VerificationStatus() VerificationStatus {
	if k.TOSStatus == TOSStatusPending {
		return VerificationTOSPending
	}
	switch k.KYCStatus {
	case KYCLinkStatusApproved:
		return VerificationApproved
	case KYCLinkStatusUnderReview, KYCLinkStatusPaused:
		return VerificationUnderReview
	case KYCLinkStatusRejected, KYCLinkStatusOffboarded:
		return VerificationRejected
	default:
		return VerificationKYCPending
	}
}

// CreateKYCLinkInput is the dashboard request to start verification
type CreateKYCLinkInput struct {
	FullName string `json:"fullName" binding:"required,min=2,max=200"`
	Email    string `json:"email" binding:"required,email"`
	Type     string `json:"type" binding:"omitempty,oneof=individual business"`
}
