package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleAdmin UserRole = "ADMIN"
	UserRoleUser  UserRole = "USER"
)

// VerificationStatus is the user's identity verification progress as shown on the dashboard
type VerificationStatus string

const (
	VerificationNotStarted  VerificationStatus = "not_started"
	VerificationTOSPending  VerificationStatus = "tos_pending"
	VerificationKYCPending  VerificationStatus = "kyc_pending"
	VerificationUnderReview VerificationStatus = "under_review"
	VerificationApproved    VerificationStatus = "approved"
	VerificationRejected    VerificationStatus = "rejected"
)

// IsTerminal reports whether no further provider-driven transition is expected
func (s VerificationStatus) IsTerminal() bool {
	return s == VerificationApproved || s == VerificationRejected
}

// User represents a dashboard user
type User struct {
	ID                 uuid.UUID          `json:"id"`
	Email              string             `json:"email"`
	Name               string             `json:"name"`
	Role               UserRole           `json:"role"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	ExternalCustomerID null.String        `json:"externalCustomerId"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}
