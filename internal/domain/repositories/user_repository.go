package repositories

import (
	"context"

	"github.com/google/uuid"
	"rampsync.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByExternalCustomerID(ctx context.Context, customerID string) (*entities.User, error)
	UpdateVerificationStatus(ctx context.Context, id uuid.UUID, status entities.VerificationStatus) error
	SetExternalCustomerID(ctx context.Context, id uuid.UUID, customerID string) error
}
