package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"rampsync.backend/internal/domain/entities"
	domainerrors "rampsync.backend/internal/domain/errors"
	"rampsync.backend/internal/infrastructure/models"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	status := user.VerificationStatus
	if status == "" {
		status = entities.VerificationNotStarted
	}
	role := user.Role
	if role == "" {
		role = entities.UserRoleUser
	}
	m := &models.User{
		Base:               models.Base{ID: user.ID},
		Email:              user.Email,
		Name:               user.Name,
		Role:               string(role),
		VerificationStatus: string(status),
		ExternalCustomerID: user.ExternalCustomerID.Ptr(),
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	user.ID = m.ID
	user.Role = role
	user.VerificationStatus = status
	user.CreatedAt = m.CreatedAt
	user.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return r.getWhere(ctx, "id = ?", id)
}

// GetByExternalCustomerID resolves the local owner of a provider customer
func (r *UserRepository) GetByExternalCustomerID(ctx context.Context, customerID string) (*entities.User, error) {
	if customerID == "" {
		return nil, domainerrors.ErrNotFound
	}
	return r.getWhere(ctx, "external_customer_id = ?", customerID)
}

// UpdateVerificationStatus sets the user's dashboard verification status
func (r *UserRepository) UpdateVerificationStatus(ctx context.Context, id uuid.UUID, status entities.VerificationStatus) error {
	return r.updateColumn(ctx, id, "verification_status", string(status))
}

// SetExternalCustomerID links the user to their provider customer
func (r *UserRepository) SetExternalCustomerID(ctx context.Context, id uuid.UUID, customerID string) error {
	return r.updateColumn(ctx, id, "external_customer_id", customerID)
}

func (r *UserRepository) updateColumn(ctx context.Context, id uuid.UUID, column string, value interface{}) error {
	result := GetDB(ctx, r.db).Model(&models.User{}).Where("id = ?", id).Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) getWhere(ctx context.Context, query string, args ...interface{}) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).Where(query, args...).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *UserRepository) toEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:                 m.ID,
		Email:              m.Email,
		Name:               m.Name,
		Role:               entities.UserRole(m.Role),
		VerificationStatus: entities.VerificationStatus(m.VerificationStatus),
		ExternalCustomerID: null.StringFromPtr(m.ExternalCustomerID),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
