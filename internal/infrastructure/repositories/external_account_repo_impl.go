package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"rampsync.backend/internal/domain/entities"
	"rampsync.backend/internal/infrastructure/models"
)

// ExternalAccountRepository mirrors payout bank accounts
type ExternalAccountRepository struct {
	db *gorm.DB
}

// NewExternalAccountRepository creates a new external account repository
func NewExternalAccountRepository(db *gorm.DB) *ExternalAccountRepository {
	return &ExternalAccountRepository{db: db}
}

// Upsert creates or patches the account keyed by its provider id
func (r *ExternalAccountRepository) Upsert(ctx context.Context, account *entities.ExternalAccount) (*entities.ExternalAccount, error) {
	m := &models.ExternalAccount{
		ExternalID:       account.ExternalID,
		UserID:           account.UserID,
		CustomerID:       account.CustomerID,
		BankName:         account.BankName,
		AccountOwnerName: account.AccountOwnerName,
		AccountOwnerType: account.AccountOwnerType,
		AccountType:      account.AccountType,
		Currency:         account.Currency,
		Last4:            account.Last4,
		Active:           account.Active,
	}
	if err := upsertByExternalID(ctx, r.db, account.ExternalID, m); err != nil {
		return nil, err
	}
	return externalAccountToEntity(m), nil
}

// GetByExternalID gets an account by provider id
func (r *ExternalAccountRepository) GetByExternalID(ctx context.Context, externalID string) (*entities.ExternalAccount, error) {
	m, err := getByExternalID[models.ExternalAccount](ctx, r.db, externalID)
	if err != nil {
		return nil, err
	}
	return externalAccountToEntity(m), nil
}

// LinkToUser attaches the account to a local user
func (r *ExternalAccountRepository) LinkToUser(ctx context.Context, externalID string, userID uuid.UUID) error {
	return linkToUser[models.ExternalAccount](ctx, r.db, externalID, userID)
}

func externalAccountToEntity(m *models.ExternalAccount) *entities.ExternalAccount {
	return &entities.ExternalAccount{
		ID:               m.ID,
		ExternalID:       m.ExternalID,
		UserID:           m.UserID,
		CustomerID:       m.CustomerID,
		BankName:         m.BankName,
		AccountOwnerName: m.AccountOwnerName,
		AccountOwnerType: m.AccountOwnerType,
		AccountType:      m.AccountType,
		Currency:         m.Currency,
		Last4:            m.Last4,
		Active:           m.Active,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
