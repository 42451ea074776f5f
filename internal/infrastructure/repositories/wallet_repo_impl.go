package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"rampsync.backend/internal/domain/entities"
	"rampsync.backend/internal/infrastructure/models"
)

// WalletRepository mirrors provider custody wallets
type WalletRepository struct {
	db *gorm.DB
}

// NewWalletRepository creates a new wallet repository
func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

// Upsert creates or patches the wallet keyed by its provider id
func (r *WalletRepository) Upsert(ctx context.Context, wallet *entities.Wallet) (*entities.Wallet, error) {
	m := &models.Wallet{
		ExternalID: wallet.ExternalID,
		UserID:     wallet.UserID,
		CustomerID: wallet.CustomerID,
		Chain:      wallet.Chain,
		Address:    wallet.Address,
	}
	if err := upsertByExternalID(ctx, r.db, wallet.ExternalID, m); err != nil {
		return nil, err
	}
	return walletToEntity(m), nil
}

// GetByExternalID gets a wallet by provider id
func (r *WalletRepository) GetByExternalID(ctx context.Context, externalID string) (*entities.Wallet, error) {
	m, err := getByExternalID[models.Wallet](ctx, r.db, externalID)
	if err != nil {
		return nil, err
	}
	return walletToEntity(m), nil
}

// LinkToUser attaches the wallet to a local user
func (r *WalletRepository) LinkToUser(ctx context.Context, externalID string, userID uuid.UUID) error {
	return linkToUser[models.Wallet](ctx, r.db, externalID, userID)
}

// ListByUser lists the user's wallets, oldest first
func (r *WalletRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Wallet, error) {
	ms, err := listByUser[models.Wallet](ctx, r.db, userID)
	if err != nil {
		return nil, err
	}
	wallets := make([]*entities.Wallet, 0, len(ms))
	for i := range ms {
		wallets = append(wallets, walletToEntity(&ms[i]))
	}
	return wallets, nil
}

func walletToEntity(m *models.Wallet) *entities.Wallet {
	return &entities.Wallet{
		ID:         m.ID,
		ExternalID: m.ExternalID,
		UserID:     m.UserID,
		CustomerID: m.CustomerID,
		Chain:      m.Chain,
		Address:    m.Address,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
