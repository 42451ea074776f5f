package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"rampsync.backend/internal/domain/entities"
	"rampsync.backend/internal/infrastructure/models"
)

// TransferRepository mirrors provider transfers
type TransferRepository struct {
	db *gorm.DB
}

// NewTransferRepository creates a new transfer repository
func NewTransferRepository(db *gorm.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

// Upsert creates or patches the transfer keyed by its provider id
func (r *TransferRepository) Upsert(ctx context.Context, transfer *entities.Transfer) (*entities.Transfer, error) {
	m := &models.Transfer{
		ExternalID:                transfer.ExternalID,
		UserID:                    transfer.UserID,
		CustomerID:                transfer.CustomerID,
		State:                     transfer.State,
		Amount:                    transfer.Amount,
		Currency:                  transfer.Currency,
		DeveloperFee:              transfer.DeveloperFee,
		ClientReferenceID:         transfer.ClientReferenceID,
		Source:                    transfer.Source,
		Destination:               transfer.Destination,
		SourceDepositInstructions: transfer.SourceDepositInstructions,
		Receipt:                   transfer.Receipt,
		Features:                  transfer.Features,
		ProviderCreatedAt:         transfer.ProviderCreatedAt,
	}
	if err := upsertByExternalID(ctx, r.db, transfer.ExternalID, m); err != nil {
		return nil, err
	}
	return transferToEntity(m), nil
}

// GetByExternalID gets a transfer by provider id
func (r *TransferRepository) GetByExternalID(ctx context.Context, externalID string) (*entities.Transfer, error) {
	m, err := getByExternalID[models.Transfer](ctx, r.db, externalID)
	if err != nil {
		return nil, err
	}
	return transferToEntity(m), nil
}

// LinkToUser attaches the transfer to a local user
func (r *TransferRepository) LinkToUser(ctx context.Context, externalID string, userID uuid.UUID) error {
	return linkToUser[models.Transfer](ctx, r.db, externalID, userID)
}

func transferToEntity(m *models.Transfer) *entities.Transfer {
	return &entities.Transfer{
		ID:                        m.ID,
		ExternalID:                m.ExternalID,
		UserID:                    m.UserID,
		CustomerID:                m.CustomerID,
		State:                     m.State,
		Amount:                    m.Amount,
		Currency:                  m.Currency,
		DeveloperFee:              m.DeveloperFee,
		ClientReferenceID:         m.ClientReferenceID,
		Source:                    m.Source,
		Destination:               m.Destination,
		SourceDepositInstructions: m.SourceDepositInstructions,
		Receipt:                   m.Receipt,
		Features:                  m.Features,
		ProviderCreatedAt:         m.ProviderCreatedAt,
		CreatedAt:                 m.CreatedAt,
		UpdatedAt:                 m.UpdatedAt,
	}
}
