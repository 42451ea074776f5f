package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"rampsync.backend/internal/domain/entities"
	domainerrors "rampsync.backend/internal/domain/errors"
	"rampsync.backend/internal/infrastructure/models"
)

// VirtualAccountRepository mirrors provider virtual accounts
type VirtualAccountRepository struct {
	db *gorm.DB
}

// NewVirtualAccountRepository creates a new virtual account repository
func NewVirtualAccountRepository(db *gorm.DB) *VirtualAccountRepository {
	return &VirtualAccountRepository{db: db}
}

// Upsert creates or patches the account keyed by its provider id
func (r *VirtualAccountRepository) Upsert(ctx context.Context, account *entities.VirtualAccount) (*entities.VirtualAccount, error) {
	m := &models.VirtualAccount{
		ExternalID:                account.ExternalID,
		UserID:                    account.UserID,
		CustomerID:                account.CustomerID,
		Status:                    account.Status,
		DeveloperFeePercent:       account.DeveloperFeePercent,
		SourceDepositInstructions: account.SourceDepositInstructions,
		Destination:               account.Destination,
	}
	if err := upsertByExternalID(ctx, r.db, account.ExternalID, m); err != nil {
		return nil, err
	}
	return virtualAccountToEntity(m), nil
}

// GetByExternalID gets an account by provider id
func (r *VirtualAccountRepository) GetByExternalID(ctx context.Context, externalID string) (*entities.VirtualAccount, error) {
	m, err := getByExternalID[models.VirtualAccount](ctx, r.db, externalID)
	if err != nil {
		return nil, err
	}
	return virtualAccountToEntity(m), nil
}

// LinkToUser attaches the account to a local user
func (r *VirtualAccountRepository) LinkToUser(ctx context.Context, externalID string, userID uuid.UUID) error {
	return linkToUser[models.VirtualAccount](ctx, r.db, externalID, userID)
}

// ListByUser lists the user's virtual accounts, oldest first
func (r *VirtualAccountRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.VirtualAccount, error) {
	ms, err := listByUser[models.VirtualAccount](ctx, r.db, userID)
	if err != nil {
		return nil, err
	}
	accounts := make([]*entities.VirtualAccount, 0, len(ms))
	for i := range ms {
		accounts = append(accounts, virtualAccountToEntity(&ms[i]))
	}
	return accounts, nil
}

// UpdateStatus sets the account status, e.g. after a deactivation activity
func (r *VirtualAccountRepository) UpdateStatus(ctx context.Context, externalID, status string) error {
	res := GetDB(ctx, r.db).Model(&models.VirtualAccount{}).
		Where("external_id = ?", externalID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func virtualAccountToEntity(m *models.VirtualAccount) *entities.VirtualAccount {
	return &entities.VirtualAccount{
		ID:                        m.ID,
		ExternalID:                m.ExternalID,
		UserID:                    m.UserID,
		CustomerID:                m.CustomerID,
		Status:                    m.Status,
		DeveloperFeePercent:       m.DeveloperFeePercent,
		SourceDepositInstructions: m.SourceDepositInstructions,
		Destination:               m.Destination,
		CreatedAt:                 m.CreatedAt,
		UpdatedAt:                 m.UpdatedAt,
	}
}

// VirtualAccountEventRepository is the append-only virtual account activity ledger
type VirtualAccountEventRepository struct {
	db *gorm.DB
}

// NewVirtualAccountEventRepository creates a new activity ledger repository
func NewVirtualAccountEventRepository(db *gorm.DB) *VirtualAccountEventRepository {
	return &VirtualAccountEventRepository{db: db}
}

// Append inserts the activity unless its id was already recorded
func (r *VirtualAccountEventRepository) Append(ctx context.Context, event *entities.VirtualAccountEvent) (bool, error) {
	if event.ExternalID == "" {
		return false, domainerrors.BadRequest("activity id is required")
	}
	m := &models.VirtualAccountEvent{
		ExternalID:         event.ExternalID,
		VirtualAccountID:   event.VirtualAccountID,
		CustomerID:         event.CustomerID,
		Type:               event.Type,
		Amount:             event.Amount,
		Currency:           event.Currency,
		DeveloperFeeAmount: event.DeveloperFeeAmount,
		ExchangeFeeAmount:  event.ExchangeFeeAmount,
		SubtotalAmount:     event.SubtotalAmount,
		GasFee:             event.GasFee,
		DepositID:          event.DepositID,
		Source:             event.Source,
		Receipt:            event.Receipt,
		Refund:             event.Refund,
		ProviderCreatedAt:  event.ProviderCreatedAt,
	}
	if len(event.AccountUpdate) > 0 {
		update := string(event.AccountUpdate)
		m.AccountUpdate = &update
	}

	res := GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "external_id"}},
		DoNothing: true,
	}).Create(m)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	event.ID = m.ID
	event.CreatedAt = m.CreatedAt
	return true, nil
}

// ListByVirtualAccount lists activity for an account, oldest first
func (r *VirtualAccountEventRepository) ListByVirtualAccount(ctx context.Context, virtualAccountID string) ([]*entities.VirtualAccountEvent, error) {
	var ms []models.VirtualAccountEvent
	if err := GetDB(ctx, r.db).
		Where("virtual_account_id = ?", virtualAccountID).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	events := make([]*entities.VirtualAccountEvent, 0, len(ms))
	for _, m := range ms {
		e := &entities.VirtualAccountEvent{
			ID:                 m.ID,
			ExternalID:         m.ExternalID,
			VirtualAccountID:   m.VirtualAccountID,
			CustomerID:         m.CustomerID,
			Type:               m.Type,
			Amount:             m.Amount,
			Currency:           m.Currency,
			DeveloperFeeAmount: m.DeveloperFeeAmount,
			ExchangeFeeAmount:  m.ExchangeFeeAmount,
			SubtotalAmount:     m.SubtotalAmount,
			GasFee:             m.GasFee,
			DepositID:          m.DepositID,
			Source:             m.Source,
			Receipt:            m.Receipt,
			Refund:             m.Refund,
			ProviderCreatedAt:  m.ProviderCreatedAt,
			CreatedAt:          m.CreatedAt,
		}
		if m.AccountUpdate != nil {
			e.AccountUpdate = []byte(*m.AccountUpdate)
		}
		events = append(events, e)
	}
	return events, nil
}
