package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"rampsync.backend/internal/domain/entities"
	"rampsync.backend/internal/infrastructure/models"
)

// LiquidationAddressRepository mirrors provider liquidation addresses
type LiquidationAddressRepository struct {
	db *gorm.DB
}

// NewLiquidationAddressRepository creates a new liquidation address repository
func NewLiquidationAddressRepository(db *gorm.DB) *LiquidationAddressRepository {
	return &LiquidationAddressRepository{db: db}
}

// Upsert creates or patches the address keyed by its provider id
func (r *LiquidationAddressRepository) Upsert(ctx context.Context, address *entities.LiquidationAddress) (*entities.LiquidationAddress, error) {
	m := &models.LiquidationAddress{
		ExternalID:             address.ExternalID,
		UserID:                 address.UserID,
		CustomerID:             address.CustomerID,
		Chain:                  address.Chain,
		Address:                address.Address,
		Currency:               address.Currency,
		State:                  address.State,
		ExternalAccountID:      address.ExternalAccountID,
		DestinationPaymentRail: address.DestinationPaymentRail,
		DestinationCurrency:    address.DestinationCurrency,
		DestinationAddress:     address.DestinationAddress,
	}
	if err := upsertByExternalID(ctx, r.db, address.ExternalID, m); err != nil {
		return nil, err
	}
	return liquidationAddressToEntity(m), nil
}

// GetByExternalID gets an address by provider id
func (r *LiquidationAddressRepository) GetByExternalID(ctx context.Context, externalID string) (*entities.LiquidationAddress, error) {
	m, err := getByExternalID[models.LiquidationAddress](ctx, r.db, externalID)
	if err != nil {
		return nil, err
	}
	return liquidationAddressToEntity(m), nil
}

// LinkToUser attaches the address to a local user
func (r *LiquidationAddressRepository) LinkToUser(ctx context.Context, externalID string, userID uuid.UUID) error {
	return linkToUser[models.LiquidationAddress](ctx, r.db, externalID, userID)
}

func liquidationAddressToEntity(m *models.LiquidationAddress) *entities.LiquidationAddress {
	return &entities.LiquidationAddress{
		ID:                     m.ID,
		ExternalID:             m.ExternalID,
		UserID:                 m.UserID,
		CustomerID:             m.CustomerID,
		Chain:                  m.Chain,
		Address:                m.Address,
		Currency:               m.Currency,
		State:                  m.State,
		ExternalAccountID:      m.ExternalAccountID,
		DestinationPaymentRail: m.DestinationPaymentRail,
		DestinationCurrency:    m.DestinationCurrency,
		DestinationAddress:     m.DestinationAddress,
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}
}

// DrainRepository mirrors liquidation address drains
type DrainRepository struct {
	db *gorm.DB
}

// NewDrainRepository creates a new drain repository
func NewDrainRepository(db *gorm.DB) *DrainRepository {
	return &DrainRepository{db: db}
}

// Upsert creates or patches the drain keyed by its provider id
func (r *DrainRepository) Upsert(ctx context.Context, drain *entities.Drain) (*entities.Drain, error) {
	m := &models.Drain{
		ExternalID:           drain.ExternalID,
		UserID:               drain.UserID,
		LiquidationAddressID: drain.LiquidationAddressID,
		CustomerID:           drain.CustomerID,
		Amount:               drain.Amount,
		Currency:             drain.Currency,
		State:                drain.State,
		SourcePaymentRail:    drain.SourcePaymentRail,
		FromAddress:          drain.FromAddress,
		Destination:          drain.Destination,
		DepositTxHash:        drain.DepositTxHash,
		DestinationTxHash:    drain.DestinationTxHash,
		Receipt:              drain.Receipt,
		ProviderCreatedAt:    drain.ProviderCreatedAt,
	}
	if err := upsertByExternalID(ctx, r.db, drain.ExternalID, m); err != nil {
		return nil, err
	}
	return drainToEntity(m), nil
}

// GetByExternalID gets a drain by provider id
func (r *DrainRepository) GetByExternalID(ctx context.Context, externalID string) (*entities.Drain, error) {
	m, err := getByExternalID[models.Drain](ctx, r.db, externalID)
	if err != nil {
		return nil, err
	}
	return drainToEntity(m), nil
}

func drainToEntity(m *models.Drain) *entities.Drain {
	return &entities.Drain{
		ID:                   m.ID,
		ExternalID:           m.ExternalID,
		UserID:               m.UserID,
		LiquidationAddressID: m.LiquidationAddressID,
		CustomerID:           m.CustomerID,
		Amount:               m.Amount,
		Currency:             m.Currency,
		State:                m.State,
		SourcePaymentRail:    m.SourcePaymentRail,
		FromAddress:          m.FromAddress,
		Destination:          m.Destination,
		DepositTxHash:        m.DepositTxHash,
		DestinationTxHash:    m.DestinationTxHash,
		Receipt:              m.Receipt,
		ProviderCreatedAt:    m.ProviderCreatedAt,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}
