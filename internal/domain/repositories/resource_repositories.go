package repositories

import (
	"context"

	"github.com/google/uuid"
	"rampsync.backend/internal/domain/entities"
)

// Upsert on every resource repository looks the record up by ExternalID,
// patches the non-empty fields when found and inserts otherwise. LinkToUser
// attaches ownership once the local user is known.

type CustomerRepository interface {
	Upsert(ctx context.Context, customer *entities.Customer) (*entities.Customer, error)
	GetByExternalID(ctx context.Context, externalID string) (*entities.Customer, error)
	LinkToUser(ctx context.Context, externalID string, userID uuid.UUID) error
}

type KYCLinkRepository interface {
	Upsert(ctx context.Context, link *entities.KYCLink) (*entities.KYCLink, error)
	GetByExternalID(ctx context.Context, externalID string) (*entities.KYCLink, error)
	GetLatestByUser(ctx context.Context, userID uuid.UUID) (*entities.KYCLink, error)
	LinkToUser(ctx context.Context, externalID string, userID uuid.UUID) error
}

type WalletRepository interface {
	Upsert(ctx context.Context, wallet *entities.Wallet) (*entities.Wallet, error)
	GetByExternalID(ctx context.Context, externalID string) (*entities.Wallet, error)
	LinkToUser(ctx context.Context, externalID string, userID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Wallet, error)
}

type VirtualAccountRepository interface {
	Upsert(ctx context.Context, account *entities.VirtualAccount) (*entities.VirtualAccount, error)
	GetByExternalID(ctx context.Context, externalID string) (*entities.VirtualAccount, error)
	LinkToUser(ctx context.Context, externalID string, userID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.VirtualAccount, error)
	UpdateStatus(ctx context.Context, externalID, status string) error
}

// VirtualAccountEventRepository is an append-only activity ledger
type VirtualAccountEventRepository interface {
	// Append reports false when an entry with the same ExternalID already exists
	Append(ctx context.Context, event *entities.VirtualAccountEvent) (bool, error)
	ListByVirtualAccount(ctx context.Context, virtualAccountID string) ([]*entities.VirtualAccountEvent, error)
}

type ExternalAccountRepository interface {
	Upsert(ctx context.Context, account *entities.ExternalAccount) (*entities.ExternalAccount, error)
	GetByExternalID(ctx context.Context, externalID string) (*entities.ExternalAccount, error)
	LinkToUser(ctx context.Context, externalID string, userID uuid.UUID) error
}

type TransferRepository interface {
	Upsert(ctx context.Context, transfer *entities.Transfer) (*entities.Transfer, error)
	GetByExternalID(ctx context.Context, externalID string) (*entities.Transfer, error)
	LinkToUser(ctx context.Context, externalID string, userID uuid.UUID) error
}

type LiquidationAddressRepository interface {
	Upsert(ctx context.Context, address *entities.LiquidationAddress) (*entities.LiquidationAddress, error)
	GetByExternalID(ctx context.Context, externalID string) (*entities.LiquidationAddress, error)
	LinkToUser(ctx context.Context, externalID string, userID uuid.UUID) error
}

type DrainRepository interface {
	Upsert(ctx context.Context, drain *entities.Drain) (*entities.Drain, error)
	GetByExternalID(ctx context.Context, externalID string) (*entities.Drain, error)
}
