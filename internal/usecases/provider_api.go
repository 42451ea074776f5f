package usecases

import (
	"context"

	"rampsync.backend/internal/infrastructure/provider"
)

// ProviderAPI is the subset of the provider REST client the usecases call
type ProviderAPI interface {
	CreateKYCLink(ctx context.Context, req provider.CreateKYCLinkRequest, idempotencyKey string) (*provider.KYCLink, error)
	GetKYCLink(ctx context.Context, kycLinkID string) (*provider.KYCLink, error)
	GetCustomer(ctx context.Context, customerID string) (*provider.Customer, error)
	CreateWallet(ctx context.Context, customerID, chain, idempotencyKey string) (*provider.Wallet, error)
	ListWallets(ctx context.Context, customerID string) ([]provider.Wallet, error)
	CreateVirtualAccount(ctx context.Context, customerID string, req provider.CreateVirtualAccountRequest, idempotencyKey string) (*provider.VirtualAccount, error)
	ListVirtualAccounts(ctx context.Context, customerID string) ([]provider.VirtualAccount, error)
	ListExternalAccounts(ctx context.Context, customerID string) ([]provider.ExternalAccount, error)
	ListLiquidationAddresses(ctx context.Context, customerID string) ([]provider.LiquidationAddress, error)
}
