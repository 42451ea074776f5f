package usecases

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"rampsync.backend/internal/domain/entities"
	domainerrors "rampsync.backend/internal/domain/errors"
	"rampsync.backend/internal/domain/repositories"
)

// SyncSummary counts the resources mirrored by one sync
type SyncSummary struct {
	CustomerID           string `json:"customerId"`
	Wallets              int    `json:"wallets"`
	VirtualAccounts      int    `json:"virtualAccounts"`
	ExternalAccounts     int    `json:"externalAccounts"`
	LiquidationAddresses int    `json:"liquidationAddresses"`
}

// SyncUsecase pulls a user's provider resources and mirrors them locally.
// It repairs anything a missed webhook left stale.
type SyncUsecase struct {
	provider            ProviderAPI
	userRepo            repositories.UserRepository
	customerRepo        repositories.CustomerRepository
	walletRepo          repositories.WalletRepository
	virtualAccRepo      repositories.VirtualAccountRepository
	externalAccountRepo repositories.ExternalAccountRepository
	liquidationRepo     repositories.LiquidationAddressRepository
}

// NewSyncUsecase creates a new sync usecase
func NewSyncUsecase(
	providerAPI ProviderAPI,
	userRepo repositories.UserRepository,
	customerRepo repositories.CustomerRepository,
	walletRepo repositories.WalletRepository,
	virtualAccRepo repositories.VirtualAccountRepository,
	externalAccountRepo repositories.ExternalAccountRepository,
	liquidationRepo repositories.LiquidationAddressRepository,
) *SyncUsecase {
	return &SyncUsecase{
		provider:            providerAPI,
		userRepo:            userRepo,
		customerRepo:        customerRepo,
		walletRepo:          walletRepo,
		virtualAccRepo:      virtualAccRepo,
		externalAccountRepo: externalAccountRepo,
		liquidationRepo:     liquidationRepo,
	}
}

// Sync mirrors the acting user's customer and its resources with ownership set
func (u *SyncUsecase) Sync(ctx context.Context, auth entities.AuthContext) (*SyncSummary, error) {
	if !auth.IsUser() {
		return nil, domainerrors.Unauthorized("user session required")
	}
	user, err := u.userRepo.GetByID(ctx, auth.UserID)
	if err != nil {
		return nil, err
	}
	if !user.ExternalCustomerID.Valid || user.ExternalCustomerID.String == "" {
		return nil, domainerrors.NewAppError(http.StatusConflict, domainerrors.CodeConflict,
			"complete verification before syncing", domainerrors.ErrCustomerNotLinked)
	}
	customerID := user.ExternalCustomerID.String
	owner := &user.ID
	summary := &SyncSummary{CustomerID: customerID}

	customer, err := u.provider.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, domainerrors.BadGateway("failed to fetch customer", err)
	}
	mirrored := customerFromProvider(customer)
	mirrored.UserID = owner
	if _, err := u.customerRepo.Upsert(ctx, mirrored); err != nil {
		return nil, err
	}

	wallets, err := u.provider.ListWallets(ctx, customerID)
	if err != nil {
		return nil, domainerrors.BadGateway("failed to list wallets", err)
	}
	for i := range wallets {
		w := walletFromProvider(&wallets[i], customerID)
		w.UserID = owner
		if _, err := u.walletRepo.Upsert(ctx, w); err != nil {
			return nil, err
		}
		summary.Wallets++
	}

	accounts, err := u.provider.ListVirtualAccounts(ctx, customerID)
	if err != nil {
		return nil, domainerrors.BadGateway("failed to list virtual accounts", err)
	}
	for i := range accounts {
		va := virtualAccountFromProvider(&accounts[i], customerID)
		va.UserID = owner
		if _, err := u.virtualAccRepo.Upsert(ctx, va); err != nil {
			return nil, err
		}
		summary.VirtualAccounts++
	}

	externalAccounts, err := u.provider.ListExternalAccounts(ctx, customerID)
	if err != nil {
		return nil, domainerrors.BadGateway("failed to list external accounts", err)
	}
	for i := range externalAccounts {
		ea := externalAccountFromProvider(&externalAccounts[i], customerID)
		ea.UserID = owner
		if _, err := u.externalAccountRepo.Upsert(ctx, ea); err != nil {
			return nil, err
		}
		summary.ExternalAccounts++
	}

	addresses, err := u.provider.ListLiquidationAddresses(ctx, customerID)
	if err != nil {
		return nil, domainerrors.BadGateway("failed to list liquidation addresses", err)
	}
	for i := range addresses {
		la := liquidationAddressFromProvider(&addresses[i], customerID)
		la.UserID = owner
		if _, err := u.liquidationRepo.Upsert(ctx, la); err != nil {
			return nil, err
		}
		summary.LiquidationAddresses++
	}

	return summary, nil
}

// ListWallets returns the wallets mirrored for userID
func (u *SyncUsecase) ListWallets(ctx context.Context, userID uuid.UUID) ([]*entities.Wallet, error) {
	return u.walletRepo.ListByUser(ctx, userID)
}

// ListVirtualAccounts returns the virtual accounts mirrored for userID
func (u *SyncUsecase) ListVirtualAccounts(ctx context.Context, userID uuid.UUID) ([]*entities.VirtualAccount, error) {
	return u.virtualAccRepo.ListByUser(ctx, userID)
}
