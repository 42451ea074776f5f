package usecases

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"rampsync.backend/internal/config"
	"rampsync.backend/internal/domain/entities"
	"rampsync.backend/internal/domain/repositories"
	"rampsync.backend/internal/infrastructure/provider"
	"rampsync.backend/pkg/logger"
	"rampsync.backend/pkg/metrics"
)

// Provisioning steps, also used as the failure metric label
const (
	StepCreateWallet         = "create_wallet"
	StepLinkWallet           = "link_wallet"
	StepCreateVirtualAccount = "create_virtual_account"
	StepLinkVirtualAccount   = "link_virtual_account"
	StepApproveUser          = "approve_user"
)

// Provisioner sets up custody infrastructure for a newly verified user
type Provisioner interface {
	Provision(ctx context.Context, userID uuid.UUID, customerID string) error
}

// OnboardingProvisioner creates the wallet and virtual account a verified user
// needs, then marks the user approved. Partial resources are never rolled back.
type OnboardingProvisioner struct {
	provider       ProviderAPI
	walletRepo     repositories.WalletRepository
	virtualAccRepo repositories.VirtualAccountRepository
	userRepo       repositories.UserRepository
	cfg            config.OnboardingConfig
}

// NewOnboardingProvisioner creates a new onboarding provisioner
func NewOnboardingProvisioner(
	providerAPI ProviderAPI,
	walletRepo repositories.WalletRepository,
	virtualAccRepo repositories.VirtualAccountRepository,
	userRepo repositories.UserRepository,
	cfg config.OnboardingConfig,
) *OnboardingProvisioner {
	return &OnboardingProvisioner{
		provider:       providerAPI,
		walletRepo:     walletRepo,
		virtualAccRepo: virtualAccRepo,
		userRepo:       userRepo,
		cfg:            cfg,
	}
}

// provisioningKey is stable per customer and resource kind so a re-run gets the
// same resource back from the provider instead of a second one.
func provisioningKey(customerID, kind string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("rampsync:"+customerID+":"+kind)).String()
}

// Provision runs the onboarding steps in order. If a step fails the user is
// still marked approved on a best-effort basis and the step error is returned.
func (p *OnboardingProvisioner) Provision(ctx context.Context, userID uuid.UUID, customerID string) error {
	step, err := p.provision(ctx, userID, customerID)
	if err == nil {
		if err := p.userRepo.UpdateVerificationStatus(ctx, userID, entities.VerificationApproved); err != nil {
			metrics.ProvisioningFailuresTotal.WithLabelValues(StepApproveUser).Inc()
			return fmt.Errorf("onboarding %s: %w", StepApproveUser, err)
		}
		logger.Info(ctx, "Onboarding provisioned",
			zap.String("user_id", userID.String()),
			zap.String("customer_id", customerID),
		)
		return nil
	}

	metrics.ProvisioningFailuresTotal.WithLabelValues(step).Inc()
	logger.Error(ctx, "Onboarding provisioning failed, manual follow-up required",
		zap.String("user_id", userID.String()),
		zap.String("customer_id", customerID),
		zap.String("step", step),
		zap.Error(err),
	)

	if statusErr := p.userRepo.UpdateVerificationStatus(ctx, userID, entities.VerificationApproved); statusErr != nil {
		metrics.ProvisioningFailuresTotal.WithLabelValues(StepApproveUser).Inc()
		logger.Error(ctx, "Failed to mark user approved after provisioning failure",
			zap.String("user_id", userID.String()),
			zap.Error(statusErr),
		)
	}
	return fmt.Errorf("onboarding %s: %w", step, err)
}

func (p *OnboardingProvisioner) provision(ctx context.Context, userID uuid.UUID, customerID string) (string, error) {
	// 1. Custody wallet
	created, err := p.provider.CreateWallet(ctx, customerID, p.cfg.WalletChain, provisioningKey(customerID, "wallet"))
	if err != nil {
		return StepCreateWallet, err
	}
	if !common.IsHexAddress(created.Address) {
		return StepCreateWallet, fmt.Errorf("provider returned invalid wallet address %q", created.Address)
	}
	wallet, err := p.walletRepo.Upsert(ctx, walletFromProvider(created, customerID))
	if err != nil {
		return StepCreateWallet, err
	}

	// 2. Link wallet
	if err := p.walletRepo.LinkToUser(ctx, wallet.ExternalID, userID); err != nil {
		return StepLinkWallet, err
	}

	// 3. Virtual account forwarding to the wallet
	req := provider.CreateVirtualAccountRequest{
		Source: provider.VirtualAccountSource{Currency: p.cfg.DepositCurrency},
		Destination: provider.VirtualAccountDestination{
			PaymentRail: p.cfg.DestinationRail,
			Currency:    p.cfg.DestinationCurrency,
			Address:     common.HexToAddress(wallet.Address).Hex(),
		},
	}
	va, err := p.provider.CreateVirtualAccount(ctx, customerID, req, provisioningKey(customerID, "virtual_account"))
	if err != nil {
		return StepCreateVirtualAccount, err
	}
	account, err := p.virtualAccRepo.Upsert(ctx, virtualAccountFromProvider(va, customerID))
	if err != nil {
		return StepCreateVirtualAccount, err
	}

	// 4. Link virtual account
	if err := p.virtualAccRepo.LinkToUser(ctx, account.ExternalID, userID); err != nil {
		return StepLinkVirtualAccount, err
	}
	return "", nil
}
