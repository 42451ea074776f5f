package usecases

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"rampsync.backend/internal/domain/entities"
	domainerrors "rampsync.backend/internal/domain/errors"
	"rampsync.backend/internal/domain/repositories"
	"rampsync.backend/internal/infrastructure/provider"
	"rampsync.backend/pkg/logger"
	"rampsync.backend/pkg/utils"
)

// KYCStatusView is what the dashboard shows about the user's verification
type KYCStatusView struct {
	Status            entities.VerificationStatus `json:"status"`
	Link              *entities.KYCLink           `json:"kycLink,omitempty"`
	ProvisioningError string                      `json:"provisioningError,omitempty"`
}

// KYCUsecase handles user-initiated verification
type KYCUsecase struct {
	provider    ProviderAPI
	kycLinkRepo repositories.KYCLinkRepository
	userRepo    repositories.UserRepository
	reconciler  *KYCReconciler
}

// NewKYCUsecase creates a new KYC usecase
func NewKYCUsecase(
	providerAPI ProviderAPI,
	kycLinkRepo repositories.KYCLinkRepository,
	userRepo repositories.UserRepository,
	reconciler *KYCReconciler,
) *KYCUsecase {
	return &KYCUsecase{
		provider:    providerAPI,
		kycLinkRepo: kycLinkRepo,
		userRepo:    userRepo,
		reconciler:  reconciler,
	}
}

// CreateKYCLink starts hosted verification for the acting user
func (u *KYCUsecase) CreateKYCLink(ctx context.Context, auth entities.AuthContext, input *entities.CreateKYCLinkInput) (*KYCStatusView, error) {
	if !auth.IsUser() {
		return nil, domainerrors.Unauthorized("user session required")
	}
	if _, err := u.userRepo.GetByID(ctx, auth.UserID); err != nil {
		return nil, err
	}

	kycType := strings.ToLower(strings.TrimSpace(input.Type))
	if kycType == "" {
		kycType = "individual"
	}
	created, err := u.provider.CreateKYCLink(ctx, provider.CreateKYCLinkRequest{
		FullName: strings.TrimSpace(input.FullName),
		Email:    strings.TrimSpace(input.Email),
		Type:     kycType,
	}, utils.GenerateUUIDv7().String())
	if err != nil {
		return nil, domainerrors.BadGateway("failed to create KYC link", err)
	}

	return u.reconcile(ctx, auth, created)
}

// GetKYCStatus refreshes the user's latest KYC link from the provider and
// reconciles it. Approval here triggers provisioning just like the webhook.
func (u *KYCUsecase) GetKYCStatus(ctx context.Context, auth entities.AuthContext) (*KYCStatusView, error) {
	if !auth.IsUser() {
		return nil, domainerrors.Unauthorized("user session required")
	}
	user, err := u.userRepo.GetByID(ctx, auth.UserID)
	if err != nil {
		return nil, err
	}

	link, err := u.kycLinkRepo.GetLatestByUser(ctx, auth.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return &KYCStatusView{Status: user.VerificationStatus}, nil
		}
		return nil, err
	}

	fresh, err := u.provider.GetKYCLink(ctx, link.ExternalID)
	if err != nil {
		return nil, domainerrors.BadGateway("failed to fetch KYC link", err)
	}
	return u.reconcile(ctx, auth, fresh)
}

func (u *KYCUsecase) reconcile(ctx context.Context, auth entities.AuthContext, link *provider.KYCLink) (*KYCStatusView, error) {
	result, err := u.reconciler.Reconcile(ctx, kycLinkFromProvider(link), &auth.UserID)
	if result == nil {
		return nil, err
	}

	view := &KYCStatusView{Status: result.Status, Link: result.Link}
	if err != nil {
		// The user is approved regardless; provisioning is retried by an operator
		logger.Error(ctx, "Provisioning failed during KYC status check",
			zap.String("user_id", auth.UserID.String()),
			zap.Error(err),
		)
		view.ProvisioningError = err.Error()
	}
	return view, nil
}
