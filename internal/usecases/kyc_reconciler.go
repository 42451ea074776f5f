package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"rampsync.backend/internal/domain/entities"
	domainerrors "rampsync.backend/internal/domain/errors"
	"rampsync.backend/internal/domain/repositories"
	"rampsync.backend/pkg/logger"
)

// KYCReconciler applies a provider KYC link state to the local link, its owning
// user and, on approval, the onboarding provisioner. It serves both the webhook
// path and the user-initiated status check.
type KYCReconciler struct {
	kycLinkRepo  repositories.KYCLinkRepository
	customerRepo repositories.CustomerRepository
	userRepo     repositories.UserRepository
	uow          repositories.UnitOfWork
	provisioner  Provisioner
}

// KYCReconcileResult is the reconciled link and the owner's resulting status
type KYCReconcileResult struct {
	Link        *entities.KYCLink
	Status      entities.VerificationStatus
	Provisioned bool
}

// NewKYCReconciler creates a new KYC reconciler
func NewKYCReconciler(
	kycLinkRepo repositories.KYCLinkRepository,
	customerRepo repositories.CustomerRepository,
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
	provisioner Provisioner,
) *KYCReconciler {
	return &KYCReconciler{
		kycLinkRepo:  kycLinkRepo,
		customerRepo: customerRepo,
		userRepo:     userRepo,
		uow:          uow,
		provisioner:  provisioner,
	}
}

// Reconcile upserts link and moves its owner's verification status. actingUser
// is the dashboard user when the call comes from a user action, nil otherwise.
// A provisioning error is returned after the user has been marked approved.
func (r *KYCReconciler) Reconcile(ctx context.Context, link *entities.KYCLink, actingUser *uuid.UUID) (*KYCReconcileResult, error) {
	result := &KYCReconcileResult{}
	var provisionFor *entities.User

	err := r.uow.Do(ctx, func(txCtx context.Context) error {
		owner, err := r.resolveOwner(txCtx, link, actingUser)
		if err != nil {
			return err
		}
		link.UserID = nil
		if owner != nil {
			link.UserID = &owner.ID
		}

		stored, err := r.kycLinkRepo.Upsert(txCtx, link)
		if err != nil {
			return err
		}
		result.Link = stored
		result.Status = stored.VerificationStatus()

		// Webhook-first links stay unowned until a user claims them
		if owner == nil {
			return nil
		}

		if stored.CustomerID != "" {
			if !owner.ExternalCustomerID.Valid || owner.ExternalCustomerID.String != stored.CustomerID {
				if err := r.userRepo.SetExternalCustomerID(txCtx, owner.ID, stored.CustomerID); err != nil {
					return err
				}
			}
			if err := r.customerRepo.LinkToUser(txCtx, stored.CustomerID, owner.ID); err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
				return err
			}
		}

		if result.Status == entities.VerificationApproved {
			if owner.VerificationStatus == entities.VerificationApproved {
				return nil
			}
			if stored.CustomerID == "" {
				logger.Warn(txCtx, "KYC link approved without a customer id, skipping provisioning",
					zap.String("kyc_link_id", stored.ExternalID),
					zap.String("user_id", owner.ID.String()),
				)
				return r.userRepo.UpdateVerificationStatus(txCtx, owner.ID, entities.VerificationApproved)
			}
			provisionFor = owner
			return nil
		}

		if owner.VerificationStatus != result.Status {
			return r.userRepo.UpdateVerificationStatus(txCtx, owner.ID, result.Status)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Provisioning talks to the provider, so it runs after the link commits
	if provisionFor != nil {
		result.Provisioned = true
		if err := r.provisioner.Provision(ctx, provisionFor.ID, result.Link.CustomerID); err != nil {
			return result, err
		}
	}
	return result, nil
}

// resolveOwner picks the acting user, then the user already on the link, then
// the user linked to the link's customer id.
func (r *KYCReconciler) resolveOwner(ctx context.Context, link *entities.KYCLink, actingUser *uuid.UUID) (*entities.User, error) {
	ownerID := actingUser
	if ownerID == nil {
		existing, err := r.kycLinkRepo.GetByExternalID(ctx, link.ExternalID)
		switch {
		case err == nil:
			ownerID = existing.UserID
		case !errors.Is(err, domainerrors.ErrNotFound):
			return nil, err
		}
	}

	if ownerID != nil {
		return r.userRepo.GetByID(ctx, *ownerID)
	}
	if link.CustomerID == "" {
		return nil, nil
	}

	user, err := r.userRepo.GetByExternalCustomerID(ctx, link.CustomerID)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return nil, nil
	}
	return user, err
}
