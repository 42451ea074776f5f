package usecases

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"rampsync.backend/internal/domain/entities"
	domainerrors "rampsync.backend/internal/domain/errors"
	"rampsync.backend/internal/domain/repositories"
	"rampsync.backend/pkg/logger"
)

// AdminUsecase holds operator follow-up actions
type AdminUsecase struct {
	userRepo    repositories.UserRepository
	provisioner Provisioner
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(userRepo repositories.UserRepository, provisioner Provisioner) *AdminUsecase {
	return &AdminUsecase{userRepo: userRepo, provisioner: provisioner}
}

// ProvisionUser re-runs onboarding provisioning for an approved user. Every
// step is keyed so repeating it returns the resources created earlier.
func (u *AdminUsecase) ProvisionUser(ctx context.Context, auth entities.AuthContext, userID uuid.UUID) (*entities.User, error) {
	if !auth.IsAdmin() {
		return nil, domainerrors.Forbidden("operator access required")
	}
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.ExternalCustomerID.Valid || user.ExternalCustomerID.String == "" {
		return nil, domainerrors.NewAppError(http.StatusConflict, domainerrors.CodeConflict,
			"user has no provider customer", domainerrors.ErrCustomerNotLinked)
	}
	if user.VerificationStatus != entities.VerificationApproved {
		return nil, domainerrors.BadRequest("user verification is not approved")
	}

	logger.Info(ctx, "Operator re-running onboarding provisioning",
		zap.String("user_id", user.ID.String()),
		zap.Bool("operator_key", auth.Operator),
	)
	if err := u.provisioner.Provision(ctx, user.ID, user.ExternalCustomerID.String); err != nil {
		return nil, domainerrors.BadGateway("provisioning failed", err)
	}
	return u.userRepo.GetByID(ctx, user.ID)
}
