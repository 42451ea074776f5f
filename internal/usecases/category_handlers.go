package usecases

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"rampsync.backend/internal/domain/entities"
	domainerrors "rampsync.backend/internal/domain/errors"
	"rampsync.backend/internal/domain/repositories"
	"rampsync.backend/internal/infrastructure/provider"
	"rampsync.backend/pkg/logger"
)

// ownerLookup finds the local user behind a provider customer id
type ownerLookup struct {
	userRepo repositories.UserRepository
}

// ownerOf returns nil without error when no local user owns customerID yet
func (o ownerLookup) ownerOf(ctx context.Context, customerID string) (*uuid.UUID, error) {
	if customerID == "" {
		return nil, nil
	}
	user, err := o.userRepo.GetByExternalCustomerID(ctx, customerID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user.ID, nil
}

// CustomerHandler mirrors customer events. Status is stored verbatim.
type CustomerHandler struct {
	customerRepo repositories.CustomerRepository
	owners       ownerLookup
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerRepo repositories.CustomerRepository, userRepo repositories.UserRepository) *CustomerHandler {
	return &CustomerHandler{customerRepo: customerRepo, owners: ownerLookup{userRepo: userRepo}}
}

// Handle upserts the customer and links it to its local owner when known
func (h *CustomerHandler) Handle(ctx context.Context, eventType string, object json.RawMessage) error {
	var payload provider.Customer
	if err := decodeObject(object, &payload, func() string { return payload.ID }); err != nil {
		return err
	}

	customer := customerFromProvider(&payload)
	owner, err := h.owners.ownerOf(ctx, customer.ExternalID)
	if err != nil {
		return err
	}
	customer.UserID = owner

	_, err = h.customerRepo.Upsert(ctx, customer)
	return err
}

// KYCLinkHandler reconciles kyc_link events without an acting user
type KYCLinkHandler struct {
	reconciler *KYCReconciler
}

// NewKYCLinkHandler creates a new KYC link handler
func NewKYCLinkHandler(reconciler *KYCReconciler) *KYCLinkHandler {
	return &KYCLinkHandler{reconciler: reconciler}
}

// Handle reconciles the KYC link through the shared reconciler
func (h *KYCLinkHandler) Handle(ctx context.Context, eventType string, object json.RawMessage) error {
	var payload provider.KYCLink
	if err := decodeObject(object, &payload, func() string { return payload.ID }); err != nil {
		return err
	}

	_, err := h.reconciler.Reconcile(ctx, kycLinkFromProvider(&payload), nil)
	return err
}

// TransferHandler mirrors transfer events keyed by the transfer id
type TransferHandler struct {
	transferRepo repositories.TransferRepository
	owners       ownerLookup
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(transferRepo repositories.TransferRepository, userRepo repositories.UserRepository) *TransferHandler {
	return &TransferHandler{transferRepo: transferRepo, owners: ownerLookup{userRepo: userRepo}}
}

// Handle upserts the transfer with its state stored verbatim
func (h *TransferHandler) Handle(ctx context.Context, eventType string, object json.RawMessage) error {
	var payload provider.Transfer
	if err := decodeObject(object, &payload, func() string { return payload.ID }); err != nil {
		return err
	}

	transfer := transferFromProvider(&payload)
	owner, err := h.owners.ownerOf(ctx, transfer.CustomerID)
	if err != nil {
		return err
	}
	transfer.UserID = owner

	_, err = h.transferRepo.Upsert(ctx, transfer)
	return err
}

// DrainHandler mirrors liquidation address drains. Ownership follows the
// liquidation address when it is known locally, else the customer.
type DrainHandler struct {
	drainRepo   repositories.DrainRepository
	addressRepo repositories.LiquidationAddressRepository
	owners      ownerLookup
}

// NewDrainHandler creates a new drain handler
func NewDrainHandler(
	drainRepo repositories.DrainRepository,
	addressRepo repositories.LiquidationAddressRepository,
	userRepo repositories.UserRepository,
) *DrainHandler {
	return &DrainHandler{drainRepo: drainRepo, addressRepo: addressRepo, owners: ownerLookup{userRepo: userRepo}}
}

// Handle upserts the drain and resolves its owner
func (h *DrainHandler) Handle(ctx context.Context, eventType string, object json.RawMessage) error {
	var payload provider.Drain
	if err := decodeObject(object, &payload, func() string { return payload.ID }); err != nil {
		return err
	}

	drain := drainFromProvider(&payload)
	if drain.LiquidationAddressID != "" {
		address, err := h.addressRepo.GetByExternalID(ctx, drain.LiquidationAddressID)
		switch {
		case err == nil:
			drain.UserID = address.UserID
			if drain.CustomerID == "" {
				drain.CustomerID = address.CustomerID
			}
		case !errors.Is(err, domainerrors.ErrNotFound):
			return err
		}
	}
	if drain.UserID == nil {
		owner, err := h.owners.ownerOf(ctx, drain.CustomerID)
		if err != nil {
			return err
		}
		drain.UserID = owner
	}

	_, err := h.drainRepo.Upsert(ctx, drain)
	return err
}

// VirtualAccountActivityHandler appends activity to the ledger and applies
// deactivation/reactivation to the parent account.
type VirtualAccountActivityHandler struct {
	eventRepo   repositories.VirtualAccountEventRepository
	accountRepo repositories.VirtualAccountRepository
	owners      ownerLookup
}

// NewVirtualAccountActivityHandler creates a new virtual account activity handler
func NewVirtualAccountActivityHandler(
	eventRepo repositories.VirtualAccountEventRepository,
	accountRepo repositories.VirtualAccountRepository,
	userRepo repositories.UserRepository,
) *VirtualAccountActivityHandler {
	return &VirtualAccountActivityHandler{eventRepo: eventRepo, accountRepo: accountRepo, owners: ownerLookup{userRepo: userRepo}}
}

// Handle records the activity and applies account lifecycle changes
func (h *VirtualAccountActivityHandler) Handle(ctx context.Context, eventType string, object json.RawMessage) error {
	var payload provider.VirtualAccountActivity
	if err := decodeObject(object, &payload, func() string { return payload.ID }); err != nil {
		return err
	}

	activity := activityFromProvider(&payload)
	inserted, err := h.eventRepo.Append(ctx, activity)
	if err != nil {
		return err
	}
	if !inserted {
		logger.Debug(ctx, "Virtual account activity already recorded",
			zap.String("activity_id", activity.ExternalID),
		)
	}

	status, ok := activity.ParentStatus()
	if !ok || activity.VirtualAccountID == "" {
		return nil
	}

	err = h.accountRepo.UpdateStatus(ctx, activity.VirtualAccountID, status)
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return err
	}

	// Activity can arrive before the account itself was mirrored
	owner, err := h.owners.ownerOf(ctx, activity.CustomerID)
	if err != nil {
		return err
	}
	_, err = h.accountRepo.Upsert(ctx, &entities.VirtualAccount{
		ExternalID: activity.VirtualAccountID,
		UserID:     owner,
		CustomerID: activity.CustomerID,
		Status:     status,
	})
	return err
}
