package repositories

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"rampsync.backend/internal/domain/entities"
	domainerrors "rampsync.backend/internal/domain/errors"
)

func TestTransferRepository_UpsertConverges(t *testing.T) {
	db := newTestDB(t)
	repo := NewTransferRepository(db)
	ctx := context.Background()

	payload := &entities.Transfer{
		ExternalID: "tr_1",
		CustomerID: "cus_1",
		State:      "awaiting_funds",
		Amount:     "10.00",
		Currency:   "usd",
		Source:     &entities.Endpoint{PaymentRail: "ach_push", Currency: "usd"},
	}
	first, err := repo.Upsert(ctx, payload)
	require.NoError(t, err)
	again, err := repo.Upsert(ctx, payload)
	require.NoError(t, err)
	require.Equal(t, first.ID, again.ID)

	second, err := repo.Upsert(ctx, &entities.Transfer{
		ExternalID: "tr_1",
		State:      "payment_processed",
		Receipt:    &entities.Receipt{FinalAmount: "9.95"},
	})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "payment_processed", second.State)
	require.Equal(t, "10.00", second.Amount, "fields absent from the patch are kept")
	require.Equal(t, "ach_push", second.Source.PaymentRail)
	require.Equal(t, "9.95", second.Receipt.FinalAmount)

	var count int64
	require.NoError(t, db.Table("transfers").Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestUpsert_RequiresExternalID(t *testing.T) {
	repo := NewWalletRepository(newTestDB(t))
	_, err := repo.Upsert(context.Background(), &entities.Wallet{Chain: "base"})
	require.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestUpsert_KeepsOwnerWhenPatchHasNone(t *testing.T) {
	db := newTestDB(t)
	repo := NewWalletRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	_, err := repo.Upsert(ctx, &entities.Wallet{ExternalID: "wal_1", UserID: &userID, Chain: "base"})
	require.NoError(t, err)
	updated, err := repo.Upsert(ctx, &entities.Wallet{ExternalID: "wal_1", Address: "0xabc"})
	require.NoError(t, err)
	require.NotNil(t, updated.UserID)
	require.Equal(t, userID, *updated.UserID)
	require.Equal(t, "base", updated.Chain)
	require.Equal(t, "0xabc", updated.Address)
}

func TestWalletRepository_LinkAndList(t *testing.T) {
	db := newTestDB(t)
	repo := NewWalletRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	_, err := repo.Upsert(ctx, &entities.Wallet{ExternalID: "wal_1", Chain: "base"})
	require.NoError(t, err)
	require.NoError(t, repo.LinkToUser(ctx, "wal_1", userID))
	require.NoError(t, repo.LinkToUser(ctx, "wal_1", userID), "relinking is idempotent")
	require.ErrorIs(t, repo.LinkToUser(ctx, "wal_missing", userID), domainerrors.ErrNotFound)

	wallets, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, wallets, 1)
	require.Equal(t, "wal_1", wallets[0].ExternalID)

	_, err = repo.GetByExternalID(ctx, "wal_missing")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCustomerRepository_UpsertNestedFields(t *testing.T) {
	db := newTestDB(t)
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	_, err := repo.Upsert(ctx, &entities.Customer{
		ExternalID:     "cus_1",
		FirstName:      "Ada",
		Status:         "under_review",
		HasAcceptedTOS: null.BoolFrom(true),
		Endorsements:   []entities.Endorsement{{Name: "base", Status: "incomplete"}},
		Capabilities:   entities.CustomerCapabilities{PayinFiat: "pending"},
	})
	require.NoError(t, err)

	got, err := repo.Upsert(ctx, &entities.Customer{
		ExternalID:   "cus_1",
		Status:       "active",
		Endorsements: []entities.Endorsement{{Name: "base", Status: "approved"}},
		Capabilities: entities.CustomerCapabilities{PayinFiat: "active", PayoutFiat: "active"},
	})
	require.NoError(t, err)
	require.Equal(t, "active", got.Status)
	require.Equal(t, "Ada", got.FirstName)
	require.True(t, got.HasAcceptedTOS.Bool)
	require.Equal(t, "approved", got.Endorsements[0].Status)
	require.Equal(t, "active", got.Capabilities.PayoutFiat)

	userID := uuid.New()
	require.NoError(t, repo.LinkToUser(ctx, "cus_1", userID))
	linked, err := repo.GetByExternalID(ctx, "cus_1")
	require.NoError(t, err)
	require.Equal(t, userID, *linked.UserID)
}

func TestCustomerRepository_UpsertClearsEmptiedFields(t *testing.T) {
	db := newTestDB(t)
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	_, err := repo.Upsert(ctx, &entities.Customer{
		ExternalID:       "cus_2",
		Status:           "rejected",
		HasAcceptedTOS:   null.BoolFrom(true),
		Capabilities:     entities.CustomerCapabilities{PayinFiat: "rejected"},
		RejectionReasons: []string{"document expired"},
	})
	require.NoError(t, err)

	got, err := repo.Upsert(ctx, &entities.Customer{
		ExternalID:     "cus_2",
		Status:         "active",
		HasAcceptedTOS: null.BoolFrom(false),
	})
	require.NoError(t, err)
	require.Equal(t, "active", got.Status)
	require.False(t, got.HasAcceptedTOS.Bool)
	require.Empty(t, got.RejectionReasons)
	require.Equal(t, entities.CustomerCapabilities{}, got.Capabilities)

	stored, err := repo.GetByExternalID(ctx, "cus_2")
	require.NoError(t, err)
	require.False(t, stored.HasAcceptedTOS.Bool)
	require.Empty(t, stored.RejectionReasons)
	require.Equal(t, entities.CustomerCapabilities{}, stored.Capabilities)
}

func TestKYCLinkRepository_LatestByUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewKYCLinkRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	_, err := repo.Upsert(ctx, &entities.KYCLink{ExternalID: "kyc_old", UserID: &userID, KYCStatus: "rejected"})
	require.NoError(t, err)
	mustExec(t, db, "UPDATE kyc_links SET created_at = ? WHERE external_id = ?", "2020-01-01 00:00:00", "kyc_old")
	_, err = repo.Upsert(ctx, &entities.KYCLink{ExternalID: "kyc_new", UserID: &userID, KYCStatus: "not_started", TOSStatus: "pending"})
	require.NoError(t, err)

	latest, err := repo.GetLatestByUser(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, "kyc_new", latest.ExternalID)

	_, err = repo.GetLatestByUser(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	other := uuid.New()
	require.NoError(t, repo.LinkToUser(ctx, "kyc_old", other))
	got, err := repo.GetByExternalID(ctx, "kyc_old")
	require.NoError(t, err)
	require.Equal(t, other, *got.UserID)
}

func TestVirtualAccountRepository_StatusAndLedger(t *testing.T) {
	db := newTestDB(t)
	accounts := NewVirtualAccountRepository(db)
	ledger := NewVirtualAccountEventRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	_, err := accounts.Upsert(ctx, &entities.VirtualAccount{
		ExternalID:  "va_1",
		UserID:      &userID,
		Status:      entities.VirtualAccountActivated,
		Destination: &entities.Endpoint{PaymentRail: "base", Currency: "usdc", ToAddress: "0xabc"},
	})
	require.NoError(t, err)

	require.NoError(t, accounts.UpdateStatus(ctx, "va_1", entities.VirtualAccountDeactivated))
	got, err := accounts.GetByExternalID(ctx, "va_1")
	require.NoError(t, err)
	require.Equal(t, entities.VirtualAccountDeactivated, got.Status)
	require.Equal(t, "0xabc", got.Destination.ToAddress)
	require.ErrorIs(t, accounts.UpdateStatus(ctx, "va_missing", "activated"), domainerrors.ErrNotFound)

	listed, err := accounts.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	activity := &entities.VirtualAccountEvent{
		ExternalID:       "vae_1",
		VirtualAccountID: "va_1",
		Type:             "funds_received",
		Amount:           "25.00",
		Receipt:          &entities.Receipt{FinalAmount: "24.90"},
		AccountUpdate:    json.RawMessage(`{"status":"activated"}`),
	}
	inserted, err := ledger.Append(ctx, activity)
	require.NoError(t, err)
	require.True(t, inserted)

	inserted, err = ledger.Append(ctx, &entities.VirtualAccountEvent{ExternalID: "vae_1", VirtualAccountID: "va_1", Type: "funds_received"})
	require.NoError(t, err)
	require.False(t, inserted)

	_, err = ledger.Append(ctx, &entities.VirtualAccountEvent{Type: "funds_received"})
	require.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	entries, err := ledger.ListByVirtualAccount(ctx, "va_1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "24.90", entries[0].Receipt.FinalAmount)
	require.JSONEq(t, `{"status":"activated"}`, string(entries[0].AccountUpdate))
}

func TestExternalAccountAndLiquidationRepositories(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	userID := uuid.New()

	externals := NewExternalAccountRepository(db)
	ea, err := externals.Upsert(ctx, &entities.ExternalAccount{ExternalID: "ea_1", BankName: "Chase", Last4: "1234", Active: true})
	require.NoError(t, err)
	require.True(t, ea.Active)
	require.NoError(t, externals.LinkToUser(ctx, "ea_1", userID))
	ea, err = externals.GetByExternalID(ctx, "ea_1")
	require.NoError(t, err)
	require.Equal(t, userID, *ea.UserID)

	addresses := NewLiquidationAddressRepository(db)
	la, err := addresses.Upsert(ctx, &entities.LiquidationAddress{ExternalID: "la_1", Chain: "ethereum", Currency: "usdc", ExternalAccountID: "ea_1"})
	require.NoError(t, err)
	require.Equal(t, "ea_1", la.ExternalAccountID)
	require.NoError(t, addresses.LinkToUser(ctx, "la_1", userID))
	la, err = addresses.GetByExternalID(ctx, "la_1")
	require.NoError(t, err)
	require.Equal(t, userID, *la.UserID)

	drains := NewDrainRepository(db)
	d, err := drains.Upsert(ctx, &entities.Drain{ExternalID: "dr_1", LiquidationAddressID: "la_1", State: "in_review", Amount: "5"})
	require.NoError(t, err)
	require.Equal(t, "in_review", d.State)
	d, err = drains.Upsert(ctx, &entities.Drain{ExternalID: "dr_1", State: "payment_processed", DestinationTxHash: "0xfeed"})
	require.NoError(t, err)
	require.Equal(t, "payment_processed", d.State)
	require.Equal(t, "5", d.Amount)

	got, err := drains.GetByExternalID(ctx, "dr_1")
	require.NoError(t, err)
	require.Equal(t, "0xfeed", got.DestinationTxHash)
}
