package usecases_test

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"rampsync.backend/internal/domain/entities"
	"rampsync.backend/internal/infrastructure/provider"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByExternalCustomerID(ctx context.Context, customerID string) (*entities.User, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) UpdateVerificationStatus(ctx context.Context, id uuid.UUID, status entities.VerificationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockUserRepository) SetExternalCustomerID(ctx context.Context, id uuid.UUID, customerID string) error {
	args := m.Called(ctx, id, customerID)
	return args.Error(0)
}

// Mock WebhookEventRepository
type MockWebhookEventRepository struct {
	mock.Mock
}

func (m *MockWebhookEventRepository) Store(ctx context.Context, event *entities.WebhookEvent) (*entities.StoreResult, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.StoreResult), args.Error(1)
}

func (m *MockWebhookEventRepository) MarkProcessed(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

func (m *MockWebhookEventRepository) GetByEventID(ctx context.Context, eventID string) (*entities.WebhookEvent, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WebhookEvent), args.Error(1)
}

func (m *MockWebhookEventRepository) ListUnprocessed(ctx context.Context, limit, offset int) ([]*entities.WebhookEvent, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.WebhookEvent), args.Get(1).(int64), args.Error(2)
}

func (m *MockWebhookEventRepository) CountUnprocessedBefore(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// Mock CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Upsert(ctx context.Context, customer *entities.Customer) (*entities.Customer, error) {
	args := m.Called(ctx, customer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Customer), args.Error(1)
}

func (m *MockCustomerRepository) GetByExternalID(ctx context.Context, externalID string) (*entities.Customer, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Customer), args.Error(1)
}

func (m *MockCustomerRepository) LinkToUser(ctx context.Context, externalID string, userID uuid.UUID) error {
	args := m.Called(ctx, externalID, userID)
	return args.Error(0)
}

// Mock KYCLinkRepository
type MockKYCLinkRepository struct {
	mock.Mock
}

func (m *MockKYCLinkRepository) Upsert(ctx context.Context, link *entities.KYCLink) (*entities.KYCLink, error) {
	args := m.Called(ctx, link)
	if fn, ok := args.Get(0).(func(context.Context, *entities.KYCLink) *entities.KYCLink); ok {
		return fn(ctx, link), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.KYCLink), args.Error(1)
}

func (m *MockKYCLinkRepository) GetByExternalID(ctx context.Context, externalID string) (*entities.KYCLink, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.KYCLink), args.Error(1)
}

func (m *MockKYCLinkRepository) GetLatestByUser(ctx context.Context, userID uuid.UUID) (*entities.KYCLink, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.KYCLink), args.Error(1)
}

func (m *MockKYCLinkRepository) LinkToUser(ctx context.Context, externalID string, userID uuid.UUID) error {
	args := m.Called(ctx, externalID, userID)
	return args.Error(0)
}

// Mock WalletRepository
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) Upsert(ctx context.Context, wallet *entities.Wallet) (*entities.Wallet, error) {
	args := m.Called(ctx, wallet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetByExternalID(ctx context.Context, externalID string) (*entities.Wallet, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wallet), args.Error(1)
}

func (m *MockWalletRepository) LinkToUser(ctx context.Context, externalID string, userID uuid.UUID) error {
	args := m.Called(ctx, externalID, userID)
	return args.Error(0)
}

func (m *MockWalletRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Wallet), args.Error(1)
}

// Mock VirtualAccountRepository
type MockVirtualAccountRepository struct {
	mock.Mock
}

func (m *MockVirtualAccountRepository) Upsert(ctx context.Context, account *entities.VirtualAccount) (*entities.VirtualAccount, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.VirtualAccount), args.Error(1)
}

func (m *MockVirtualAccountRepository) GetByExternalID(ctx context.Context, externalID string) (*entities.VirtualAccount, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.VirtualAccount), args.Error(1)
}

func (m *MockVirtualAccountRepository) LinkToUser(ctx context.Context, externalID string, userID uuid.UUID) error {
	args := m.Called(ctx, externalID, userID)
	return args.Error(0)
}

func (m *MockVirtualAccountRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.VirtualAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.VirtualAccount), args.Error(1)
}

func (m *MockVirtualAccountRepository) UpdateStatus(ctx context.Context, externalID, status string) error {
	args := m.Called(ctx, externalID, status)
	return args.Error(0)
}

// Mock VirtualAccountEventRepository
type MockVirtualAccountEventRepository struct {
	mock.Mock
}

func (m *MockVirtualAccountEventRepository) Append(ctx context.Context, event *entities.VirtualAccountEvent) (bool, error) {
	args := m.Called(ctx, event)
	return args.Bool(0), args.Error(1)
}

func (m *MockVirtualAccountEventRepository) ListByVirtualAccount(ctx context.Context, virtualAccountID string) ([]*entities.VirtualAccountEvent, error) {
	args := m.Called(ctx, virtualAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.VirtualAccountEvent), args.Error(1)
}

// Mock ExternalAccountRepository
type MockExternalAccountRepository struct {
	mock.Mock
}

func (m *MockExternalAccountRepository) Upsert(ctx context.Context, account *entities.ExternalAccount) (*entities.ExternalAccount, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ExternalAccount), args.Error(1)
}

func (m *MockExternalAccountRepository) GetByExternalID(ctx context.Context, externalID string) (*entities.ExternalAccount, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ExternalAccount), args.Error(1)
}

func (m *MockExternalAccountRepository) LinkToUser(ctx context.Context, externalID string, userID uuid.UUID) error {
	args := m.Called(ctx, externalID, userID)
	return args.Error(0)
}

// Mock TransferRepository
type MockTransferRepository struct {
	mock.Mock
}

func (m *MockTransferRepository) Upsert(ctx context.Context, transfer *entities.Transfer) (*entities.Transfer, error) {
	args := m.Called(ctx, transfer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Transfer), args.Error(1)
}

func (m *MockTransferRepository) GetByExternalID(ctx context.Context, externalID string) (*entities.Transfer, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Transfer), args.Error(1)
}

func (m *MockTransferRepository) LinkToUser(ctx context.Context, externalID string, userID uuid.UUID) error {
	args := m.Called(ctx, externalID, userID)
	return args.Error(0)
}

// Mock LiquidationAddressRepository
type MockLiquidationAddressRepository struct {
	mock.Mock
}

func (m *MockLiquidationAddressRepository) Upsert(ctx context.Context, address *entities.LiquidationAddress) (*entities.LiquidationAddress, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LiquidationAddress), args.Error(1)
}

func (m *MockLiquidationAddressRepository) GetByExternalID(ctx context.Context, externalID string) (*entities.LiquidationAddress, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LiquidationAddress), args.Error(1)
}

func (m *MockLiquidationAddressRepository) LinkToUser(ctx context.Context, externalID string, userID uuid.UUID) error {
	args := m.Called(ctx, externalID, userID)
	return args.Error(0)
}

// Mock DrainRepository
type MockDrainRepository struct {
	mock.Mock
}

func (m *MockDrainRepository) Upsert(ctx context.Context, drain *entities.Drain) (*entities.Drain, error) {
	args := m.Called(ctx, drain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Drain), args.Error(1)
}

func (m *MockDrainRepository) GetByExternalID(ctx context.Context, externalID string) (*entities.Drain, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Drain), args.Error(1)
}

// Mock ProviderAPI
type MockProviderAPI struct {
	mock.Mock
}

func (m *MockProviderAPI) CreateKYCLink(ctx context.Context, req provider.CreateKYCLinkRequest, idempotencyKey string) (*provider.KYCLink, error) {
	args := m.Called(ctx, req, idempotencyKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.KYCLink), args.Error(1)
}

func (m *MockProviderAPI) GetKYCLink(ctx context.Context, kycLinkID string) (*provider.KYCLink, error) {
	args := m.Called(ctx, kycLinkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.KYCLink), args.Error(1)
}

func (m *MockProviderAPI) GetCustomer(ctx context.Context, customerID string) (*provider.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Customer), args.Error(1)
}

func (m *MockProviderAPI) CreateWallet(ctx context.Context, customerID, chain, idempotencyKey string) (*provider.Wallet, error) {
	args := m.Called(ctx, customerID, chain, idempotencyKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Wallet), args.Error(1)
}

func (m *MockProviderAPI) ListWallets(ctx context.Context, customerID string) ([]provider.Wallet, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]provider.Wallet), args.Error(1)
}

func (m *MockProviderAPI) CreateVirtualAccount(ctx context.Context, customerID string, req provider.CreateVirtualAccountRequest, idempotencyKey string) (*provider.VirtualAccount, error) {
	args := m.Called(ctx, customerID, req, idempotencyKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.VirtualAccount), args.Error(1)
}

func (m *MockProviderAPI) ListVirtualAccounts(ctx context.Context, customerID string) ([]provider.VirtualAccount, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]provider.VirtualAccount), args.Error(1)
}

func (m *MockProviderAPI) ListExternalAccounts(ctx context.Context, customerID string) ([]provider.ExternalAccount, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]provider.ExternalAccount), args.Error(1)
}

func (m *MockProviderAPI) ListLiquidationAddresses(ctx context.Context, customerID string) ([]provider.LiquidationAddress, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]provider.LiquidationAddress), args.Error(1)
}

// Mock Provisioner
type MockProvisioner struct {
	mock.Mock
}

func (m *MockProvisioner) Provision(ctx context.Context, userID uuid.UUID, customerID string) error {
	args := m.Called(ctx, userID, customerID)
	return args.Error(0)
}

// Mock CategoryHandler
type MockCategoryHandler struct {
	mock.Mock
}

func (m *MockCategoryHandler) Handle(ctx context.Context, eventType string, object json.RawMessage) error {
	args := m.Called(ctx, eventType, object)
	return args.Error(0)
}

// Mock EventRouting
type MockEventRouter struct {
	mock.Mock
}

func (m *MockEventRouter) Route(ctx context.Context, event *entities.WebhookEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
