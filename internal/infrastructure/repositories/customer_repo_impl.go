package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"rampsync.backend/internal/domain/entities"
	"rampsync.backend/internal/infrastructure/models"
)

// CustomerRepository mirrors provider customers
type CustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Upsert creates or patches the customer keyed by its provider id. A customer
// payload is a full snapshot, so rejection reasons and capabilities absent from
// it are cleared; terms acceptance is written only when the payload carried it.
func (r *CustomerRepository) Upsert(ctx context.Context, customer *entities.Customer) (*entities.Customer, error) {
	m := &models.Customer{
		ExternalID:       customer.ExternalID,
		UserID:           customer.UserID,
		FirstName:        customer.FirstName,
		LastName:         customer.LastName,
		Email:            customer.Email,
		Type:             customer.Type,
		Status:           customer.Status,
		HasAcceptedTOS:   customer.HasAcceptedTOS.Bool,
		Endorsements:     customer.Endorsements,
		RejectionReasons: customer.RejectionReasons,
	}
	if customer.Capabilities != (entities.CustomerCapabilities{}) {
		caps := customer.Capabilities
		m.Capabilities = &caps
	}
	columns := []string{"capabilities", "rejection_reasons"}
	if customer.HasAcceptedTOS.Valid {
		columns = append(columns, "has_accepted_terms_of_service")
	}
	if err := upsertByExternalID(ctx, r.db, customer.ExternalID, m, columns...); err != nil {
		return nil, err
	}
	return customerToEntity(m), nil
}

// GetByExternalID gets a customer by provider id
func (r *CustomerRepository) GetByExternalID(ctx context.Context, externalID string) (*entities.Customer, error) {
	m, err := getByExternalID[models.Customer](ctx, r.db, externalID)
	if err != nil {
		return nil, err
	}
	return customerToEntity(m), nil
}

// LinkToUser attaches the customer to a local user
func (r *CustomerRepository) LinkToUser(ctx context.Context, externalID string, userID uuid.UUID) error {
	return linkToUser[models.Customer](ctx, r.db, externalID, userID)
}

func customerToEntity(m *models.Customer) *entities.Customer {
	c := &entities.Customer{
		ID:               m.ID,
		ExternalID:       m.ExternalID,
		UserID:           m.UserID,
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		Email:            m.Email,
		Type:             m.Type,
		Status:           m.Status,
		HasAcceptedTOS:   null.BoolFrom(m.HasAcceptedTOS),
		Endorsements:     m.Endorsements,
		RejectionReasons: m.RejectionReasons,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if m.Capabilities != nil {
		c.Capabilities = *m.Capabilities
	}
	return c
}
