package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"rampsync.backend/internal/domain/entities"
	domainerrors "rampsync.backend/internal/domain/errors"
	"rampsync.backend/internal/infrastructure/models"
)

// KYCLinkRepository mirrors provider KYC links
type KYCLinkRepository struct {
	db *gorm.DB
}

// NewKYCLinkRepository creates a new KYC link repository
func NewKYCLinkRepository(db *gorm.DB) *KYCLinkRepository {
	return &KYCLinkRepository{db: db}
}

// Upsert creates or patches the link keyed by its provider id
func (r *KYCLinkRepository) Upsert(ctx context.Context, link *entities.KYCLink) (*entities.KYCLink, error) {
	m := &models.KYCLink{
		ExternalID:       link.ExternalID,
		UserID:           link.UserID,
		CustomerID:       link.CustomerID,
		FullName:         link.FullName,
		Email:            link.Email,
		Type:             link.Type,
		KYCLink:          link.KYCLink,
		TOSLink:          link.TOSLink,
		KYCStatus:        link.KYCStatus,
		TOSStatus:        link.TOSStatus,
		RejectionReasons: link.RejectionReasons,
	}
	if err := upsertByExternalID(ctx, r.db, link.ExternalID, m); err != nil {
		return nil, err
	}
	return kycLinkToEntity(m), nil
}

// GetByExternalID gets a link by provider id
func (r *KYCLinkRepository) GetByExternalID(ctx context.Context, externalID string) (*entities.KYCLink, error) {
	m, err := getByExternalID[models.KYCLink](ctx, r.db, externalID)
	if err != nil {
		return nil, err
	}
	return kycLinkToEntity(m), nil
}

// GetLatestByUser returns the user's most recently created link
func (r *KYCLinkRepository) GetLatestByUser(ctx context.Context, userID uuid.UUID) (*entities.KYCLink, error) {
	var m models.KYCLink
	if err := GetDB(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return kycLinkToEntity(&m), nil
}

// LinkToUser attaches the link to a local user
func (r *KYCLinkRepository) LinkToUser(ctx context.Context, externalID string, userID uuid.UUID) error {
	return linkToUser[models.KYCLink](ctx, r.db, externalID, userID)
}

func kycLinkToEntity(m *models.KYCLink) *entities.KYCLink {
	return &entities.KYCLink{
		ID:               m.ID,
		ExternalID:       m.ExternalID,
		UserID:           m.UserID,
		CustomerID:       m.CustomerID,
		FullName:         m.FullName,
		Email:            m.Email,
		Type:             m.Type,
		KYCLink:          m.KYCLink,
		TOSLink:          m.TOSLink,
		KYCStatus:        m.KYCStatus,
		TOSStatus:        m.TOSStatus,
		RejectionReasons: m.RejectionReasons,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
