package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	domainerrors "rampsync.backend/internal/domain/errors"
)

// upsertByExternalID stores m keyed by external_id. An existing row is patched
// with the non-zero fields of m plus the named columns, which are written even
// when zero; a missing row is inserted. If a concurrent writer inserts the same
// external_id first, the insert becomes a patch. On return m holds the stored row.
func upsertByExternalID[M any](ctx context.Context, db *gorm.DB, externalID string, m *M, columns ...string) error {
	if externalID == "" {
		return domainerrors.BadRequest("external id is required")
	}
	db = GetDB(ctx, db)

	var existing M
	err := db.Where("external_id = ?", externalID).Take(&existing).Error
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		res := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			DoNothing: true,
		}).Create(m)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 1 {
			return nil
		}
	default:
		return err
	}

	if err := db.Model(new(M)).
		Where("external_id = ?", externalID).
		Omit("id", "external_id", "created_at").
		Updates(m).Error; err != nil {
		return err
	}
	if len(columns) > 0 {
		if err := db.Model(new(M)).
			Where("external_id = ?", externalID).
			Select(columns).
			Updates(m).Error; err != nil {
			return err
		}
	}
	return db.Where("external_id = ?", externalID).Take(m).Error
}

func getByExternalID[M any](ctx context.Context, db *gorm.DB, externalID string) (*M, error) {
	var m M
	if err := GetDB(ctx, db).Where("external_id = ?", externalID).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// linkToUser sets the owning user on the resource. Relinking to the same user is a no-op success.
func linkToUser[M any](ctx context.Context, db *gorm.DB, externalID string, userID uuid.UUID) error {
	res := GetDB(ctx, db).Model(new(M)).
		Where("external_id = ?", externalID).
		Update("user_id", userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func listByUser[M any](ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]M, error) {
	var ms []M
	if err := GetDB(ctx, db).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return ms, nil
}
