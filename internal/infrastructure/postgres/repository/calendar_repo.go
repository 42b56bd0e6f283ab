package repository

import (
	"context"
	"errors"

	"github.com/wisteria0793/scorpion/internal/domain"
	"github.com/wisteria0793/scorpion/internal/infrastructure/postgres/mappers"
	"github.com/wisteria0793/scorpion/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultCalendarRepository is the canonical per-date override store.
type DefaultCalendarRepository struct {
	DB *gorm.DB
}

func NewDefaultCalendarRepository(db *gorm.DB) *DefaultCalendarRepository {
	return &DefaultCalendarRepository{DB: db}
}

var overrideUpsertColumns = []string{"price", "min_nights", "is_blackout", "blackout_reason", "source", "updated_at"}

func (r *DefaultCalendarRepository) Get(ctx context.Context, propertyID string, day domain.Day) (*domain.DateOverride, error) {
	var model models.DateOverrideModel
	err := r.DB.WithContext(ctx).
		Where("property_id = ? AND date = ?", propertyID, day.String()).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return mappers.ToOverrideDomain(&model)
}

func (r *DefaultCalendarRepository) GetRange(ctx context.Context, propertyID string, start, end domain.Day) ([]*domain.DateOverride, error) {
	var overrideModels []models.DateOverrideModel
	err := r.DB.WithContext(ctx).
		Where("property_id = ? AND date >= ? AND date <= ?", propertyID, start.String(), end.String()).
		Order("date ASC").
		Find(&overrideModels).Error
	if err != nil {
		return nil, err
	}

	overrides := make([]*domain.DateOverride, 0, len(overrideModels))
	for i := range overrideModels {
		override, err := mappers.ToOverrideDomain(&overrideModels[i])
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, override)
	}

	return overrides, nil
}

func (r *DefaultCalendarRepository) Upsert(ctx context.Context, override *domain.DateOverride) error {
	return upsertOverride(r.DB.WithContext(ctx), override)
}

func (r *DefaultCalendarRepository) Delete(ctx context.Context, propertyID string, day domain.Day) error {
	// Deleting an absent override is a no-op, not an error.
	return r.DB.WithContext(ctx).
		Where("property_id = ? AND date = ?", propertyID, day.String()).
		Delete(&models.DateOverrideModel{}).Error
}

// ApplyBatch runs every upsert and delete of one bulk edit in a single
// transaction, so readers never observe a half-applied batch.
func (r *DefaultCalendarRepository) ApplyBatch(ctx context.Context, propertyID string, upserts []*domain.DateOverride, deletes []domain.Day) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, override := range upserts {
			if err := upsertOverride(tx, override); err != nil {
				return err
			}
		}
		for _, day := range deletes {
			err := tx.Where("property_id = ? AND date = ?", propertyID, day.String()).
				Delete(&models.DateOverrideModel{}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func upsertOverride(tx *gorm.DB, override *domain.DateOverride) error {
	model := mappers.ToOverrideModel(override)
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "property_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns(overrideUpsertColumns),
	}).Create(model).Error
}
