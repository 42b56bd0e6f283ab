package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wisteria0793/scorpion/internal/domain"
	"github.com/wisteria0793/scorpion/internal/infrastructure/postgres/mappers"
	"github.com/wisteria0793/scorpion/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultPropertyRepository struct {
	DB *gorm.DB
}

func NewDefaultPropertyRepository(db *gorm.DB) *DefaultPropertyRepository {
	return &DefaultPropertyRepository{DB: db}
}

func (r *DefaultPropertyRepository) CreateProperty(ctx context.Context, property *domain.Property) error {
	if property.ID == "" {
		property.ID = uuid.New().String()
	}
	model := mappers.ToPropertyModel(property)
	return r.DB.WithContext(ctx).Create(model).Error
}

func (r *DefaultPropertyRepository) GetProperty(ctx context.Context, propertyID string) (*domain.Property, error) {
	var model models.PropertyModel
	err := r.DB.WithContext(ctx).Where("id = ?", propertyID).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrPropertyNotFound
	}
	if err != nil {
		return nil, err
	}

	return mappers.ToPropertyDomain(&model), nil
}

func (r *DefaultPropertyRepository) ListProperties(ctx context.Context) ([]*domain.Property, error) {
	var propertyModels []models.PropertyModel
	if err := r.DB.WithContext(ctx).Order("created_at ASC").Find(&propertyModels).Error; err != nil {
		return nil, err
	}

	properties := make([]*domain.Property, len(propertyModels))
	for i := range propertyModels {
		properties[i] = mappers.ToPropertyDomain(&propertyModels[i])
	}

	return properties, nil
}

func (r *DefaultPropertyRepository) UpdateBasicSettings(ctx context.Context, propertyID string, settings domain.BasicSettings) error {
	updateData := map[string]interface{}{
		"base_price":        settings.BasePrice,
		"base_guests":       settings.BaseGuests,
		"adult_extra_price": settings.AdultExtraPrice,
		"child_extra_price": settings.ChildExtraPrice,
		"min_nights":        settings.MinNights,
	}
	if settings.CheckInTime != "" {
		updateData["check_in_time"] = settings.CheckInTime
	}
	if settings.CheckOutTime != "" {
		updateData["check_out_time"] = settings.CheckOutTime
	}

	result := r.DB.WithContext(ctx).Model(&models.PropertyModel{}).
		Where("id = ?", propertyID).
		Updates(updateData)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrPropertyNotFound
	}

	return nil
}
