package mappers

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/wisteria0793/scorpion/internal/domain"
	"github.com/wisteria0793/scorpion/internal/infrastructure/postgres/models"
)

func ToOverrideModel(override *domain.DateOverride) *models.DateOverrideModel {
	return &models.DateOverrideModel{
		ID:             uuid.New().String(),
		PropertyID:     override.PropertyID,
		Date:           override.Date.String(),
		Price:          override.Price,
		MinNights:      override.MinNights,
		IsBlackout:     override.IsBlackout,
		BlackoutReason: override.BlackoutReason,
		Source:         override.Source,
	}
}

func ToOverrideDomain(model *models.DateOverrideModel) (*domain.DateOverride, error) {
	day, err := domain.ParseDay(model.Date)
	if err != nil {
		return nil, fmt.Errorf("stored override %s has bad date: %w", model.ID, err)
	}

	return &domain.DateOverride{
		PropertyID:     model.PropertyID,
		Date:           day,
		Price:          model.Price,
		MinNights:      model.MinNights,
		IsBlackout:     model.IsBlackout,
		BlackoutReason: model.BlackoutReason,
		Source:         model.Source,
	}, nil
}
