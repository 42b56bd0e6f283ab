package mappers

import (
	"github.com/wisteria0793/scorpion/internal/domain"
	"github.com/wisteria0793/scorpion/internal/infrastructure/postgres/models"
)

func ToPropertyModel(property *domain.Property) *models.PropertyModel {
	return &models.PropertyModel{
		ID:              property.ID,
		Name:            property.Name,
		ExternalKey:     property.ExternalKey,
		BasePrice:       property.Settings.BasePrice,
		BaseGuests:      property.Settings.BaseGuests,
		AdultExtraPrice: property.Settings.AdultExtraPrice,
		ChildExtraPrice: property.Settings.ChildExtraPrice,
		MinNights:       property.Settings.MinNights,
		CheckInTime:     property.Settings.CheckInTime,
		CheckOutTime:    property.Settings.CheckOutTime,
	}
}

func ToPropertyDomain(model *models.PropertyModel) *domain.Property {
	return &domain.Property{
		ID:          model.ID,
		Name:        model.Name,
		ExternalKey: model.ExternalKey,
		Settings: domain.BasicSettings{
			BasePrice:       model.BasePrice,
			BaseGuests:      model.BaseGuests,
			AdultExtraPrice: model.AdultExtraPrice,
			ChildExtraPrice: model.ChildExtraPrice,
			MinNights:       model.MinNights,
			CheckInTime:     model.CheckInTime,
			CheckOutTime:    model.CheckOutTime,
		},
	}
}
