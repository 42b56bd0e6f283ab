package usecase

import (
	"context"

	"github.com/wisteria0793/scorpion/internal/domain"
)

// PropertyUsecase is the thin slice of property CRUD the pricing core
// needs: reading a property and writing its basic pricing settings.
type PropertyUsecase interface {
	CreateProperty(ctx context.Context, property *domain.Property) error
	GetProperty(ctx context.Context, propertyID string) (*domain.Property, error)
	ListProperties(ctx context.Context) ([]*domain.Property, error)
	UpdateBasicSettings(ctx context.Context, propertyID string, settings domain.BasicSettings) error
}

type DefaultPropertyUsecase struct {
	PropertyRepo domain.PropertyRepository
	Locks        *PropertyLocks
}

func NewDefaultPropertyUsecase(propertyRepo domain.PropertyRepository, locks *PropertyLocks) *DefaultPropertyUsecase {
	return &DefaultPropertyUsecase{PropertyRepo: propertyRepo, Locks: locks}
}

func (uc *DefaultPropertyUsecase) CreateProperty(ctx context.Context, property *domain.Property) error {
	if err := validateBasicSettings(property.Settings); err != nil {
		return err
	}
	return uc.PropertyRepo.CreateProperty(ctx, property)
}

func (uc *DefaultPropertyUsecase) GetProperty(ctx context.Context, propertyID string) (*domain.Property, error) {
	return uc.PropertyRepo.GetProperty(ctx, propertyID)
}

func (uc *DefaultPropertyUsecase) ListProperties(ctx context.Context) ([]*domain.Property, error) {
	return uc.PropertyRepo.ListProperties(ctx)
}

func (uc *DefaultPropertyUsecase) UpdateBasicSettings(ctx context.Context, propertyID string, settings domain.BasicSettings) error {
	if err := validateBasicSettings(settings); err != nil {
		return err
	}

	release := uc.Locks.Acquire(propertyID)
	defer release()

	return uc.PropertyRepo.UpdateBasicSettings(ctx, propertyID, settings)
}

func validateBasicSettings(settings domain.BasicSettings) error {
	if settings.BasePrice < 0 {
		return domain.NewValidationError("negative base price %d", settings.BasePrice)
	}
	if settings.BaseGuests < 1 {
		return domain.NewValidationError("base guests %d below 1", settings.BaseGuests)
	}
	if settings.AdultExtraPrice < 0 || settings.ChildExtraPrice < 0 {
		return domain.NewValidationError("negative extra guest price")
	}
	if settings.MinNights < 1 {
		return domain.NewValidationError("min nights %d below 1", settings.MinNights)
	}
	return nil
}
