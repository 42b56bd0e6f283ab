package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wisteria0793/scorpion/internal/domain"
	"github.com/wisteria0793/scorpion/internal/infrastructure/postgres/models"
	"github.com/wisteria0793/scorpion/internal/infrastructure/postgres/repository"
	"github.com/wisteria0793/scorpion/internal/usecase"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type pricingEnv struct {
	DB           *gorm.DB
	PropertyRepo *repository.DefaultPropertyRepository
	CalendarRepo *repository.DefaultCalendarRepository
	Locks        *usecase.PropertyLocks
	Resolver     *usecase.DefaultRateResolver
	Editor       *usecase.DefaultBulkEditor
	Codec        *usecase.DefaultCSVCodec
	Property     *domain.Property
}

func defaultSettings() domain.BasicSettings {
	return domain.BasicSettings{
		BasePrice:       10000,
		BaseGuests:      4,
		AdultExtraPrice: 3000,
		ChildExtraPrice: 1500,
		MinNights:       1,
		CheckInTime:     "15:00",
		CheckOutTime:    "10:00",
	}
}

func setupPricingEnv(t *testing.T) *pricingEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// Every pooled connection to :memory: would get its own database;
	// pin the pool to one so concurrent test writers share state.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.PropertyModel{}, &models.DateOverrideModel{}))

	propertyRepo := repository.NewDefaultPropertyRepository(db)
	calendarRepo := repository.NewDefaultCalendarRepository(db)
	locks := usecase.NewPropertyLocks()

	resolver := usecase.NewDefaultRateResolver(propertyRepo, calendarRepo, nil)
	editor := usecase.NewDefaultBulkEditor(propertyRepo, calendarRepo, locks, domain.DefaultHorizon, nil, nil, nil)
	codec := usecase.NewDefaultCSVCodec(propertyRepo, calendarRepo, editor)

	property := &domain.Property{
		Name:        "Lakeside Cabin",
		ExternalKey: "room-42",
		Settings:    defaultSettings(),
	}
	require.NoError(t, propertyRepo.CreateProperty(context.Background(), property))

	return &pricingEnv{
		DB:           db,
		PropertyRepo: propertyRepo,
		CalendarRepo: calendarRepo,
		Locks:        locks,
		Resolver:     resolver,
		Editor:       editor,
		Codec:        codec,
		Property:     property,
	}
}

func intPtr(v int) *int {
	return &v
}

func pricePtr(v int64) *int64 {
	return &v
}
