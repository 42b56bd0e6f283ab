package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wisteria0793/scorpion/internal/domain"
	"github.com/wisteria0793/scorpion/internal/infrastructure/postgres/models"
	"github.com/wisteria0793/scorpion/internal/infrastructure/postgres/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.PropertyModel{}, &models.DateOverrideModel{}))
	return db
}

func price(v int64) *int64 {
	return &v
}

func TestCalendarRepository_UpsertAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewDefaultCalendarRepository(db)
	ctx := context.Background()

	day := domain.NewDay(2026, 3, 10)
	override := &domain.DateOverride{
		PropertyID: "prop-1",
		Date:       day,
		Price:      price(12000),
		Source:     domain.SourceManual,
	}

	require.NoError(t, repo.Upsert(ctx, override))

	got, err := repo.Get(ctx, "prop-1", day)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(12000), *got.Price)
	assert.False(t, got.IsBlackout)

	// Absent days return nil without error.
	got, err = repo.Get(ctx, "prop-1", day.Next())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCalendarRepository_UpsertReplacesExistingDate(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewDefaultCalendarRepository(db)
	ctx := context.Background()

	day := domain.NewDay(2026, 4, 1)
	require.NoError(t, repo.Upsert(ctx, &domain.DateOverride{
		PropertyID: "prop-1", Date: day, Price: price(10000), Source: domain.SourceManual,
	}))
	require.NoError(t, repo.Upsert(ctx, &domain.DateOverride{
		PropertyID: "prop-1", Date: day, Price: price(15000), Source: domain.SourceCSV,
	}))

	var count int64
	require.NoError(t, db.Model(&models.DateOverrideModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	got, err := repo.Get(ctx, "prop-1", day)
	require.NoError(t, err)
	assert.Equal(t, int64(15000), *got.Price)
	assert.Equal(t, domain.SourceCSV, got.Source)
}

func TestCalendarRepository_GetRangeSparseAscending(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewDefaultCalendarRepository(db)
	ctx := context.Background()

	days := []domain.Day{
		domain.NewDay(2026, 5, 20),
		domain.NewDay(2026, 5, 3),
		domain.NewDay(2026, 5, 11),
	}
	for _, day := range days {
		require.NoError(t, repo.Upsert(ctx, &domain.DateOverride{
			PropertyID: "prop-1", Date: day, Price: price(9000), Source: domain.SourceManual,
		}))
	}
	// Another property must not leak into the range.
	require.NoError(t, repo.Upsert(ctx, &domain.DateOverride{
		PropertyID: "prop-2", Date: domain.NewDay(2026, 5, 11), IsBlackout: true, Source: domain.SourceManual,
	}))

	overrides, err := repo.GetRange(ctx, "prop-1", domain.NewDay(2026, 5, 1), domain.NewDay(2026, 5, 31))
	require.NoError(t, err)
	require.Len(t, overrides, 3)
	assert.Equal(t, "2026-05-03", overrides[0].Date.String())
	assert.Equal(t, "2026-05-11", overrides[1].Date.String())
	assert.Equal(t, "2026-05-20", overrides[2].Date.String())
}

func TestCalendarRepository_DeleteAbsentIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewDefaultCalendarRepository(db)
	ctx := context.Background()

	assert.NoError(t, repo.Delete(ctx, "prop-1", domain.NewDay(2026, 6, 1)))
}

func TestCalendarRepository_ApplyBatch(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewDefaultCalendarRepository(db)
	ctx := context.Background()

	existing := domain.NewDay(2026, 7, 1)
	require.NoError(t, repo.Upsert(ctx, &domain.DateOverride{
		PropertyID: "prop-1", Date: existing, Price: price(8000), Source: domain.SourceManual,
	}))

	upserts := []*domain.DateOverride{
		{PropertyID: "prop-1", Date: domain.NewDay(2026, 7, 2), Price: price(11000), Source: domain.SourceSync},
		{PropertyID: "prop-1", Date: domain.NewDay(2026, 7, 3), IsBlackout: true, Source: domain.SourceSync},
	}
	require.NoError(t, repo.ApplyBatch(ctx, "prop-1", upserts, []domain.Day{existing}))

	overrides, err := repo.GetRange(ctx, "prop-1", domain.NewDay(2026, 7, 1), domain.NewDay(2026, 7, 31))
	require.NoError(t, err)
	require.Len(t, overrides, 2)
	assert.Equal(t, "2026-07-02", overrides[0].Date.String())
	assert.True(t, overrides[1].IsBlackout)
}

func TestPropertyRepository_UpdateBasicSettings(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewDefaultPropertyRepository(db)
	ctx := context.Background()

	property := &domain.Property{
		Name: "Seaside Villa",
		Settings: domain.BasicSettings{
			BasePrice: 10000, BaseGuests: 4, AdultExtraPrice: 3000, ChildExtraPrice: 1500,
			MinNights: 1, CheckInTime: "15:00", CheckOutTime: "10:00",
		},
	}
	require.NoError(t, repo.CreateProperty(ctx, property))
	require.NotEmpty(t, property.ID)

	settings := property.Settings
	settings.BasePrice = 12000
	settings.MinNights = 2
	require.NoError(t, repo.UpdateBasicSettings(ctx, property.ID, settings))

	got, err := repo.GetProperty(ctx, property.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(12000), got.Settings.BasePrice)
	assert.Equal(t, 2, got.Settings.MinNights)
	assert.Equal(t, "15:00", got.Settings.CheckInTime)

	err = repo.UpdateBasicSettings(ctx, "missing", settings)
	assert.ErrorIs(t, err, domain.ErrPropertyNotFound)
}
