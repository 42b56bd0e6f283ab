package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wisteria0793/scorpion/internal/domain"
	pricingdto "github.com/wisteria0793/scorpion/internal/usecase/dto/pricing"
)

func TestBulkEditor_AppliesValidBatch(t *testing.T) {
	env := setupPricingEnv(t)
	ctx := context.Background()

	first := domain.Today().AddDays(5)
	rows := []pricingdto.UpdateRow{
		{Date: first.String(), Price: pricePtr(12000)},
		{Date: first.AddDays(1).String(), IsBlackout: true, BlackoutReason: "owner stay"},
		{Date: first.AddDays(2).String(), MinNights: intPtr(3)},
	}

	result, err := env.Editor.ApplyUpdates(ctx, env.Property.ID, rows, domain.SourceManual)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Applied)
	assert.Empty(t, result.Rejected)

	overrides, err := env.CalendarRepo.GetRange(ctx, env.Property.ID, first, first.AddDays(2))
	require.NoError(t, err)
	require.Len(t, overrides, 3)
	assert.Equal(t, int64(12000), *overrides[0].Price)
	assert.True(t, overrides[1].IsBlackout)
	assert.Equal(t, "owner stay", overrides[1].BlackoutReason)
	assert.Equal(t, 3, *overrides[2].MinNights)
}

func TestBulkEditor_AllOrNothingOnInvalidRow(t *testing.T) {
	env := setupPricingEnv(t)
	ctx := context.Background()

	first := domain.Today().AddDays(5)
	rows := []pricingdto.UpdateRow{
		{Date: first.String(), Price: pricePtr(12000)},
		{Date: "2026-13-40", Price: pricePtr(9000)},
		{Date: first.AddDays(1).String(), Price: pricePtr(8000)},
	}

	result, err := env.Editor.ApplyUpdates(ctx, env.Property.ID, rows, domain.SourceCSV)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Applied)
	require.Len(t, result.Rejected, 1)
	assert.Equal(t, 1, result.Rejected[0].Index)

	// The valid rows of the batch must not have been written either.
	overrides, err := env.CalendarRepo.GetRange(ctx, env.Property.ID, first, first.AddDays(1))
	require.NoError(t, err)
	assert.Empty(t, overrides)
}

func TestBulkEditor_RowValidation(t *testing.T) {
	env := setupPricingEnv(t)
	ctx := context.Background()

	future := domain.Today().AddDays(5).String()
	cases := []struct {
		name string
		row  pricingdto.UpdateRow
	}{
		{"negative price", pricingdto.UpdateRow{Date: future, Price: pricePtr(-100)}},
		{"zero min nights", pricingdto.UpdateRow{Date: future, MinNights: intPtr(0)}},
		{"past beyond horizon", pricingdto.UpdateRow{Date: domain.Today().AddDays(-10).String(), Price: pricePtr(100)}},
		{"future beyond horizon", pricingdto.UpdateRow{Date: domain.Today().AddYears(3).String(), Price: pricePtr(100)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := env.Editor.ApplyUpdates(ctx, env.Property.ID, []pricingdto.UpdateRow{tc.row}, domain.SourceManual)
			require.NoError(t, err)
			assert.Equal(t, 0, result.Applied)
			assert.Len(t, result.Rejected, 1)
		})
	}
}

func TestBulkEditor_BlackoutPriceNotValidated(t *testing.T) {
	env := setupPricingEnv(t)
	ctx := context.Background()

	// On a blackout row the price is informational and skips the
	// non-negative check.
	day := domain.Today().AddDays(7)
	result, err := env.Editor.ApplyUpdates(ctx, env.Property.ID, []pricingdto.UpdateRow{
		{Date: day.String(), Price: pricePtr(-1), IsBlackout: true},
	}, domain.SourceManual)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Applied)
}

func TestBulkEditor_Idempotent(t *testing.T) {
	env := setupPricingEnv(t)
	ctx := context.Background()

	first := domain.Today().AddDays(5)
	rows := []pricingdto.UpdateRow{
		{Date: first.String(), Price: pricePtr(12000), MinNights: intPtr(2)},
		{Date: first.AddDays(1).String(), IsBlackout: true},
	}

	_, err := env.Editor.ApplyUpdates(ctx, env.Property.ID, rows, domain.SourceManual)
	require.NoError(t, err)
	before, err := env.CalendarRepo.GetRange(ctx, env.Property.ID, first, first.AddDays(1))
	require.NoError(t, err)

	_, err = env.Editor.ApplyUpdates(ctx, env.Property.ID, rows, domain.SourceManual)
	require.NoError(t, err)
	after, err := env.CalendarRepo.GetRange(ctx, env.Property.ID, first, first.AddDays(1))
	require.NoError(t, err)

	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i], after[i])
	}
}

func TestBulkEditor_ClearSentinelDeletesOverride(t *testing.T) {
	env := setupPricingEnv(t)
	ctx := context.Background()

	day := domain.Today().AddDays(5)
	_, err := env.Editor.ApplyUpdates(ctx, env.Property.ID, []pricingdto.UpdateRow{
		{Date: day.String(), Price: pricePtr(12000)},
	}, domain.SourceManual)
	require.NoError(t, err)

	result, err := env.Editor.ApplyUpdates(ctx, env.Property.ID, []pricingdto.UpdateRow{
		{Date: day.String()},
	}, domain.SourceManual)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Applied)

	got, err := env.CalendarRepo.Get(ctx, env.Property.ID, day)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBulkEditor_UnknownProperty(t *testing.T) {
	env := setupPricingEnv(t)

	_, err := env.Editor.ApplyUpdates(context.Background(), "missing", []pricingdto.UpdateRow{
		{Date: domain.Today().String(), Price: pricePtr(100)},
	}, domain.SourceManual)
	assert.ErrorIs(t, err, domain.ErrPropertyNotFound)
}
