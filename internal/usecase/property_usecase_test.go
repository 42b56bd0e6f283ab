package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wisteria0793/scorpion/internal/domain"
	"github.com/wisteria0793/scorpion/internal/usecase"
)

func TestPropertyUsecase_UpdateBasicSettings(t *testing.T) {
	env := setupPricingEnv(t)
	ctx := context.Background()

	uc := usecase.NewDefaultPropertyUsecase(env.PropertyRepo, env.Locks)

	updated := defaultSettings()
	updated.BasePrice = 14000
	updated.MinNights = 3
	require.NoError(t, uc.UpdateBasicSettings(ctx, env.Property.ID, updated))

	property, err := uc.GetProperty(ctx, env.Property.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(14000), property.Settings.BasePrice)
	assert.Equal(t, 3, property.Settings.MinNights)

	err = uc.UpdateBasicSettings(ctx, "no-such-property", updated)
	assert.ErrorIs(t, err, domain.ErrPropertyNotFound)
}

func TestPropertyUsecase_ValidatesSettings(t *testing.T) {
	env := setupPricingEnv(t)
	ctx := context.Background()

	uc := usecase.NewDefaultPropertyUsecase(env.PropertyRepo, env.Locks)

	cases := []struct {
		name   string
		mutate func(*domain.BasicSettings)
	}{
		{"negative base price", func(s *domain.BasicSettings) { s.BasePrice = -1 }},
		{"zero base guests", func(s *domain.BasicSettings) { s.BaseGuests = 0 }},
		{"negative adult extra", func(s *domain.BasicSettings) { s.AdultExtraPrice = -100 }},
		{"zero min nights", func(s *domain.BasicSettings) { s.MinNights = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			settings := defaultSettings()
			tc.mutate(&settings)
			err := uc.UpdateBasicSettings(ctx, env.Property.ID, settings)
			assert.True(t, domain.IsValidationError(err))
		})
	}

	// Rejected settings never reach the store.
	property, err := uc.GetProperty(ctx, env.Property.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), property.Settings.BasePrice)
}

func TestPropertyUsecase_CreateAndList(t *testing.T) {
	env := setupPricingEnv(t)
	ctx := context.Background()

	uc := usecase.NewDefaultPropertyUsecase(env.PropertyRepo, env.Locks)

	second := &domain.Property{
		Name:        "Harbor Loft",
		ExternalKey: "room-77",
		Settings:    defaultSettings(),
	}
	require.NoError(t, uc.CreateProperty(ctx, second))
	assert.NotEmpty(t, second.ID)

	properties, err := uc.ListProperties(ctx)
	require.NoError(t, err)
	assert.Len(t, properties, 2)
}
