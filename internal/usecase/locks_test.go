package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wisteria0793/scorpion/internal/domain"
	"github.com/wisteria0793/scorpion/internal/usecase"
	pricingdto "github.com/wisteria0793/scorpion/internal/usecase/dto/pricing"
)

func TestPropertyLocks_SerializeSameProperty(t *testing.T) {
	locks := usecase.NewPropertyLocks()

	release := locks.Acquire("prop-1")

	acquired := make(chan struct{})
	go func() {
		r := locks.Acquire("prop-1")
		close(acquired)
		r()
	}()

	select {
	case <-acquired:
		t.Fatal("second writer acquired the lock while it was held")
	case <-time.After(50 * time.Millisecond):
	}

	// A different property is independent and never blocks.
	otherRelease := locks.Acquire("prop-2")
	otherRelease()

	release()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second writer never acquired the lock after release")
	}
}

func TestBulkEditor_ConcurrentBatchesDoNotInterleave(t *testing.T) {
	env := setupPricingEnv(t)
	ctx := context.Background()

	start := domain.Today().AddDays(3)
	const span = 10

	manualRows := make([]pricingdto.UpdateRow, span)
	csvRows := make([]pricingdto.UpdateRow, span)
	for i := 0; i < span; i++ {
		date := start.AddDays(i).String()
		manualRows[i] = pricingdto.UpdateRow{Date: date, Price: pricePtr(11000)}
		csvRows[i] = pricingdto.UpdateRow{Date: date, Price: pricePtr(12000), MinNights: intPtr(2)}
	}

	var wg sync.WaitGroup
	apply := func(rows []pricingdto.UpdateRow, source string) {
		defer wg.Done()
		result, err := env.Editor.ApplyUpdates(ctx, env.Property.ID, rows, source)
		assert.NoError(t, err)
		assert.Equal(t, span, result.Applied)
	}
	wg.Add(2)
	go apply(manualRows, domain.SourceManual)
	go apply(csvRows, domain.SourceCSV)
	wg.Wait()

	// Whole batches serialize on the property lock, so every date must
	// reflect the same (last) writer, never a mix of the two.
	overrides, err := env.CalendarRepo.GetRange(ctx, env.Property.ID, start, start.AddDays(span-1))
	require.NoError(t, err)
	require.Len(t, overrides, span)

	winner := overrides[0].Source
	for _, override := range overrides {
		assert.Equal(t, winner, override.Source)
		if winner == domain.SourceManual {
			assert.Equal(t, int64(11000), *override.Price)
			assert.Nil(t, override.MinNights)
		} else {
			assert.Equal(t, int64(12000), *override.Price)
			assert.Equal(t, 2, *override.MinNights)
		}
	}
}
