package usecase

import (
	"context"
	"time"

	"github.com/wisteria0793/scorpion/internal/domain"
	"github.com/wisteria0793/scorpion/internal/infrastructure/metrics"
)

// ResolveDay merges one optional override with the property base
// settings. This is the only place the precedence rule lives; every
// consumer (API, export, sync) goes through it instead of re-deriving
// the merge.
func ResolveDay(settings domain.BasicSettings, propertyID string, day domain.Day, override *domain.DateOverride) domain.ResolvedDay {
	resolved := domain.ResolvedDay{
		PropertyID:         propertyID,
		Date:               day,
		EffectiveMinNights: settings.MinNights,
		Available:          true,
	}

	if override != nil && override.MinNights != nil {
		resolved.EffectiveMinNights = *override.MinNights
	}

	if override != nil && override.IsBlackout {
		// A stored price on a blackout day is informational only.
		resolved.Available = false
		resolved.EffectivePrice = nil
		return resolved
	}

	price := settings.BasePrice
	if override != nil && override.Price != nil {
		price = *override.Price
	}
	resolved.EffectivePrice = &price

	return resolved
}

// ComputeStayPrice prices one night for a party. Base occupancy counts
// against adults only; every child is billed at the child extra rate.
func ComputeStayPrice(settings domain.BasicSettings, resolved domain.ResolvedDay, numAdults, numChildren int) (int64, error) {
	if numAdults < 1 {
		return 0, domain.NewValidationError("at least one adult is required")
	}
	if numChildren < 0 {
		return 0, domain.NewValidationError("negative child count")
	}
	if !resolved.Available || resolved.EffectivePrice == nil {
		return 0, domain.NewValidationError("no stay price for blackout day %s", resolved.Date)
	}

	extraAdults := numAdults - settings.BaseGuests
	if extraAdults < 0 {
		extraAdults = 0
	}

	total := *resolved.EffectivePrice +
		int64(extraAdults)*settings.AdultExtraPrice +
		int64(numChildren)*settings.ChildExtraPrice

	return total, nil
}

type RateResolver interface {
	ResolveRange(ctx context.Context, propertyID string, start, end domain.Day) ([]*domain.ResolvedDay, error)
	ResolveMonth(ctx context.Context, propertyID string, year int, month time.Month) (*domain.Property, []*domain.ResolvedDay, error)
}

type DefaultRateResolver struct {
	PropertyRepo domain.PropertyRepository
	CalendarRepo domain.CalendarRepository
	Metrics      *metrics.PricingMetrics
}

func NewDefaultRateResolver(propertyRepo domain.PropertyRepository, calendarRepo domain.CalendarRepository, pricingMetrics *metrics.PricingMetrics) *DefaultRateResolver {
	return &DefaultRateResolver{
		PropertyRepo: propertyRepo,
		CalendarRepo: calendarRepo,
		Metrics:      pricingMetrics,
	}
}

// ResolveRange returns one entry per calendar day in [start, end],
// combining the sparse override list with base fallback for every day.
func (r *DefaultRateResolver) ResolveRange(ctx context.Context, propertyID string, start, end domain.Day) ([]*domain.ResolvedDay, error) {
	if end.Before(start) {
		return nil, domain.NewValidationError("range end %s before start %s", end, start)
	}

	started := time.Now()

	property, err := r.PropertyRepo.GetProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	overrides, err := r.CalendarRepo.GetRange(ctx, propertyID, start, end)
	if err != nil {
		return nil, err
	}

	resolved := make([]*domain.ResolvedDay, 0, start.DaysUntil(end)+1)
	next := 0
	for day := start; !day.After(end); day = day.Next() {
		var override *domain.DateOverride
		if next < len(overrides) && overrides[next].Date.Equal(day) {
			override = overrides[next]
			next++
		}
		resolvedDay := ResolveDay(property.Settings, propertyID, day, override)
		resolved = append(resolved, &resolvedDay)
	}

	if r.Metrics != nil {
		r.Metrics.ResolveRangeDuration.WithLabelValues(propertyID).Observe(time.Since(started).Seconds())
	}

	return resolved, nil
}

// ResolveMonth backs the monthly calendar view: base settings plus a
// dense month of resolved days.
func (r *DefaultRateResolver) ResolveMonth(ctx context.Context, propertyID string, year int, month time.Month) (*domain.Property, []*domain.ResolvedDay, error) {
	if month < time.January || month > time.December {
		return nil, nil, domain.NewValidationError("invalid month %d", month)
	}

	property, err := r.PropertyRepo.GetProperty(ctx, propertyID)
	if err != nil {
		return nil, nil, err
	}

	start := domain.NewDay(year, month, 1)
	end := start.AddDays(daysInMonth(year, month) - 1)

	days, err := r.ResolveRange(ctx, propertyID, start, end)
	if err != nil {
		return nil, nil, err
	}

	return property, days, nil
}

func daysInMonth(year int, month time.Month) int {
	// Day zero of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
