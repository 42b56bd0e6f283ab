package domain

import "context"

// Sources recorded on calendar writes, mirroring who produced the edit.
const (
	SourceManual = "manual"
	SourceCSV    = "csv"
	SourceSync   = "sync"
)

// DateOverride is an explicit per-date record superseding the property
// base settings. The calendar only ever stores records that differ
// from base; reverting is a delete, never a zeroed override.
type DateOverride struct {
	PropertyID     string
	Date           Day
	Price          *int64
	MinNights      *int
	IsBlackout     bool
	BlackoutReason string
	Source         string
}

// ResolvedDay is the effective rate and availability for one calendar
// day after merging override and base layers. Derived, never persisted.
type ResolvedDay struct {
	PropertyID         string
	Date               Day
	EffectivePrice     *int64
	EffectiveMinNights int
	Available          bool
}

// CalendarRepository is the canonical sparse store of per-date
// overrides, keyed by (property, date).
type CalendarRepository interface {
	// Get returns nil without error when no override exists for the day.
	Get(ctx context.Context, propertyID string, day Day) (*DateOverride, error)
	// GetRange returns overrides in [start, end] in ascending date order,
	// sparse: only days with an explicit record.
	GetRange(ctx context.Context, propertyID string, start, end Day) ([]*DateOverride, error)
	// Upsert replaces any existing record for the exact date.
	Upsert(ctx context.Context, override *DateOverride) error
	// Delete removes the override for the day; absent records are a no-op.
	Delete(ctx context.Context, propertyID string, day Day) error
	// ApplyBatch performs all upserts and deletes in a single transaction
	// so readers observe either none or all of a batch.
	ApplyBatch(ctx context.Context, propertyID string, upserts []*DateOverride, deletes []Day) error
}
