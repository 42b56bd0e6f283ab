package domain

import (
	"context"
	"fmt"
	"time"
)

// SyncScope governs which stores a sync run may overwrite.
type SyncScope string

const (
	ScopeBasic    SyncScope = "basic"
	ScopeCalendar SyncScope = "calendar"
	ScopeAll      SyncScope = "all"
)

func ParseSyncScope(s string) (SyncScope, error) {
	switch SyncScope(s) {
	case ScopeBasic, ScopeCalendar, ScopeAll:
		return SyncScope(s), nil
	}
	return "", NewValidationError("unknown sync scope %q", s)
}

// SyncState is the per-property reconciler state machine.
type SyncState string

const (
	SyncIdle    SyncState = "IDLE"
	SyncPulling SyncState = "PULLING"
	SyncMerging SyncState = "MERGING"
	SyncFailed  SyncState = "FAILED"
)

type SyncReport struct {
	RunID      string
	PropertyID string
	Scope      SyncScope
	Applied    int
	Skipped    int
	Failed     int
	Errors     []string
	StartedAt  time.Time
	FinishedAt time.Time
}

func (r *SyncReport) String() string {
	return fmt.Sprintf("sync %s property=%s scope=%s applied=%d skipped=%d failed=%d",
		r.RunID, r.PropertyID, r.Scope, r.Applied, r.Skipped, r.Failed)
}

// RemoteDay is one fetched day from the external calendar service.
type RemoteDay struct {
	Date      Day
	Price     *int64
	MinNights *int
	Available bool
}

// CalendarServiceClient is the external channel-manager the reconciler
// pulls rates, availability and basic settings from.
type CalendarServiceClient interface {
	// FetchRemoteCalendar returns the parsed remote days plus a reason
	// per row that could not be interpreted. Malformed rows never abort
	// the fetch; the reconciler reports them as failed.
	FetchRemoteCalendar(ctx context.Context, externalKey string, start, end Day) (days []RemoteDay, malformed []string, err error)
	FetchRemoteBasicSettings(ctx context.Context, externalKey string) (*BasicSettings, error)
}
