package domain

import (
	"errors"
	"fmt"
)

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrOverrideNotFound = errors.New("date override not found")
)

// ValidationError reports a rejected value on a write path. Bulk
// operations collect these per row instead of failing on the first one.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// SyncError means the external calendar service was unreachable or its
// payload could not be interpreted at all. Partial per-date failures
// are reported inside a SyncReport, not as a SyncError.
type SyncError struct {
	ExternalKey string
	Cause       error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("calendar service sync failed for %s: %v", e.ExternalKey, e.Cause)
}

func (e *SyncError) Unwrap() error {
	return e.Cause
}
