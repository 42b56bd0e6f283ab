package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wisteria0793/scorpion/internal/domain"
	publisher "github.com/wisteria0793/scorpion/internal/infrastructure/kafka"
	"github.com/wisteria0793/scorpion/internal/infrastructure/logger"
	"github.com/wisteria0793/scorpion/internal/infrastructure/metrics"
	pricingdto "github.com/wisteria0793/scorpion/internal/usecase/dto/pricing"
)

// BulkEditor is the single write path into the calendar. Manual edits,
// CSV import and sync all go through ApplyUpdates.
type BulkEditor interface {
	ApplyUpdates(ctx context.Context, propertyID string, rows []pricingdto.UpdateRow, source string) (*pricingdto.ApplyResult, error)
}

type DefaultBulkEditor struct {
	PropertyRepo domain.PropertyRepository
	CalendarRepo domain.CalendarRepository
	Locks        *PropertyLocks
	Horizon      domain.Horizon
	Publisher    *publisher.KafkaPublisher
	EventLogger  logger.CalendarEventLogger
	Metrics      *metrics.PricingMetrics
}

func NewDefaultBulkEditor(
	propertyRepo domain.PropertyRepository,
	calendarRepo domain.CalendarRepository,
	locks *PropertyLocks,
	horizon domain.Horizon,
	kafkaPublisher *publisher.KafkaPublisher,
	eventLogger logger.CalendarEventLogger,
	pricingMetrics *metrics.PricingMetrics) *DefaultBulkEditor {

	return &DefaultBulkEditor{
		PropertyRepo: propertyRepo,
		CalendarRepo: calendarRepo,
		Locks:        locks,
		Horizon:      horizon,
		Publisher:    kafkaPublisher,
		EventLogger:  eventLogger,
		Metrics:      pricingMetrics,
	}
}

// ApplyUpdates validates the whole batch first and applies it in one
// transaction; a single invalid row rejects the entire batch with no
// calendar mutation. Re-applying the same batch is a no-op observably.
func (e *DefaultBulkEditor) ApplyUpdates(ctx context.Context, propertyID string, rows []pricingdto.UpdateRow, source string) (*pricingdto.ApplyResult, error) {
	if _, err := e.PropertyRepo.GetProperty(ctx, propertyID); err != nil {
		return nil, err
	}

	release := e.Locks.Acquire(propertyID)
	defer release()

	return e.applyLocked(ctx, propertyID, rows, source)
}

// applyLocked is ApplyUpdates without lock acquisition, for callers
// (the sync reconciler) that already hold the property's exclusive
// section.
func (e *DefaultBulkEditor) applyLocked(ctx context.Context, propertyID string, rows []pricingdto.UpdateRow, source string) (*pricingdto.ApplyResult, error) {
	started := time.Now()
	today := domain.Today()

	upserts := make([]*domain.DateOverride, 0, len(rows))
	deletes := make([]domain.Day, 0)
	var rejected []pricingdto.RejectedRow

	for i, row := range rows {
		day, err := e.validateRow(today, row)
		if err != nil {
			rejected = append(rejected, pricingdto.RejectedRow{Index: i, Reason: err.Error()})
			continue
		}

		if row.IsClearSentinel() {
			deletes = append(deletes, day)
			continue
		}

		upserts = append(upserts, &domain.DateOverride{
			PropertyID:     propertyID,
			Date:           day,
			Price:          row.Price,
			MinNights:      row.MinNights,
			IsBlackout:     row.IsBlackout,
			BlackoutReason: row.BlackoutReason,
			Source:         source,
		})
	}

	// All-or-nothing: a malformed import must not half-corrupt a calendar.
	if len(rejected) > 0 {
		e.recordOutcome(ctx, propertyID, source, 0, rejected, started)
		return &pricingdto.ApplyResult{Applied: 0, Rejected: rejected}, nil
	}

	if err := e.CalendarRepo.ApplyBatch(ctx, propertyID, upserts, deletes); err != nil {
		return nil, fmt.Errorf("applying calendar batch: %w", err)
	}

	applied := len(upserts) + len(deletes)
	e.recordOutcome(ctx, propertyID, source, applied, nil, started)

	if e.Publisher != nil && applied > 0 {
		event := publisher.CalendarUpdatedEvent{
			PropertyID: propertyID,
			Source:     source,
			Applied:    applied,
		}
		if first, last, ok := batchSpan(upserts, deletes); ok {
			event.StartDate = first.String()
			event.EndDate = last.String()
		}
		if err := e.Publisher.PublishCalendarUpdated(event); err != nil {
			slog.Error("failed to publish calendar update", "property_id", propertyID, "error", err.Error())
		}
	}

	return &pricingdto.ApplyResult{Applied: applied, Rejected: nil}, nil
}

func (e *DefaultBulkEditor) validateRow(today domain.Day, row pricingdto.UpdateRow) (domain.Day, error) {
	day, err := domain.ParseDay(row.Date)
	if err != nil {
		return domain.Day{}, err
	}
	if !e.Horizon.Contains(today, day) {
		return domain.Day{}, domain.NewValidationError("date %s outside editable horizon", day)
	}
	if !row.IsBlackout && row.Price != nil && *row.Price < 0 {
		return domain.Day{}, domain.NewValidationError("negative price %d", *row.Price)
	}
	if row.MinNights != nil && *row.MinNights < 1 {
		return domain.Day{}, domain.NewValidationError("min nights %d below 1", *row.MinNights)
	}
	return day, nil
}

func (e *DefaultBulkEditor) recordOutcome(ctx context.Context, propertyID, source string, applied int, rejected []pricingdto.RejectedRow, started time.Time) {
	if e.Metrics != nil {
		outcome := "applied"
		if len(rejected) > 0 {
			outcome = "rejected"
		}
		e.Metrics.BulkBatchesTotal.WithLabelValues(propertyID, source, outcome).Inc()
		e.Metrics.BulkRowsAppliedTotal.WithLabelValues(propertyID, source).Add(float64(applied))
		e.Metrics.BulkRowsRejectedTotal.WithLabelValues(propertyID, source).Add(float64(len(rejected)))
		e.Metrics.BulkApplyDuration.WithLabelValues(propertyID).Observe(time.Since(started).Seconds())
	}

	if e.EventLogger != nil {
		err := e.EventLogger.LogCalendarEdit(ctx, logger.CalendarEditEvent{
			PropertyID: propertyID,
			Source:     source,
			Applied:    applied,
			Rejected:   len(rejected),
			Timestamp:  time.Now(),
		})
		if err != nil {
			slog.Error("failed to log calendar edit", "property_id", propertyID, "error", err.Error())
		}
	}
}

func batchSpan(upserts []*domain.DateOverride, deletes []domain.Day) (domain.Day, domain.Day, bool) {
	var first, last domain.Day
	seen := false

	note := func(d domain.Day) {
		if !seen {
			first, last = d, d
			seen = true
			return
		}
		if d.Before(first) {
			first = d
		}
		if d.After(last) {
			last = d
		}
	}

	for _, o := range upserts {
		note(o.Date)
	}
	for _, d := range deletes {
		note(d)
	}

	return first, last, seen
}
