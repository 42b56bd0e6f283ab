package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jaevor/go-nanoid"
	"github.com/wisteria0793/scorpion/internal/domain"
	publisher "github.com/wisteria0793/scorpion/internal/infrastructure/kafka"
	"github.com/wisteria0793/scorpion/internal/infrastructure/logger"
	"github.com/wisteria0793/scorpion/internal/infrastructure/metrics"
	pricingdto "github.com/wisteria0793/scorpion/internal/usecase/dto/pricing"
)

const defaultSyncChunkSize = 200

// SyncReconciler pulls rates, availability and basic settings from the
// external calendar service and replays them through the bulk editor
// according to the requested scope.
type SyncReconciler interface {
	Run(ctx context.Context, propertyID, externalKey string, scope domain.SyncScope) (*domain.SyncReport, error)
	State(propertyID string) domain.SyncState
}

type DefaultSyncReconciler struct {
	Client       domain.CalendarServiceClient
	PropertyRepo domain.PropertyRepository
	Editor       *DefaultBulkEditor
	Locks        *PropertyLocks
	Horizon      domain.Horizon
	ChunkSize    int
	Publisher    *publisher.KafkaPublisher
	EventLogger  logger.CalendarEventLogger
	Metrics      *metrics.PricingMetrics

	mu     sync.Mutex
	states map[string]domain.SyncState
}

func NewDefaultSyncReconciler(
	client domain.CalendarServiceClient,
	propertyRepo domain.PropertyRepository,
	editor *DefaultBulkEditor,
	locks *PropertyLocks,
	horizon domain.Horizon,
	kafkaPublisher *publisher.KafkaPublisher,
	eventLogger logger.CalendarEventLogger,
	pricingMetrics *metrics.PricingMetrics) *DefaultSyncReconciler {

	return &DefaultSyncReconciler{
		Client:       client,
		PropertyRepo: propertyRepo,
		Editor:       editor,
		Locks:        locks,
		Horizon:      horizon,
		ChunkSize:    defaultSyncChunkSize,
		Publisher:    kafkaPublisher,
		EventLogger:  eventLogger,
		Metrics:      pricingMetrics,
		states:       make(map[string]domain.SyncState),
	}
}

// State reports the reconciler state machine for a property:
// IDLE → PULLING → MERGING → IDLE, or FAILED after an aborted run.
func (s *DefaultSyncReconciler) State(propertyID string) domain.SyncState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.states[propertyID]; ok {
		return state
	}
	return domain.SyncIdle
}

func (s *DefaultSyncReconciler) setState(propertyID string, state domain.SyncState) {
	s.mu.Lock()
	s.states[propertyID] = state
	s.mu.Unlock()
}

// Run executes one sync against the external calendar service. A dead
// service or unreadable payload fails the whole run with a SyncError
// and leaves every store untouched; individual bad remote days are
// counted in the report and do not abort the run. Local dates absent
// from the remote set are never touched.
func (s *DefaultSyncReconciler) Run(ctx context.Context, propertyID, externalKey string, scope domain.SyncScope) (*domain.SyncReport, error) {
	if _, err := domain.ParseSyncScope(string(scope)); err != nil {
		return nil, err
	}

	property, err := s.PropertyRepo.GetProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	generateRunID, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}

	report := &domain.SyncReport{
		RunID:      generateRunID(),
		PropertyID: propertyID,
		Scope:      scope,
		StartedAt:  time.Now(),
	}

	s.setState(propertyID, domain.SyncPulling)

	remoteSettings, remoteDays, malformed, err := s.pull(ctx, externalKey, scope)
	if err != nil {
		s.finish(ctx, report, externalKey, domain.SyncFailed, err)
		return nil, &domain.SyncError{ExternalKey: externalKey, Cause: err}
	}

	s.setState(propertyID, domain.SyncMerging)

	release := s.Locks.Acquire(propertyID)
	defer release()

	if err := s.mergeBasicSettings(ctx, property, remoteSettings); err != nil {
		s.finish(ctx, report, externalKey, domain.SyncFailed, err)
		return nil, &domain.SyncError{ExternalKey: externalKey, Cause: err}
	}

	if scope != domain.ScopeBasic {
		if err := s.mergeCalendar(ctx, propertyID, remoteDays, malformed, report); err != nil {
			s.finish(ctx, report, externalKey, domain.SyncFailed, err)
			return report, err
		}
	}

	s.finish(ctx, report, externalKey, domain.SyncIdle, nil)
	return report, nil
}

func (s *DefaultSyncReconciler) pull(ctx context.Context, externalKey string, scope domain.SyncScope) (*domain.BasicSettings, []domain.RemoteDay, []string, error) {
	settings, err := s.Client.FetchRemoteBasicSettings(ctx, externalKey)
	if err != nil {
		return nil, nil, nil, err
	}

	if scope == domain.ScopeBasic {
		return settings, nil, nil, nil
	}

	today := domain.Today()
	start := today.AddDays(-s.Horizon.PastDays)
	end := today.AddYears(s.Horizon.FutureYears)

	days, malformed, err := s.Client.FetchRemoteCalendar(ctx, externalKey, start, end)
	if err != nil {
		return nil, nil, nil, err
	}

	return settings, days, malformed, nil
}

func (s *DefaultSyncReconciler) mergeBasicSettings(ctx context.Context, property *domain.Property, remote *domain.BasicSettings) error {
	if remote == nil {
		return nil
	}

	// Check-in/out times are not part of the remote payload; keep ours.
	settings := *remote
	settings.CheckInTime = property.Settings.CheckInTime
	settings.CheckOutTime = property.Settings.CheckOutTime

	return s.PropertyRepo.UpdateBasicSettings(ctx, property.ID, settings)
}

// mergeCalendar replays the remote days through the bulk editor in
// chunks, so one rejected chunk surfaces in the report without voiding
// the rest of the run. Remote rows the client could not interpret are
// counted as failed with their reasons.
func (s *DefaultSyncReconciler) mergeCalendar(ctx context.Context, propertyID string, remoteDays []domain.RemoteDay, malformed []string, report *domain.SyncReport) error {
	today := domain.Today()

	report.Failed += len(malformed)
	report.Errors = append(report.Errors, malformed...)

	rows := make([]pricingdto.UpdateRow, 0, len(remoteDays))
	for _, remoteDay := range remoteDays {
		if !s.Horizon.Contains(today, remoteDay.Date) {
			report.Skipped++
			continue
		}
		rows = append(rows, remoteDayToRow(remoteDay))
	}

	chunkSize := s.ChunkSize
	if chunkSize <= 0 {
		chunkSize = defaultSyncChunkSize
	}

	for offset := 0; offset < len(rows); offset += chunkSize {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("sync merge aborted: %w", err)
		}

		end := offset + chunkSize
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[offset:end]

		result, err := s.Editor.applyLocked(ctx, propertyID, chunk, domain.SourceSync)
		if err != nil {
			return fmt.Errorf("applying sync chunk: %w", err)
		}

		report.Applied += result.Applied
		if len(result.Rejected) > 0 {
			// The chunk was rejected whole; every row in it counts as failed.
			report.Failed += len(chunk)
			for _, rejectedRow := range result.Rejected {
				report.Errors = append(report.Errors,
					fmt.Sprintf("%s: %s", chunk[rejectedRow.Index].Date, rejectedRow.Reason))
			}
		}
	}

	return nil
}

func remoteDayToRow(remoteDay domain.RemoteDay) pricingdto.UpdateRow {
	return pricingdto.UpdateRow{
		Date:       remoteDay.Date.String(),
		Price:      remoteDay.Price,
		IsBlackout: !remoteDay.Available,
		MinNights:  remoteDay.MinNights,
	}
}

func (s *DefaultSyncReconciler) finish(ctx context.Context, report *domain.SyncReport, externalKey string, state domain.SyncState, runErr error) {
	report.FinishedAt = time.Now()
	s.setState(report.PropertyID, state)

	outcome := "success"
	errText := ""
	if runErr != nil {
		outcome = "failed"
		errText = runErr.Error()
		slog.Error("sync run failed",
			"run_id", report.RunID,
			"property_id", report.PropertyID,
			"scope", string(report.Scope),
			"error", errText)
	} else {
		slog.Info("sync run finished",
			"run_id", report.RunID,
			"property_id", report.PropertyID,
			"scope", string(report.Scope),
			"applied", report.Applied,
			"skipped", report.Skipped,
			"failed", report.Failed)
	}

	if s.Metrics != nil {
		s.Metrics.SyncRunsTotal.WithLabelValues(report.PropertyID, string(report.Scope), outcome).Inc()
		s.Metrics.SyncDaysFailedTotal.WithLabelValues(report.PropertyID, string(report.Scope)).Add(float64(report.Failed))
		s.Metrics.SyncRunDuration.WithLabelValues(report.PropertyID, string(report.Scope)).
			Observe(report.FinishedAt.Sub(report.StartedAt).Seconds())
	}

	if s.EventLogger != nil {
		err := s.EventLogger.LogSyncRun(ctx, logger.SyncRunEvent{
			RunID:       report.RunID,
			PropertyID:  report.PropertyID,
			ExternalKey: externalKey,
			Scope:       string(report.Scope),
			Applied:     report.Applied,
			Skipped:     report.Skipped,
			Failed:      report.Failed,
			Error:       errText,
			Timestamp:   time.Now(),
		})
		if err != nil {
			slog.Error("failed to log sync run", "run_id", report.RunID, "error", err.Error())
		}
	}

	if s.Publisher != nil && runErr == nil {
		err := s.Publisher.PublishSyncCompleted(publisher.SyncCompletedEvent{
			RunID:      report.RunID,
			PropertyID: report.PropertyID,
			Scope:      string(report.Scope),
			Applied:    report.Applied,
			Skipped:    report.Skipped,
			Failed:     report.Failed,
		})
		if err != nil {
			slog.Error("failed to publish sync event", "run_id", report.RunID, "error", err.Error())
		}
	}
}
