package logger

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// CalendarEditEvent is one audit row per applied bulk edit. Source is
// who produced the batch: manual, csv or sync.
type CalendarEditEvent struct {
	ID         uint `gorm:"primaryKey"`
	PropertyID string
	Source     string
	Applied    int
	Rejected   int
	Timestamp  time.Time
}

type SyncRunEvent struct {
	ID          uint `gorm:"primaryKey"`
	RunID       string
	PropertyID  string
	ExternalKey string
	Scope       string
	Applied     int
	Skipped     int
	Failed      int
	Error       string
	Timestamp   time.Time
}

type CalendarEventLogger interface {
	LogCalendarEdit(ctx context.Context, event CalendarEditEvent) error
	LogSyncRun(ctx context.Context, event SyncRunEvent) error
}

type PGCalendarEventLogger struct {
	db *gorm.DB
}

func NewPGCalendarEventLogger(db *gorm.DB) *PGCalendarEventLogger {
	return &PGCalendarEventLogger{db: db}
}

func (l *PGCalendarEventLogger) LogCalendarEdit(ctx context.Context, event CalendarEditEvent) error {
	return l.db.WithContext(ctx).Create(&event).Error
}

func (l *PGCalendarEventLogger) LogSyncRun(ctx context.Context, event SyncRunEvent) error {
	return l.db.WithContext(ctx).Create(&event).Error
}
