package setup

import (
	"fmt"

	"github.com/wisteria0793/scorpion/internal/config"
	"github.com/wisteria0793/scorpion/internal/domain"
	publisher "github.com/wisteria0793/scorpion/internal/infrastructure/kafka"
	"github.com/wisteria0793/scorpion/internal/infrastructure/logger"
	"github.com/wisteria0793/scorpion/internal/infrastructure/postgres"
	"github.com/wisteria0793/scorpion/internal/infrastructure/postgres/repository"
	"gorm.io/gorm"
)

type Dependencies struct {
	Config            *config.PricingConfig
	DB                *gorm.DB
	CalendarPublisher *publisher.KafkaPublisher
	SyncPublisher     *publisher.KafkaPublisher
	EventLogger       logger.CalendarEventLogger
	Repositories      *Repositories
}

type Repositories struct {
	PropertyRepo domain.PropertyRepository
	CalendarRepo domain.CalendarRepository
}

func InitializeDependencies() (*Dependencies, error) {
	cfg := config.MustLoad()

	db := postgres.MustInitDB(cfg)

	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}

	repos := &Repositories{
		PropertyRepo: repository.NewDefaultPropertyRepository(db),
		CalendarRepo: repository.NewDefaultCalendarRepository(db),
	}

	return &Dependencies{
		Config:            cfg,
		DB:                db,
		CalendarPublisher: publisher.NewKafkaPublisher(brokers, "calendar-events"),
		SyncPublisher:     publisher.NewKafkaPublisher(brokers, "sync-events"),
		EventLogger:       logger.NewPGCalendarEventLogger(db),
		Repositories:      repos,
	}, nil
}
