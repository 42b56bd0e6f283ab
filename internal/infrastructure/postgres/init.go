package postgres

import (
	"log"

	"github.com/wisteria0793/scorpion/internal/config"
	"github.com/wisteria0793/scorpion/internal/infrastructure/logger"
	"github.com/wisteria0793/scorpion/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.PricingConfig) *gorm.DB {
	dsn := cfg.PricingDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.PropertyModel{},
		&models.DateOverrideModel{},
		&logger.CalendarEditEvent{},
		&logger.SyncRunEvent{},
	)

	return db
}
