package setup

import (
	"fmt"
	"time"

	"github.com/wisteria0793/scorpion/internal/client"
	"github.com/wisteria0793/scorpion/internal/domain"
	"github.com/wisteria0793/scorpion/internal/infrastructure/metrics"
	"github.com/wisteria0793/scorpion/internal/usecase"
)

type Usecases struct {
	Properties usecase.PropertyUsecase
	Resolver   *usecase.DefaultRateResolver
	Editor     *usecase.DefaultBulkEditor
	Codec      usecase.CSVCodec
	Reconciler usecase.SyncReconciler
}

func InitializeUsecases(deps *Dependencies, pricingMetrics *metrics.PricingMetrics) *Usecases {
	locks := usecase.NewPropertyLocks()
	horizon := domain.Horizon{
		PastDays:    deps.Config.Horizon.PastDays,
		FutureYears: deps.Config.Horizon.FutureYears,
	}

	calendarClient := client.NewHTTPCalendarClient(
		deps.Config.CalendarService.BaseURL,
		deps.Config.CalendarService.Username,
		deps.Config.CalendarService.Password,
		time.Duration(deps.Config.CalendarService.TimeoutSeconds)*time.Second,
	)

	resolver := usecase.NewDefaultRateResolver(
		deps.Repositories.PropertyRepo,
		deps.Repositories.CalendarRepo,
		pricingMetrics,
	)

	editor := usecase.NewDefaultBulkEditor(
		deps.Repositories.PropertyRepo,
		deps.Repositories.CalendarRepo,
		locks,
		horizon,
		deps.CalendarPublisher,
		deps.EventLogger,
		pricingMetrics,
	)

	codec := usecase.NewDefaultCSVCodec(
		deps.Repositories.PropertyRepo,
		deps.Repositories.CalendarRepo,
		editor,
	)

	reconciler := usecase.NewDefaultSyncReconciler(
		calendarClient,
		deps.Repositories.PropertyRepo,
		editor,
		locks,
		horizon,
		deps.SyncPublisher,
		deps.EventLogger,
		pricingMetrics,
	)

	return &Usecases{
		Properties: usecase.NewDefaultPropertyUsecase(deps.Repositories.PropertyRepo, locks),
		Resolver:   resolver,
		Editor:     editor,
		Codec:      codec,
		Reconciler: reconciler,
	}
}

func (d *Dependencies) HTTPAddr() string {
	return fmt.Sprintf("%s:%s", d.Config.HTTPServer.Host, d.Config.HTTPServer.Port)
}
