package components

import (
	"log/slog"

	"calendar-booking/internal/domain/booking"
	"calendar-booking/internal/domain/schedule"
	"calendar-booking/internal/pkg/clock"
	"calendar-booking/internal/pkg/config"
	"calendar-booking/internal/pkg/tz"
	"calendar-booking/internal/usecase"
	"calendar-booking/internal/usecase/commands"
	"calendar-booking/internal/usecase/queries"
	"calendar-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewSystemClock,
	NewCatalog,
	NewSlotGenerator,
	NewAvailabilitySettings,
	NewCodec,
	NewComposer,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAvailabilityQueries,
		NewBookingQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		NewAdminAuthenticator,
	),
)

func NewCatalog(cfg config.Config) *schedule.Catalog {
	s := cfg.Schedule
	return schedule.NewCatalog(s.ServiceDurations, s.FallbackDurationMin, s.PreBufferMin, s.PostBufferMin)
}

func NewSlotGenerator(cfg config.Config, anchor *tz.Anchor) (schedule.Generator, error) {
	return schedule.NewGenerator(schedule.Mode(cfg.Schedule.Mode), cfg.Schedule.Step(), anchor)
}

// NewAvailabilitySettings opens every day around the clock in hourly mode,
// which only looks at the calendar.
func NewAvailabilitySettings(cfg config.Config, logger *slog.Logger) queries.AvailabilitySettings {
	hours := cfg.Schedule.Hours
	if schedule.Mode(cfg.Schedule.Mode) == schedule.ModeHourly {
		hours = schedule.AlwaysOpen()
	}
	logger.Info("availability configured",
		slog.String("mode", cfg.Schedule.Mode),
		slog.String("hours", hours.String()),
		slog.String("busy_source", cfg.Calendar.BusySource),
	)
	return queries.AvailabilitySettings{Hours: hours, StepMin: cfg.Schedule.StepMin}
}

func NewCodec(cfg config.Config, anchor *tz.Anchor) *booking.Codec {
	b := cfg.Business
	return booking.NewCodec(b.Name, b.SourceMarker, b.PolicyText, anchor)
}

func NewComposer(cfg config.Config, anchor *tz.Anchor) *commands.Composer {
	return commands.NewComposer(cfg.Business.Name, cfg.OwnerAddress(), cfg.Business.PublicBaseURL, anchor)
}

func NewBookingQueries(cfg config.Config, gateway shared.CalendarGateway, codec *booking.Codec, clk clock.Clock) queries.BookingQueries {
	return queries.NewBookingQueries(gateway, codec, clk, cfg.Calendar.AdminListDays)
}

func NewAdminAuthenticator(cfg config.Config, logger *slog.Logger) usecase.AdminAuthenticator {
	auth := usecase.NewAdminAuthenticator(cfg.Admin)
	if !auth.Configured() {
		logger.Warn("ADMIN_TOKEN not set, admin endpoints will reject every request")
	}
	return auth
}
