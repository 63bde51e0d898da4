package components

import (
	"log/slog"

	"calendar-booking/internal/infra/calendar"
	"calendar-booking/internal/pkg/config"
	"calendar-booking/internal/usecase/busy"
	"calendar-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		fx.Annotate(
			calendar.NewGatewayFromConfig,
			fx.As(new(shared.CalendarGateway)),
		),
		NewBusySource,
	),
)

func NewBusySource(cfg config.Config, gateway shared.CalendarGateway, logger *slog.Logger) (busy.Source, error) {
	return busy.New(busy.Strategy(cfg.Calendar.BusySource), gateway, logger)
}
