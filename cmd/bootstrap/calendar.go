package bootstrap

import (
	"context"

	"calendar-booking/internal/infra/calendar"
	"calendar-booking/internal/pkg/config"
	"calendar-booking/internal/pkg/tz"

	"go.uber.org/fx"
	gcal "google.golang.org/api/calendar/v3"
)

var CalendarModule = fx.Module("calendar",
	fx.Provide(
		NewAnchor,
		NewCalendarService,
	),
)

func NewAnchor(cfg config.Config) (*tz.Anchor, error) {
	return tz.NewAnchor(cfg.Calendar.TimeZone)
}

func NewCalendarService(cfg config.Config) (*gcal.Service, error) {
	return calendar.NewService(context.Background(), cfg.Calendar)
}
