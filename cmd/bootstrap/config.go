package bootstrap

import (
	"log/slog"

	"calendar-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
	fx.Invoke(LogStartupSummary),
)

// LogStartupSummary records which optional features are live. Secrets are
// reported only as present or absent.
func LogStartupSummary(cfg config.Config, logger *slog.Logger) {
	logger.Info("booking engine configured",
		slog.String("time_zone", cfg.Calendar.TimeZone),
		slog.String("slot_mode", cfg.Schedule.Mode),
		slog.String("busy_source", cfg.Calendar.BusySource),
		slog.String("notify_mode", cfg.Notify.Mode),
		slog.Bool("smtp", cfg.SMTP.Enabled()),
		slog.Bool("self_cancel", cfg.Cancel.Secret != ""),
		slog.Bool("admin_auth", cfg.Admin.Token != "" || cfg.Admin.TokenHash != ""),
		slog.Bool("invite_attendees", cfg.Calendar.InviteAttendees),
	)
	if cfg.Business.OwnerEmail == "" && cfg.SMTP.From == "" {
		logger.Warn("no owner address configured, owner notices are skipped")
	}
}
