package bootstrap

import (
	"log/slog"

	"calendar-booking/internal/pkg/canceltoken"
	"calendar-booking/internal/pkg/clock"
	"calendar-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var CancelTokenModule = fx.Module("canceltoken",
	fx.Provide(
		NewCancelSigner,
	),
)

func NewCancelSigner(cfg config.Config, clk clock.Clock, logger *slog.Logger) *canceltoken.Signer {
	signer := canceltoken.NewSigner(cfg.Cancel.Secret, cfg.Cancel.MaxAgeDays, clk)
	if !signer.Enabled() {
		logger.Warn("CANCEL_SECRET not set, self-service cancellation links are disabled")
	}
	return signer
}
