package bootstrap

import (
	"context"
	"log/slog"

	"calendar-booking/internal/handler"
	"calendar-booking/internal/infra/mailer"
	"calendar-booking/internal/infra/notify"
	"calendar-booking/internal/pkg/config"
	"calendar-booking/internal/pkg/errs"
	"calendar-booking/internal/usecase/shared"

	"github.com/hibiken/asynq"
	"go.uber.org/fx"
)

const (
	NotifyModeAsync = "async"
	NotifyModeQueue = "queue"
)

var NotifierModule = fx.Module("notifier",
	fx.Provide(
		NewMailSender,
		NewNotifier,
		NewHealthChecks,
	),
)

func NewMailSender(cfg config.Config, logger *slog.Logger) shared.MailSender {
	sender := mailer.New(cfg.SMTP, logger)
	if !sender.Enabled() {
		logger.Warn("SMTP_HOST not set, notification emails will be dropped")
	}
	return sender
}

// NewNotifier runs delivery in-process: a goroutine pool in async mode, or an
// asynq client plus worker in queue mode.
func NewNotifier(lc fx.Lifecycle, cfg config.Config, sender shared.MailSender, logger *slog.Logger) (shared.Notifier, error) {
	switch cfg.Notify.Mode {
	case NotifyModeAsync, "":
		d := notify.NewAsyncDispatcher(sender, cfg.Notify.Workers, cfg.Notify.SendTimeout, logger)
		lc.Append(fx.Hook{
			OnStart: func(_ context.Context) error {
				d.Start()
				return nil
			},
			OnStop: d.Stop,
		})
		return d, nil
	case NotifyModeQueue:
		client := asynq.NewClient(notify.RedisOpt(cfg.Notify))
		worker := notify.NewWorker(cfg.Notify, sender, logger)
		lc.Append(fx.Hook{
			OnStart: func(_ context.Context) error {
				return worker.Start()
			},
			OnStop: func(_ context.Context) error {
				worker.Stop()
				return client.Close()
			},
		})
		return notify.NewQueueDispatcher(client, cfg.Notify.MaxRetry, logger), nil
	default:
		return nil, errs.Newf("unknown NOTIFY_MODE %q", cfg.Notify.Mode)
	}
}

func NewHealthChecks(lc fx.Lifecycle, cfg config.Config) handler.Checks {
	checks := handler.Checks{}
	if cfg.Notify.Mode == NotifyModeQueue {
		qh := notify.NewQueueHealth(cfg.Notify)
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				return qh.Close()
			},
		})
		checks["queue"] = qh
	}
	return checks
}
