package notify

import (
	"context"
	"log/slog"

	"calendar-booking/internal/pkg/config"
	"calendar-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

func RedisOpt(cfg config.NotifyConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
}

// Enqueuer is the part of asynq.Client the dispatcher uses.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueDispatcher persists each message as an asynq task so delivery
// survives restarts and is retried by the worker.
type QueueDispatcher struct {
	client   Enqueuer
	maxRetry int
	logger   *slog.Logger
}

func NewQueueDispatcher(client Enqueuer, maxRetry int, logger *slog.Logger) *QueueDispatcher {
	return &QueueDispatcher{
		client:   client,
		maxRetry: maxRetry,
		logger:   logger.With(slog.String("component", "notify-queue")),
	}
}

func (d *QueueDispatcher) Notify(ctx context.Context, msg shared.Message) {
	if msg.To == "" {
		return
	}
	task, err := NewSendEmailTask(msg)
	if err != nil {
		d.logger.Error("failed to build email task", slog.String("kind", msg.Kind), slog.String("error", err.Error()))
		return
	}
	info, err := d.client.EnqueueContext(context.WithoutCancel(ctx), task,
		asynq.Queue(QueueName),
		asynq.MaxRetry(d.maxRetry),
		asynq.TaskID(uuid.NewString()),
	)
	if err != nil {
		d.logger.Error("failed to enqueue email",
			slog.String("kind", msg.Kind),
			slog.String("to", msg.To),
			slog.String("error", err.Error()),
		)
		return
	}
	d.logger.Debug("email enqueued", slog.String("task_id", info.ID), slog.String("kind", msg.Kind))
}
