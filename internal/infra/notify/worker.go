package notify

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"calendar-booking/internal/pkg/config"
	"calendar-booking/internal/pkg/errs"
	"calendar-booking/internal/usecase/shared"

	"github.com/hibiken/asynq"
)

// Worker consumes email tasks from the queue and sends them over SMTP.
type Worker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	sender shared.MailSender
	logger *slog.Logger
}

func NewWorker(cfg config.NotifyConfig, sender shared.MailSender, logger *slog.Logger) *Worker {
	w := &Worker{
		sender: sender,
		logger: logger.With(slog.String("component", "notify-worker")),
	}
	w.srv = asynq.NewServer(RedisOpt(cfg), asynq.Config{
		Concurrency: cfg.QueueConcurrency,
		Queues: map[string]int{
			QueueName: 1,
		},
		Logger:   &asynqLogger{logger: w.logger, exit: os.Exit},
		LogLevel: asynq.WarnLevel,
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			w.logger.Error("email task failed",
				slog.String("type", task.Type()),
				slog.Int("retried", retried),
				slog.String("error", err.Error()),
			)
		}),
	})
	w.mux = asynq.NewServeMux()
	w.mux.HandleFunc(TypeSendEmail, w.HandleSendEmail)
	return w
}

func (w *Worker) HandleSendEmail(ctx context.Context, task *asynq.Task) error {
	msg, err := ParseSendEmailTask(task)
	if err != nil {
		// A payload that cannot be parsed will never succeed.
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}
	if _, err := w.sender.Send(ctx, msg); err != nil {
		return errs.Wrapf(err, "send %s to %s", msg.Kind, msg.To)
	}
	w.logger.Info("email sent", slog.String("kind", msg.Kind), slog.String("to", msg.To))
	return nil
}

func (w *Worker) Start() error {
	if err := w.srv.Start(w.mux); err != nil {
		return errs.Wrap(err, "start notification worker")
	}
	return nil
}

func (w *Worker) Stop() {
	w.srv.Shutdown()
}

// asynqLogger adapts slog to asynq.Logger. Fatal terminates the process.
type asynqLogger struct {
	logger *slog.Logger
	exit   func(code int)
}

func (l *asynqLogger) Debug(args ...any) { l.logger.Debug(fmt.Sprint(args...)) }
func (l *asynqLogger) Info(args ...any)  { l.logger.Info(fmt.Sprint(args...)) }
func (l *asynqLogger) Warn(args ...any)  { l.logger.Warn(fmt.Sprint(args...)) }
func (l *asynqLogger) Error(args ...any) { l.logger.Error(fmt.Sprint(args...)) }
func (l *asynqLogger) Fatal(args ...any) {
	l.logger.Error(fmt.Sprint(args...), slog.Bool("fatal", true))
	l.exit(1)
}
