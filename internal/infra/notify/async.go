// Package notify delivers notification emails off the request path.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"calendar-booking/internal/usecase/shared"
)

const defaultQueueSize = 64

// AsyncDispatcher hands messages to a fixed pool of goroutines. A full
// backlog drops the message with an error log instead of blocking callers.
type AsyncDispatcher struct {
	sender  shared.MailSender
	jobs    chan shared.Message
	timeout time.Duration
	workers int
	logger  *slog.Logger

	mu      sync.RWMutex
	closed  bool
	started bool
	wg      sync.WaitGroup
}

func NewAsyncDispatcher(sender shared.MailSender, workers int, timeout time.Duration, logger *slog.Logger) *AsyncDispatcher {
	if workers <= 0 {
		workers = 1
	}
	return &AsyncDispatcher{
		sender:  sender,
		jobs:    make(chan shared.Message, defaultQueueSize),
		timeout: timeout,
		workers: workers,
		logger:  logger.With(slog.String("component", "notify")),
	}
}

func (d *AsyncDispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		return
	}
	d.started = true
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.run()
	}
}

func (d *AsyncDispatcher) Notify(_ context.Context, msg shared.Message) {
	if msg.To == "" {
		return
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.logger.Warn("dispatcher stopped, dropping email", slog.String("kind", msg.Kind), slog.String("to", msg.To))
		return
	}
	select {
	case d.jobs <- msg:
	default:
		d.logger.Error("notification backlog full, dropping email", slog.String("kind", msg.Kind), slog.String("to", msg.To))
	}
}

// Stop refuses new messages and waits for queued ones until ctx expires.
func (d *AsyncDispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.jobs)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		d.logger.Warn("notification drain interrupted", slog.Int("pending", len(d.jobs)))
		return ctx.Err()
	}
}

func (d *AsyncDispatcher) run() {
	defer d.wg.Done()
	for msg := range d.jobs {
		d.deliver(msg)
	}
}

func (d *AsyncDispatcher) deliver(msg shared.Message) {
	ctx := context.Background()
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}
	start := time.Now()
	if _, err := d.sender.Send(ctx, msg); err != nil {
		d.logger.Error("email delivery failed",
			slog.String("kind", msg.Kind),
			slog.String("to", msg.To),
			slog.String("error", err.Error()),
		)
		return
	}
	d.logger.Info("email sent",
		slog.String("kind", msg.Kind),
		slog.String("to", msg.To),
		slog.Duration("elapsed", time.Since(start)),
	)
}
