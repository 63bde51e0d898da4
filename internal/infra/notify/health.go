package notify

import (
	"context"
	"time"

	"calendar-booking/internal/pkg/config"
	"calendar-booking/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// QueueHealth pings the Redis instance backing the notification queue.
type QueueHealth struct {
	client  *redis.Client
	timeout time.Duration
}

func NewQueueHealth(cfg config.NotifyConfig) *QueueHealth {
	return &QueueHealth{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}),
		timeout: 2 * time.Second,
	}
}

func (h *QueueHealth) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	if err := h.client.Ping(ctx).Err(); err != nil {
		return errs.Wrap(err, "notification queue unreachable")
	}
	return nil
}

func (h *QueueHealth) Close() error {
	return h.client.Close()
}
