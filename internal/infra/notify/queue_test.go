//go:build unit

package notify_test

import (
	"context"
	"errors"
	"testing"

	"calendar-booking/internal/infra/notify"
	"calendar-booking/internal/pkg/config"
	"calendar-booking/internal/pkg/errs"
	"calendar-booking/internal/usecase/shared"
	"calendar-booking/tests/common/notifytest"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockEnqueuer struct {
	mock.Mock
}

func (m *mockEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(ctx, task, opts)
	info, _ := args.Get(0).(*asynq.TaskInfo)
	return info, args.Error(1)
}

func TestSendEmailTask(t *testing.T) {
	msg := shared.Message{Kind: "thank_you", To: "a@b.com", Subject: "Thanks", Body: "body"}
	task, err := notify.NewSendEmailTask(msg)
	require.NoError(t, err)
	assert.Equal(t, notify.TypeSendEmail, task.Type())

	got, err := notify.ParseSendEmailTask(task)
	require.NoError(t, err)
	assert.Equal(t, msg, got)

	_, err = notify.ParseSendEmailTask(asynq.NewTask(notify.TypeSendEmail, []byte("{")))
	assert.True(t, errs.Is(err, notify.ErrInvalidPayload))

	_, err = notify.ParseSendEmailTask(asynq.NewTask(notify.TypeSendEmail, []byte(`{"kind":"x"}`)))
	assert.True(t, errs.Is(err, notify.ErrInvalidPayload))
}

func TestQueueDispatcher(t *testing.T) {
	t.Run("enqueues on the notifications queue", func(t *testing.T) {
		m := new(mockEnqueuer)
		m.On("EnqueueContext", mock.Anything, mock.MatchedBy(func(task *asynq.Task) bool {
			return task.Type() == notify.TypeSendEmail
		}), mock.Anything).Return(&asynq.TaskInfo{ID: "t1", Queue: notify.QueueName}, nil).Once()

		d := notify.NewQueueDispatcher(m, 3, logger)
		d.Notify(context.Background(), shared.Message{Kind: "thank_you", To: "a@b.com"})

		m.AssertExpectations(t)
		opts := m.Calls[0].Arguments.Get(2).([]asynq.Option)
		var queue string
		var retry int
		for _, o := range opts {
			switch o.Type() {
			case asynq.QueueOpt:
				queue = o.Value().(string)
			case asynq.MaxRetryOpt:
				retry = o.Value().(int)
			}
		}
		assert.Equal(t, notify.QueueName, queue)
		assert.Equal(t, 3, retry)
	})

	t.Run("empty recipient is skipped", func(t *testing.T) {
		m := new(mockEnqueuer)
		d := notify.NewQueueDispatcher(m, 3, logger)
		d.Notify(context.Background(), shared.Message{Kind: "booking_notice"})
		m.AssertNotCalled(t, "EnqueueContext", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("enqueue failure is swallowed", func(t *testing.T) {
		m := new(mockEnqueuer)
		m.On("EnqueueContext", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("redis down")).Once()
		d := notify.NewQueueDispatcher(m, 3, logger)
		assert.NotPanics(t, func() {
			d.Notify(context.Background(), shared.Message{To: "a@b.com"})
		})
		m.AssertExpectations(t)
	})
}

func TestWorkerHandleSendEmail(t *testing.T) {
	rec := notifytest.NewRecorder()
	w := notify.NewWorker(config.NewTestConfig().Notify, rec, logger)

	task, err := notify.NewSendEmailTask(shared.Message{Kind: "thank_you", To: "a@b.com"})
	require.NoError(t, err)
	require.NoError(t, w.HandleSendEmail(context.Background(), task))
	assert.Equal(t, []string{"thank_you"}, rec.Kinds())

	err = w.HandleSendEmail(context.Background(), asynq.NewTask(notify.TypeSendEmail, []byte("nope")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	rec.SendErr = errors.New("421 try later")
	err = w.HandleSendEmail(context.Background(), task)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}
