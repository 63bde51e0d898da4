package notify

import (
	"encoding/json"

	"calendar-booking/internal/pkg/errs"
	"calendar-booking/internal/usecase/shared"

	"github.com/hibiken/asynq"
)

const (
	TypeSendEmail = "email:send"
	QueueName     = "notifications"
)

var ErrInvalidPayload = errs.New("invalid email task payload")

func NewSendEmailTask(msg shared.Message, opts ...asynq.Option) (*asynq.Task, error) {
	b, err := json.Marshal(msg)
	if err != nil {
		return nil, errs.Wrap(err, "marshal email task")
	}
	return asynq.NewTask(TypeSendEmail, b, opts...), nil
}

func ParseSendEmailTask(task *asynq.Task) (shared.Message, error) {
	var msg shared.Message
	if err := json.Unmarshal(task.Payload(), &msg); err != nil {
		return shared.Message{}, errs.Mark(errs.Wrap(err, "unmarshal email task"), ErrInvalidPayload)
	}
	if msg.To == "" {
		return shared.Message{}, errs.Mark(errs.New("email task has no recipient"), ErrInvalidPayload)
	}
	return msg, nil
}
