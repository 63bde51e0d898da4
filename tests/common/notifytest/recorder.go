//go:build unit || e2e

package notifytest

import (
	"context"
	"fmt"
	"sync"

	"calendar-booking/internal/usecase/shared"
)

// Recorder is a Notifier and MailSender that keeps every message in memory.
type Recorder struct {
	mu       sync.Mutex
	messages []shared.Message
	Disabled bool
	SendErr  error
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Notify(_ context.Context, msg shared.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

func (r *Recorder) Send(_ context.Context, msg shared.Message) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SendErr != nil {
		return "", r.SendErr
	}
	r.messages = append(r.messages, msg)
	return fmt.Sprintf("<%d@recorder.test>", len(r.messages)), nil
}

func (r *Recorder) Enabled() bool { return !r.Disabled }

func (r *Recorder) Messages() []shared.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]shared.Message(nil), r.messages...)
}

func (r *Recorder) Kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.messages))
	for _, m := range r.messages {
		out = append(out, m.Kind)
	}
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = nil
}
