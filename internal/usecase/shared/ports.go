package shared

import (
	"context"
	"time"

	"calendar-booking/internal/domain/booking"
	"calendar-booking/internal/domain/interval"
)

// EventQuery selects single (already expanded) events overlapping [TimeMin, TimeMax).
type EventQuery struct {
	TimeMin    time.Time
	TimeMax    time.Time
	PageToken  string
	MaxResults int64
}

type EventPage struct {
	Events        []*booking.Event
	NextPageToken string
}

// BusyPeriod is reported as raw strings so a malformed period can be skipped
// without failing the whole query.
type BusyPeriod struct {
	Start string
	End   string
}

// CalendarGateway is the only persistence the booking engine has. The
// calendar id is bound when the gateway is built.
type CalendarGateway interface {
	ListEvents(ctx context.Context, q EventQuery) (*EventPage, error)
	GetEvent(ctx context.Context, eventID string) (*booking.Event, error)
	InsertEvent(ctx context.Context, ev *booking.Event) (*booking.Event, error)
	PatchEvent(ctx context.Context, eventID string, patch booking.EventPatch) (*booking.Event, error)
	DeleteEvent(ctx context.Context, eventID string) error
	QueryFreeBusy(ctx context.Context, window interval.Interval) ([]BusyPeriod, error)
}

// Message is one outbound email.
type Message struct {
	Kind    string `json:"kind"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Notifier is fire-and-forget: delivery failures are logged by the
// implementation and never reach the caller.
type Notifier interface {
	Notify(ctx context.Context, msg Message)
}

// MailSender delivers a message synchronously and reports the Message-ID it
// was sent with.
type MailSender interface {
	Send(ctx context.Context, msg Message) (string, error)
	Enabled() bool
}
