package booking

import (
	"strings"
	"time"

	"calendar-booking/internal/pkg/errs"
)

var ErrMalformedEventTime = errs.New("malformed event time")

// EventTime holds either an all-day Date ("YYYY-MM-DD") or a timed DateTime
// (RFC3339), mirroring how the calendar service reports them.
type EventTime struct {
	Date     string
	DateTime string
	TimeZone string
}

func (t EventTime) IsAllDay() bool {
	return t.Date != "" && t.DateTime == ""
}

// Instant parses the timed form.
func (t EventTime) Instant() (time.Time, error) {
	if t.DateTime == "" {
		return time.Time{}, errs.Mark(errs.New("event time has no dateTime"), ErrMalformedEventTime)
	}
	v, err := time.Parse(time.RFC3339, t.DateTime)
	if err != nil {
		return time.Time{}, errs.Mark(errs.Wrapf(err, "parse dateTime %q", t.DateTime), ErrMalformedEventTime)
	}
	return v, nil
}

// Raw returns whichever form is set.
func (t EventTime) Raw() string {
	if t.DateTime != "" {
		return t.DateTime
	}
	return t.Date
}

func TimedAt(v time.Time, zone string) EventTime {
	return EventTime{DateTime: v.Format(time.RFC3339), TimeZone: zone}
}

// Event is the engine's view of a calendar event. Private is the owner-only
// extension map that carries the durable booking record.
type Event struct {
	ID          string
	Summary     string
	Description string
	Start       EventTime
	End         EventTime
	Transparent bool
	Status      string
	Attendees   []string
	Private     map[string]string
}

func (e *Event) IsAllDay() bool {
	return e.Start.IsAllDay() && e.End.IsAllDay()
}

func (e *Event) PrivateValue(key string) string {
	if e == nil || e.Private == nil {
		return ""
	}
	return strings.TrimSpace(e.Private[key])
}

// EventPatch is a partial update; nil fields are left untouched.
type EventPatch struct {
	Private map[string]string
}
