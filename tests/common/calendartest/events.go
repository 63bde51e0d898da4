//go:build unit || e2e

package calendartest

import (
	"time"

	"calendar-booking/internal/domain/booking"
)

// Timed is an opaque event occupying [start, end).
func Timed(summary string, start, end time.Time) *booking.Event {
	return &booking.Event{
		Summary: summary,
		Start:   booking.EventTime{DateTime: start.Format(time.RFC3339)},
		End:     booking.EventTime{DateTime: end.Format(time.RFC3339)},
	}
}

func AllDay(summary, date, nextDate string) *booking.Event {
	return &booking.Event{
		Summary: summary,
		Start:   booking.EventTime{Date: date},
		End:     booking.EventTime{Date: nextDate},
	}
}
