package queries

import (
	"time"

	"calendar-booking/internal/domain/booking"
	"calendar-booking/internal/domain/interval"
	"calendar-booking/internal/domain/schedule"
)

// SlotView is one offerable start time
type SlotView struct {
	Start time.Time `json:"start"`
	ISO   string    `json:"iso"`
	Label string    `json:"label"`
}

// AvailabilityDebug exposes the intermediate intervals of a computation
type AvailabilityDebug struct {
	Mode       schedule.Mode       `json:"mode"`
	TimeZone   string              `json:"time_zone"`
	Closed     bool                `json:"closed"`
	Window     *interval.Interval  `json:"window,omitempty"`
	Busy       []interval.Interval `json:"busy"`
	Free       []interval.Interval `json:"free"`
	Now        time.Time           `json:"now"`
	StepMin    int                 `json:"step_min"`
	PreBuffer  int                 `json:"pre_buffer_min"`
	PostBuffer int                 `json:"post_buffer_min"`
}

type AvailabilityView struct {
	Date            string             `json:"date"`
	Service         string             `json:"service"`
	DurationMinutes int                `json:"duration_minutes"`
	Closed          bool               `json:"closed"`
	Slots           []SlotView         `json:"slots"`
	Debug           *AvailabilityDebug `json:"debug,omitempty"`
}

// BookingList is the admin view of upcoming events
type BookingList struct {
	From    time.Time         `json:"from"`
	To      time.Time         `json:"to"`
	Total   int               `json:"total"`
	Matched int               `json:"matched"`
	Items   []*booking.Record `json:"items"`

	// SampleSummaries holds the first few summaries before filtering.
	SampleSummaries []string `json:"sample_summaries"`
}
