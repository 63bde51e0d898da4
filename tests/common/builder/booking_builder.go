//go:build unit || e2e

package builder

import (
	"time"

	"calendar-booking/internal/domain/booking"
	reqdto "calendar-booking/internal/handler/dto/request"
	"calendar-booking/internal/usecase/commands"
)

type BookingBuilder struct {
	EventID  string
	Start    time.Time
	Duration time.Duration
	Email    string
	Name     string
	Service  string
	Location string
	Address  string
}

// NewBookingBuilder defaults to Monday 2025-03-03 19:15 in Los Angeles.
func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		Start:    time.Date(2025, 3, 4, 3, 15, 0, 0, time.UTC),
		Duration: time.Hour,
		Email:    "client@example.com",
		Name:     "Ada Lovelace",
		Service:  "Total Body Renewal (60 min)",
		Location: "studio",
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithMobile(address string) *BookingBuilder {
	b.Location = "mobile"
	b.Address = address
	return b
}

// Build methods
func (b *BookingBuilder) BuildDraft() booking.Draft {
	return booking.Draft{
		Start:    b.Start,
		End:      b.Start.Add(b.Duration),
		Email:    b.Email,
		Name:     b.Name,
		Service:  b.Service,
		Location: b.Location,
		Address:  b.Address,
	}
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	d, err := booking.NewBooking(b.BuildDraft())
	if err != nil {
		return nil, err
	}
	if b.EventID != "" {
		d = d.WithEventID(b.EventID)
	}
	return d, nil
}

// BuildEvent is the stored calendar form of the booking.
func (b *BookingBuilder) BuildEvent(codec *booking.Codec) *booking.Event {
	d, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return codec.Encode(d)
}

func (b *BookingBuilder) BuildInput() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		Start:    b.Start,
		Service:  b.Service,
		Name:     b.Name,
		Email:    b.Email,
		Location: b.Location,
		Address:  b.Address,
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	req := reqdto.CreateBookingRequest{
		ISOStart: b.Start.Format(time.RFC3339),
		Service:  b.Service,
		Email:    b.Email,
	}
	if b.Name != "" {
		name := b.Name
		req.Name = &name
	}
	if b.Location != "" {
		loc := b.Location
		req.Location = &loc
	}
	if b.Address != "" {
		addr := b.Address
		req.Address = &addr
	}
	return req
}

func (b *BookingBuilder) BuildCreateResult() *commands.CreateBookingResult {
	loc := booking.LocationStudio
	fee := 0
	if b.Location == "mobile" {
		loc = booking.LocationMobile
		fee = booking.MobileTravelFee
	}
	id := b.EventID
	if id == "" {
		id = "evt_1"
	}
	return &commands.CreateBookingResult{
		EventID:   id,
		Start:     b.Start,
		End:       b.Start.Add(b.Duration),
		Service:   b.Service,
		Location:  loc,
		TravelFee: fee,
		CancelURL: "http://localhost:3000/cancel?token=t",
	}
}
