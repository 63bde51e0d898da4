package booking

import (
	"net/mail"
	"strings"
	"time"

	"calendar-booking/internal/pkg/errs"
)

var (
	ErrMissingService  = errs.New("service is required")
	ErrMissingEmail    = errs.New("email is required")
	ErrInvalidEmail    = errs.New("email is malformed")
	ErrInvalidLocation = errs.New("location must be studio or mobile")
	ErrMissingAddress  = errs.New("address is required for mobile appointments")
	ErrInvalidSlot     = errs.New("appointment end must be after start")
)

const MobileTravelFee = 15

type Location string

const (
	LocationStudio Location = "studio"
	LocationMobile Location = "mobile"
)

func ParseLocation(s string) (Location, error) {
	switch Location(strings.ToLower(strings.TrimSpace(s))) {
	case "", LocationStudio:
		return LocationStudio, nil
	case LocationMobile:
		return LocationMobile, nil
	default:
		return "", errs.Mark(errs.Newf("location %q", s), ErrInvalidLocation)
	}
}

func (l Location) String() string { return string(l) }

func (l Location) Title() string {
	if l == LocationMobile {
		return "Mobile"
	}
	return "Studio"
}

// Client is who the appointment is for. Name is optional.
type Client struct {
	Email string
	Name  string
}

func (c Client) DisplayName() string {
	if c.Name == "" {
		return "Guest"
	}
	return c.Name
}

type Booking struct {
	eventID  string
	start    time.Time
	end      time.Time
	client   Client
	service  string
	location Location
	address  string
}

// Draft is the unvalidated input of the booking write path.
type Draft struct {
	Start    time.Time
	End      time.Time
	Email    string
	Name     string
	Service  string
	Location string
	Address  string
}

// NewBooking validates a draft. The returned booking has no event id until the
// calendar service assigns one.
func NewBooking(d Draft) (*Booking, error) {
	service := strings.TrimSpace(d.Service)
	if service == "" {
		return nil, ErrMissingService
	}
	email, err := normalizeEmail(d.Email)
	if err != nil {
		return nil, err
	}
	loc, err := ParseLocation(d.Location)
	if err != nil {
		return nil, err
	}
	address := strings.TrimSpace(d.Address)
	if loc == LocationMobile && address == "" {
		return nil, ErrMissingAddress
	}
	if loc == LocationStudio {
		address = ""
	}
	if !d.Start.Before(d.End) {
		return nil, ErrInvalidSlot
	}
	return &Booking{
		start:    d.Start,
		end:      d.End,
		client:   Client{Email: email, Name: strings.TrimSpace(d.Name)},
		service:  service,
		location: loc,
		address:  address,
	}, nil
}

func normalizeEmail(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrMissingEmail
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || !strings.Contains(s[strings.LastIndex(s, "@")+1:], ".") {
		return "", errs.Mark(errs.Newf("email %q", s), ErrInvalidEmail)
	}
	return s, nil
}

// WithEventID returns a copy bound to the id the calendar assigned.
func (b *Booking) WithEventID(id string) *Booking {
	c := *b
	c.eventID = id
	return &c
}

func (b *Booking) EventID() string    { return b.eventID }
func (b *Booking) Start() time.Time   { return b.start }
func (b *Booking) End() time.Time     { return b.end }
func (b *Booking) Client() Client     { return b.client }
func (b *Booking) Service() string    { return b.service }
func (b *Booking) Location() Location { return b.location }
func (b *Booking) Address() string    { return b.address }

func (b *Booking) TravelFee() int {
	if b.location == LocationMobile {
		return MobileTravelFee
	}
	return 0
}
