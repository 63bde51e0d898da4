package response

import (
	"time"

	"calendar-booking/internal/domain/booking"
	"calendar-booking/internal/usecase/commands"
	"calendar-booking/internal/usecase/queries"
)

type OKResponse struct {
	OK bool `json:"ok"`
}

type BookingResponse struct {
	OK        bool      `json:"ok"`
	ID        string    `json:"id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Service   string    `json:"service"`
	Location  string    `json:"location"`
	TravelFee int       `json:"travelFee"`
	CancelURL string    `json:"cancelUrl,omitempty"`
}

type CancelResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id"`
}

type AdminEventResponse struct {
	ID          string `json:"id"`
	Summary     string `json:"summary"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Description string `json:"description"`
	Service     string `json:"service"`
	Location    string `json:"location"`
	Address     string `json:"address"`
	TravelFee   string `json:"travelFee"`
	Completed   bool   `json:"completed"`
	ExtEmail    string `json:"extEmail"`
	ClientEmail string `json:"clientEmail"`
	MatchedRule string `json:"matchedRule,omitempty"`
}

type AdminEventsResponse struct {
	OK              bool                 `json:"ok"`
	Events          []AdminEventResponse `json:"events"`
	Total           *int                 `json:"total,omitempty"`
	Filtered        *int                 `json:"filtered,omitempty"`
	SampleSummaries []string             `json:"sampleSummaries,omitempty"`
}

type TestEmailResponse struct {
	OK        bool   `json:"ok"`
	To        string `json:"to"`
	MessageID string `json:"messageId"`
}

func FromCreateBookingResult(r *commands.CreateBookingResult) *BookingResponse {
	return &BookingResponse{
		OK:        true,
		ID:        r.EventID,
		Start:     r.Start,
		End:       r.End,
		Service:   r.Service,
		Location:  r.Location.String(),
		TravelFee: r.TravelFee,
		CancelURL: r.CancelURL,
	}
}

func FromRecord(r *booking.Record) AdminEventResponse {
	return AdminEventResponse{
		ID:          r.EventID,
		Summary:     r.Summary,
		Start:       r.Start,
		End:         r.End,
		Description: r.Description,
		Service:     r.Service,
		Location:    r.Location,
		Address:     r.Address,
		TravelFee:   r.TravelFee,
		Completed:   r.Completed,
		ExtEmail:    r.MetaEmail,
		ClientEmail: r.ClientEmail,
		MatchedRule: r.MatchedRule,
	}
}

// FromBookingList adds the counters only in debug mode.
func FromBookingList(l *queries.BookingList, debug bool) *AdminEventsResponse {
	events := make([]AdminEventResponse, 0, len(l.Items))
	for _, r := range l.Items {
		events = append(events, FromRecord(r))
	}
	resp := &AdminEventsResponse{OK: true, Events: events}
	if debug {
		total, filtered := l.Total, len(events)
		resp.Total = &total
		resp.Filtered = &filtered
		resp.SampleSummaries = l.SampleSummaries
	}
	return resp
}
