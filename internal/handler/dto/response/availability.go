package response

import (
	"calendar-booking/internal/domain/schedule"
	"calendar-booking/internal/usecase/queries"
)

type ServiceResponse struct {
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
}

type SlotResponse struct {
	Start string `json:"start"`
	Label string `json:"label"`
}

type AvailabilityResponse struct {
	Date            string                     `json:"date"`
	Service         string                     `json:"service"`
	DurationMinutes int                        `json:"durationMinutes"`
	Closed          bool                       `json:"closed"`
	Slots           []SlotResponse             `json:"slots"`
	Debug           *queries.AvailabilityDebug `json:"debug,omitempty"`
}

func FromServices(specs []schedule.ServiceSpec) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(specs))
	for _, s := range specs {
		out = append(out, ServiceResponse{Name: s.Name, DurationMinutes: s.DurationMinutes})
	}
	return out
}

func FromAvailabilityView(v *queries.AvailabilityView) *AvailabilityResponse {
	slots := make([]SlotResponse, 0, len(v.Slots))
	for _, s := range v.Slots {
		slots = append(slots, SlotResponse{Start: s.ISO, Label: s.Label})
	}
	return &AvailabilityResponse{
		Date:            v.Date,
		Service:         v.Service,
		DurationMinutes: v.DurationMinutes,
		Closed:          v.Closed,
		Slots:           slots,
		Debug:           v.Debug,
	}
}
