package request

import (
	"strings"
	"time"

	"calendar-booking/internal/pkg/patch"
	"calendar-booking/internal/usecase/commands"
)

type CreateBookingRequest struct {
	ISOStart string  `json:"isoStart" binding:"required"`
	Service  string  `json:"service" binding:"required,max=200"`
	Name     *string `json:"name" binding:"omitempty,max=200"`
	Email    string  `json:"email" binding:"required,email,max=254"`
	Location *string `json:"location" binding:"omitempty,oneof=studio mobile"`
	Address  *string `json:"address" binding:"omitempty,max=500"`
}

// ToInput parses the start instant. Offsets other than the business zone are
// accepted; the instant is what gets compared against offered slots.
func (r *CreateBookingRequest) ToInput() (commands.CreateBookingInput, error) {
	start, err := time.Parse(time.RFC3339, strings.TrimSpace(r.ISOStart))
	if err != nil {
		return commands.CreateBookingInput{}, err
	}
	return commands.CreateBookingInput{
		Start:    start,
		Service:  r.Service,
		Name:     patch.Text(r.Name, ""),
		Email:    r.Email,
		Location: patch.Text(r.Location, "studio"),
		Address:  patch.Text(r.Address, ""),
	}, nil
}

type CancelWithTokenRequest struct {
	Token string `json:"token" binding:"required,max=512"`
}

type EventIDRequest struct {
	ID string `json:"id" binding:"required,max=1024"`
}
