package commands

import (
	"fmt"
	"net/url"
	"strings"

	"calendar-booking/internal/domain/booking"
	"calendar-booking/internal/pkg/tz"
	"calendar-booking/internal/usecase/shared"
)

// Message kinds, also used as asynq task metadata.
const (
	KindBookingConfirmation = "booking_confirmation"
	KindBookingNotice       = "booking_notice"
	KindCancelledByStaff    = "cancelled_by_staff"
	KindCancelledByClient   = "cancelled_by_client"
	KindCancelConfirmation  = "cancel_confirmation"
	KindCancelNotice        = "cancel_notice"
	KindThankYou            = "thank_you"
	KindCompletionNotice    = "completion_notice"
	KindSMTPTest            = "smtp_test"
)

const unknownDate = "(date unknown)"

// Initiator says who triggered a cancellation; it only changes wording.
type Initiator string

const (
	InitiatorStaff  Initiator = "staff"
	InitiatorClient Initiator = "client"
)

// Composer renders notification emails.
type Composer struct {
	businessName  string
	ownerEmail    string
	publicBaseURL string
	anchor        *tz.Anchor
}

func NewComposer(businessName, ownerEmail, publicBaseURL string, anchor *tz.Anchor) *Composer {
	return &Composer{
		businessName:  businessName,
		ownerEmail:    ownerEmail,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		anchor:        anchor,
	}
}

func (c *Composer) OwnerEmail() string { return c.ownerEmail }

// CancelURL is empty when no public base URL is configured.
func (c *Composer) CancelURL(token string) string {
	if token == "" || c.publicBaseURL == "" {
		return ""
	}
	return c.publicBaseURL + "/cancel?token=" + url.QueryEscape(token)
}

func (c *Composer) BookingConfirmation(b *booking.Booking, cancelURL string) shared.Message {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Hello %s,\n\n", b.Client().DisplayName())
	fmt.Fprintf(&sb, "Your %s is booked for %s (%s).\n", b.Service(), c.anchor.Pretty(b.Start()), c.anchor.Name())
	fmt.Fprintf(&sb, "Location: %s\n", b.Location().Title())
	if b.Location() == booking.LocationMobile {
		fmt.Fprintf(&sb, "Address: %s\nTravel fee: $%d\n", b.Address(), b.TravelFee())
	}
	if cancelURL != "" {
		fmt.Fprintf(&sb, "\nNeed to cancel? Use this link: %s\n", cancelURL)
	}
	fmt.Fprintf(&sb, "\n— %s", c.businessName)
	return shared.Message{
		Kind:    KindBookingConfirmation,
		To:      b.Client().Email,
		Subject: "Your appointment is confirmed — " + c.businessName,
		Body:    sb.String(),
	}
}

func (c *Composer) BookingNotice(b *booking.Booking) shared.Message {
	var sb strings.Builder
	sb.WriteString("A new booking was made.\n\n")
	fmt.Fprintf(&sb, "Service: %s\n", b.Service())
	fmt.Fprintf(&sb, "When: %s (%s)\n", c.anchor.Pretty(b.Start()), c.anchor.Name())
	fmt.Fprintf(&sb, "Client: %s <%s>\n", b.Client().DisplayName(), b.Client().Email)
	fmt.Fprintf(&sb, "Location: %s\n", b.Location().Title())
	if b.Location() == booking.LocationMobile {
		fmt.Fprintf(&sb, "Address: %s\n", b.Address())
	}
	fmt.Fprintf(&sb, "Event ID: %s\n", b.EventID())
	return shared.Message{
		Kind:    KindBookingNotice,
		To:      c.ownerEmail,
		Subject: "New booking — " + c.businessName,
		Body:    sb.String(),
	}
}

// EventSummary is what cancellation and completion emails say about an event.
type EventSummary struct {
	EventID     string
	Service     string
	When        string
	ClientEmail string
}

func (c *Composer) Summarize(codec *booking.Codec, ev *booking.Event) EventSummary {
	email, _ := booking.ExtractClientEmail(ev)
	return EventSummary{
		EventID:     ev.ID,
		Service:     codec.ServiceName(ev),
		When:        c.when(ev),
		ClientEmail: email,
	}
}

func (c *Composer) when(ev *booking.Event) string {
	if start, err := ev.Start.Instant(); err == nil {
		return c.anchor.Pretty(start)
	}
	if ev.Start.Date != "" {
		return ev.Start.Date
	}
	return unknownDate
}

func (c *Composer) CancelledToClient(s EventSummary, by Initiator) shared.Message {
	kind := KindCancelledByStaff
	line := fmt.Sprintf("Your appointment (%s) on %s was canceled by %s.\nIf this is unexpected, please reply to reschedule.", s.Service, s.When, c.businessName)
	if by == InitiatorClient {
		kind = KindCancelConfirmation
		line = fmt.Sprintf("Your appointment (%s) on %s has been canceled as you requested.\nWe hope to see you another time.", s.Service, s.When)
	}
	return shared.Message{
		Kind:    kind,
		To:      s.ClientEmail,
		Subject: "Your appointment was canceled — " + c.businessName,
		Body:    fmt.Sprintf("Hello,\n\n%s\n\n— %s", line, c.businessName),
	}
}

func (c *Composer) CancelNotice(s EventSummary, by Initiator) shared.Message {
	kind, headline := KindCancelNotice, "A booking was canceled."
	if by == InitiatorClient {
		kind, headline = KindCancelledByClient, "A client canceled their booking."
	}
	return shared.Message{
		Kind:    kind,
		To:      c.ownerEmail,
		Subject: "Booking canceled — " + c.businessName,
		Body:    c.ownerBody(headline, s),
	}
}

func (c *Composer) ThankYou(s EventSummary) shared.Message {
	var sb strings.Builder
	sb.WriteString("Hello,\n\n")
	fmt.Fprintf(&sb, "Thank you for choosing %s for your %q.\n", c.businessName, s.Service)
	sb.WriteString("We hope you're feeling relaxed and renewed.\n\n")
	sb.WriteString("Self-care tip: drink water today and take a gentle walk to support circulation.\n\n")
	sb.WriteString("If you'd like to book your next session, just reply to this email or visit our site.\n\n")
	fmt.Fprintf(&sb, "— %s", c.businessName)
	return shared.Message{
		Kind:    KindThankYou,
		To:      s.ClientEmail,
		Subject: "Thank you — " + c.businessName,
		Body:    sb.String(),
	}
}

func (c *Composer) CompletionNotice(s EventSummary) shared.Message {
	return shared.Message{
		Kind:    KindCompletionNotice,
		To:      c.ownerEmail,
		Subject: "Marked completed — " + c.businessName,
		Body:    c.ownerBody("A booking was marked completed.", s),
	}
}

func (c *Composer) SMTPTest(to string) shared.Message {
	return shared.Message{
		Kind:    KindSMTPTest,
		To:      to,
		Subject: c.businessName + " — SMTP test",
		Body:    "If you can read this, SMTP is working.",
	}
}

func (c *Composer) ownerBody(headline string, s EventSummary) string {
	client := s.ClientEmail
	if client == "" {
		client = "n/a"
	}
	return fmt.Sprintf("%s\n\nService: %s\nWhen: %s (%s)\nClient email: %s\nEvent ID: %s\n",
		headline, s.Service, s.When, c.anchor.Name(), client, s.EventID)
}
