package booking

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"calendar-booking/internal/pkg/tz"
)

// Private metadata keys. Values are always strings; booleans are "true"/"false".
const (
	KeySource       = "source"
	KeyEmail        = "email"
	KeyName         = "name"
	KeyService      = "service"
	KeyLocation     = "location"
	KeyAddress      = "address"
	KeyTravelFee    = "travelFee"
	KeyCompleted    = "completed"
	KeyThankYouSent = "thankYouSent"
)

const defaultServiceName = "Appointment"

var contactEmailPattern = regexp.MustCompile(`(?i)Contact:\s*([^\s]+@[^\s]+)`)

// Codec maps bookings to calendar event fields and back. The private metadata
// is authoritative; the description is a readable copy of the same data.
type Codec struct {
	businessName string
	sourceMarker string
	policyText   string
	anchor       *tz.Anchor
	classifier   *Classifier
}

func NewCodec(businessName, sourceMarker, policyText string, anchor *tz.Anchor) *Codec {
	return &Codec{
		businessName: businessName,
		sourceMarker: sourceMarker,
		policyText:   policyText,
		anchor:       anchor,
		classifier:   NewClassifier(sourceMarker, businessName),
	}
}

func (c *Codec) Summary(service string) string {
	return service + " — " + c.businessName
}

func (c *Codec) Description(b *Booking) string {
	lines := []string{
		"Client: " + b.Client().DisplayName(),
		"Service: " + b.Service(),
		"Contact: " + b.Client().Email,
		"Location: " + b.Location().Title(),
	}
	if b.Location() == LocationMobile {
		lines = append(lines,
			"Address: "+b.Address(),
			fmt.Sprintf("Travel fee: $%d", b.TravelFee()),
		)
	}
	if c.policyText != "" {
		lines = append(lines, "Policy: "+c.policyText)
	}
	return strings.Join(lines, "\n")
}

// Encode produces the event fields for a new booking. Start and end carry the
// business zone offset.
func (c *Codec) Encode(b *Booking) *Event {
	zone := c.anchor.Name()
	loc := c.anchor.Location()
	return &Event{
		ID:          b.EventID(),
		Summary:     c.Summary(b.Service()),
		Description: c.Description(b),
		Start:       TimedAt(b.Start().In(loc), zone),
		End:         TimedAt(b.End().In(loc), zone),
		Attendees:   []string{b.Client().Email},
		Private:     c.metadata(b),
	}
}

func (c *Codec) metadata(b *Booking) map[string]string {
	m := map[string]string{
		KeySource:       c.sourceMarker,
		KeyEmail:        b.Client().Email,
		KeyService:      b.Service(),
		KeyLocation:     b.Location().String(),
		KeyAddress:      b.Address(),
		KeyTravelFee:    strconv.Itoa(b.TravelFee()),
		KeyCompleted:    "false",
		KeyThankYouSent: "false",
	}
	if name := b.Client().Name; name != "" {
		m[KeyName] = name
	}
	return m
}

// IsSiteBooking reports whether ev looks like it came from the booking flow.
func (c *Codec) IsSiteBooking(ev *Event) bool {
	return c.classifier.IsSiteBooking(ev)
}

// ServiceName prefers the metadata field, then the summary without the brand
// suffix.
func (c *Codec) ServiceName(ev *Event) string {
	if s := ev.PrivateValue(KeyService); s != "" {
		return s
	}
	summary := strings.TrimSpace(ev.Summary)
	for _, sep := range []string{" — ", " - "} {
		if before, ok := strings.CutSuffix(summary, sep+c.businessName); ok {
			summary = strings.TrimSpace(before)
			break
		}
	}
	if summary == "" {
		return defaultServiceName
	}
	return summary
}

// Record is the admin-facing projection of a calendar event.
type Record struct {
	EventID      string
	Summary      string
	Description  string
	Start        string
	End          string
	ClientEmail  string
	MetaEmail    string
	Service      string
	Location     string
	Address      string
	TravelFee    string
	Completed    bool
	ThankYouSent bool
	MatchedRule  string
}

func (c *Codec) Decode(ev *Event) *Record {
	email, _ := ExtractClientEmail(ev)
	rule, _ := c.classifier.Match(ev)
	travelFee := ev.PrivateValue(KeyTravelFee)
	if travelFee == "" {
		travelFee = "0"
	}
	return &Record{
		EventID:      ev.ID,
		Summary:      ev.Summary,
		Description:  ev.Description,
		Start:        ev.Start.Raw(),
		End:          ev.End.Raw(),
		ClientEmail:  email,
		MetaEmail:    ev.PrivateValue(KeyEmail),
		Service:      c.ServiceName(ev),
		Location:     ev.PrivateValue(KeyLocation),
		Address:      ev.PrivateValue(KeyAddress),
		TravelFee:    travelFee,
		Completed:    ev.PrivateValue(KeyCompleted) == "true",
		ThankYouSent: ev.PrivateValue(KeyThankYouSent) == "true",
		MatchedRule:  rule,
	}
}

// ExtractClientEmail reads the metadata field and falls back to the
// "Contact: <email>" line that older events only have in their description.
func ExtractClientEmail(ev *Event) (string, bool) {
	if ev == nil {
		return "", false
	}
	if email := ev.PrivateValue(KeyEmail); email != "" {
		return email, true
	}
	m := contactEmailPattern.FindStringSubmatch(ev.Description)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ApplyCompletion merges the completion flags into existing metadata. Keys it
// does not own are kept as they are.
func ApplyCompletion(private map[string]string) map[string]string {
	out := make(map[string]string, len(private)+2)
	for k, v := range private {
		out[k] = v
	}
	out[KeyCompleted] = "true"
	out[KeyThankYouSent] = "true"
	return out
}
