package booking

import (
	"regexp"
	"strings"
)

// Rule is one independent signal that an event belongs to the booking flow.
type Rule struct {
	Name  string
	Match func(ev *Event) bool
}

// Classifier ORs its rules in a fixed order. It is deliberately permissive:
// a hand-edited or legacy booking must never be hidden from the admin list.
type Classifier struct {
	rules []Rule
}

var clientLinePattern = regexp.MustCompile(`(?i)\b(?:Client|Contact):\s`)

func NewClassifier(sourceMarker, businessName string) *Classifier {
	brand := regexp.MustCompile(`(?:—|-)\s*` + regexp.QuoteMeta(businessName))
	return &Classifier{rules: []Rule{
		{
			Name: "source-marker",
			Match: func(ev *Event) bool {
				return sourceMarker != "" && ev.PrivateValue(KeySource) == sourceMarker
			},
		},
		{
			Name: "private-email",
			Match: func(ev *Event) bool {
				return ev.PrivateValue(KeyEmail) != ""
			},
		},
		{
			Name: "private-service",
			Match: func(ev *Event) bool {
				_, ok := ev.Private[KeyService]
				return ok
			},
		},
		{
			Name: "summary-brand",
			Match: func(ev *Event) bool {
				return strings.TrimSpace(businessName) != "" && brand.MatchString(ev.Summary)
			},
		},
		{
			Name: "description-contact",
			Match: func(ev *Event) bool {
				return clientLinePattern.MatchString(ev.Description)
			},
		},
	}}
}

func (c *Classifier) Rules() []Rule {
	return c.rules
}

// Match returns the name of the first rule that fires.
func (c *Classifier) Match(ev *Event) (string, bool) {
	if ev == nil {
		return "", false
	}
	for _, r := range c.rules {
		if r.Match(ev) {
			return r.Name, true
		}
	}
	return "", false
}

func (c *Classifier) IsSiteBooking(ev *Event) bool {
	_, ok := c.Match(ev)
	return ok
}
