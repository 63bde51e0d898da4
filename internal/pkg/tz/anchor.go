// Package tz converts between civil dates in the business zone and absolute
// instants. Nothing here consults the host process's local zone.
package tz

import (
	"strings"
	"time"

	"calendar-booking/internal/pkg/errs"
)

var ErrInvalidDate = errs.New("invalid civil date")

const dateLayout = "2006-01-02"

type Anchor struct {
	loc *time.Location
}

func NewAnchor(zone string) (*Anchor, error) {
	if strings.TrimSpace(zone) == "" {
		return nil, errs.New("time zone name is empty")
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, errs.Wrapf(err, "load time zone %q", zone)
	}
	return &Anchor{loc: loc}, nil
}

func MustAnchor(zone string) *Anchor {
	a, err := NewAnchor(zone)
	if err != nil {
		panic(err)
	}
	return a
}

func (a *Anchor) Location() *time.Location { return a.loc }

func (a *Anchor) Name() string { return a.loc.String() }

// StartOfCivilDay accepts "YYYY-MM-DD" or a full RFC3339 timestamp. For the
// latter the date part is taken literally, not converted into the zone.
func (a *Anchor) StartOfCivilDay(dateLike string) (time.Time, error) {
	s := strings.TrimSpace(dateLike)
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		s = s[:i]
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, errs.Mark(errs.Wrapf(err, "parse date %q", dateLike), ErrInvalidDate)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, a.loc), nil
}

// StartOfDay returns local midnight of the civil day containing t.
func (a *Anchor) StartOfDay(t time.Time) time.Time {
	l := t.In(a.loc)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, a.loc)
}

// NextCivilDay is the midnight following dayStart. On DST transition days this
// is 23 or 25 hours later.
func (a *Anchor) NextCivilDay(dayStart time.Time) time.Time {
	l := dayStart.In(a.loc)
	return time.Date(l.Year(), l.Month(), l.Day()+1, 0, 0, 0, 0, a.loc)
}

// AtMinute returns the instant of the given wall-clock minute of the civil day
// starting at dayStart. 1440 resolves to the following midnight.
func (a *Anchor) AtMinute(dayStart time.Time, minuteOfDay int) time.Time {
	l := dayStart.In(a.loc)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, minuteOfDay, 0, 0, a.loc)
}

// OffsetMinutes is the signed number of minutes to add to UTC to get local
// wall time at instant t.
func (a *Anchor) OffsetMinutes(t time.Time) int {
	_, offset := t.In(a.loc).Zone()
	return offset / 60
}

// AlignToNextWholeHour rounds t up to the next local hour boundary. An instant
// already on a boundary is returned unchanged. The floor is taken in absolute
// time so both passes through a repeated fall-back hour are reachable.
func (a *Anchor) AlignToNextWholeHour(t time.Time) time.Time {
	l := t.In(a.loc)
	floor := l.Add(-(time.Duration(l.Minute())*time.Minute +
		time.Duration(l.Second())*time.Second +
		time.Duration(l.Nanosecond())))
	if floor.Equal(t) {
		return floor
	}
	return floor.Add(time.Hour)
}

func (a *Anchor) Weekday(dayStart time.Time) time.Weekday {
	return dayStart.In(a.loc).Weekday()
}

// Format renders t as RFC3339 carrying the business zone offset.
func (a *Anchor) Format(t time.Time) string {
	return t.In(a.loc).Format(time.RFC3339)
}

// Label is the human readable form shown next to an offered slot.
func (a *Anchor) Label(t time.Time) string {
	return t.In(a.loc).Format("Mon, Jan 2 · 3:04 PM")
}

// Pretty is the long form used in notification emails.
func (a *Anchor) Pretty(t time.Time) string {
	return t.In(a.loc).Format("Monday, Jan 2, 2006, 3:04 PM")
}
