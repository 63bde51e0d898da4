package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"calendar-booking/internal/pkg/errs"
)

const MinutesPerDay = 24 * 60

var ErrInvalidHours = errs.New("invalid business hours")

// DayWindow is the [Open, Close) minute-of-day range in business civil time.
// Open >= Close means closed all day.
type DayWindow struct {
	Open  int
	Close int
}

func (w DayWindow) IsClosed() bool {
	return w.Open >= w.Close
}

func (w DayWindow) String() string {
	if w.IsClosed() {
		return "closed"
	}
	return formatMinute(w.Open) + "-" + formatMinute(w.Close)
}

// WeeklyHours maps each weekday to its business window. The zero value is
// closed every day.
type WeeklyHours [7]DayWindow

func (h WeeklyHours) WindowFor(day time.Weekday) (openMin, closeMin int) {
	w := h[day]
	return w.Open, w.Close
}

func (h WeeklyHours) IsClosed(day time.Weekday) bool {
	return h[day].IsClosed()
}

// AlwaysOpen is the calendar-only configuration: every day 00:00-24:00.
func AlwaysOpen() WeeklyHours {
	var h WeeklyHours
	for i := range h {
		h[i] = DayWindow{Open: 0, Close: MinutesPerDay}
	}
	return h
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// ParseWeeklyHours reads "sun=closed;mon=17:00-21:00;...". Days that are not
// listed are closed.
func ParseWeeklyHours(s string) (WeeklyHours, error) {
	var h WeeklyHours
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, spec, ok := strings.Cut(part, "=")
		if !ok {
			return WeeklyHours{}, errs.Mark(errs.Newf("entry %q: missing '='", part), ErrInvalidHours)
		}
		key := strings.ToLower(strings.TrimSpace(name))
		if len(key) > 3 {
			key = key[:3]
		}
		day, ok := weekdayNames[key]
		if !ok {
			return WeeklyHours{}, errs.Mark(errs.Newf("entry %q: unknown weekday", part), ErrInvalidHours)
		}
		w, err := parseDayWindow(strings.TrimSpace(spec))
		if err != nil {
			return WeeklyHours{}, errs.Mark(errs.Wrapf(err, "entry %q", part), ErrInvalidHours)
		}
		h[day] = w
	}
	return h, nil
}

func (h WeeklyHours) String() string {
	order := []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}
	parts := make([]string, 0, len(order))
	for i, name := range order {
		parts = append(parts, name+"="+h[i].String())
	}
	return strings.Join(parts, ";")
}

func parseDayWindow(spec string) (DayWindow, error) {
	if strings.EqualFold(spec, "closed") || spec == "" {
		return DayWindow{}, nil
	}
	from, to, ok := strings.Cut(spec, "-")
	if !ok {
		return DayWindow{}, errs.Newf("window %q: expected HH:MM-HH:MM", spec)
	}
	open, err := parseMinute(from)
	if err != nil {
		return DayWindow{}, err
	}
	closing, err := parseMinute(to)
	if err != nil {
		return DayWindow{}, err
	}
	return DayWindow{Open: open, Close: closing}, nil
}

func parseMinute(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, errs.Newf("time %q: expected HH:MM", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, errs.Wrapf(err, "time %q", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, errs.Wrapf(err, "time %q", s)
	}
	total := h*60 + m
	if h < 0 || m < 0 || m > 59 || total > MinutesPerDay {
		return 0, errs.Newf("time %q out of range", s)
	}
	return total, nil
}

func formatMinute(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Decode lets WeeklyHours be read straight from an environment variable.
func (h *WeeklyHours) Decode(value string) error {
	parsed, err := ParseWeeklyHours(value)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
