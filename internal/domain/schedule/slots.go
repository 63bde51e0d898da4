package schedule

import (
	"time"

	"calendar-booking/internal/domain/interval"
	"calendar-booking/internal/pkg/errs"
	"calendar-booking/internal/pkg/tz"
)

var ErrUnknownSlotMode = errs.New("unknown slot mode")

type Mode string

const (
	// ModeBuffered steps a fixed grid across the business window and reserves
	// pre/post buffers around every appointment.
	ModeBuffered Mode = "buffered"
	// ModeHourly offers starts on whole local hours inside each free window.
	ModeHourly Mode = "hourly"
)

// SlotRequest is everything needed to enumerate one day's offerable starts.
type SlotRequest struct {
	Window  interval.Interval
	Free    []interval.Interval
	Busy    []interval.Interval
	Service ServiceSpec
	Now     time.Time
}

type Generator interface {
	Mode() Mode
	Generate(req SlotRequest) []time.Time
}

func NewGenerator(mode Mode, step time.Duration, anchor *tz.Anchor) (Generator, error) {
	if step <= 0 {
		return nil, errs.Newf("slot step must be positive, got %s", step)
	}
	switch mode {
	case ModeBuffered, "":
		return &BufferedGenerator{step: step}, nil
	case ModeHourly:
		if anchor == nil {
			return nil, errs.New("hourly slot mode requires a time zone anchor")
		}
		return &HourlyGenerator{step: step, anchor: anchor}, nil
	default:
		return nil, errs.Mark(errs.Newf("slot mode %q", mode), ErrUnknownSlotMode)
	}
}

// BufferedGenerator offers start s when the reserved span
// [s-pre, s+duration+post) sits inside one free window and s has not passed.
type BufferedGenerator struct {
	step time.Duration
}

func (g *BufferedGenerator) Mode() Mode { return ModeBuffered }

func (g *BufferedGenerator) Generate(req SlotRequest) []time.Time {
	dur := req.Service.Duration()
	if dur <= 0 || req.Window.IsEmpty() {
		return nil
	}
	pre, post := req.Service.PreBuffer(), req.Service.PostBuffer()

	var out []time.Time
	for s := req.Window.Start; s.Before(req.Window.End); s = s.Add(g.step) {
		reserved := interval.Interval{Start: s.Add(-pre), End: s.Add(dur + post)}
		if reserved.End.After(req.Window.End) {
			break
		}
		if s.Before(req.Now) {
			continue
		}
		if !fitsAny(reserved, req.Free) || overlapsAny(reserved, req.Busy) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// HourlyGenerator is the calendar-only mode: starts are aligned to the next
// whole local hour and advance by step while the appointment still fits.
type HourlyGenerator struct {
	step   time.Duration
	anchor *tz.Anchor
}

func (g *HourlyGenerator) Mode() Mode { return ModeHourly }

func (g *HourlyGenerator) Generate(req SlotRequest) []time.Time {
	dur := req.Service.Duration()
	if dur <= 0 {
		return nil
	}
	var out []time.Time
	for _, free := range req.Free {
		from := free.Start
		if req.Now.After(from) {
			from = req.Now
		}
		for t := g.anchor.AlignToNextWholeHour(from); !t.Add(dur).After(free.End); t = t.Add(g.step) {
			if t.Before(req.Now) {
				continue
			}
			out = append(out, t)
		}
	}
	return out
}

func fitsAny(span interval.Interval, free []interval.Interval) bool {
	for _, f := range free {
		if interval.Contains(f, span) {
			return true
		}
	}
	return false
}

func overlapsAny(span interval.Interval, busy []interval.Interval) bool {
	for _, b := range busy {
		if interval.Overlaps(span, b) {
			return true
		}
	}
	return false
}
