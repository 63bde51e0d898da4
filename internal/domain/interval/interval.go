// Package interval implements half-open time interval algebra used to turn
// busy calendar data into free windows.
package interval

import (
	"fmt"
	"sort"
	"time"

	"calendar-booking/internal/pkg/errs"
)

var ErrEmptyInterval = errs.New("interval start must be before end")

// Interval is the half-open span [Start, End).
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func New(start, end time.Time) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, errs.Mark(errs.Newf("interval [%s, %s)", start.Format(time.RFC3339), end.Format(time.RFC3339)), ErrEmptyInterval)
	}
	return Interval{Start: start, End: end}, nil
}

func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

func (iv Interval) IsEmpty() bool {
	return !iv.Start.Before(iv.End)
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%s, %s)", iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339))
}

// Overlaps reports whether the two spans share any instant.
func Overlaps(a, b Interval) bool {
	return !(a.End.Compare(b.Start) <= 0 || a.Start.Compare(b.End) >= 0)
}

// Contains reports whether inner lies entirely inside outer.
func Contains(outer, inner Interval) bool {
	return outer.Start.Compare(inner.Start) <= 0 && inner.End.Compare(outer.End) <= 0
}

// Clamp intersects iv with window. ok is false when they are disjoint.
func Clamp(iv, window Interval) (Interval, bool) {
	start := iv.Start
	if window.Start.After(start) {
		start = window.Start
	}
	end := iv.End
	if window.End.Before(end) {
		end = window.End
	}
	if !start.Before(end) {
		return Interval{}, false
	}
	return Interval{Start: start, End: end}, true
}

// Merge returns a sorted, disjoint, minimal cover of the input. Touching
// intervals are folded together. The input slice is not modified.
func Merge(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}
	sorted := make([]Interval, 0, len(intervals))
	for _, iv := range intervals {
		if iv.IsEmpty() {
			continue
		}
		sorted = append(sorted, iv)
	}
	if len(sorted) == 0 {
		return nil
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	out := []Interval{sorted[0]}
	for _, cur := range sorted[1:] {
		last := &out[len(out)-1]
		if cur.Start.Compare(last.End) <= 0 {
			if cur.End.After(last.End) {
				last.End = cur.End
			}
			continue
		}
		out = append(out, cur)
	}
	return out
}

// Invert returns the complement of merged inside window. merged must already
// be the output of Merge.
func Invert(merged []Interval, window Interval) []Interval {
	if window.IsEmpty() {
		return nil
	}
	var free []Interval
	cursor := window.Start
	for _, busy := range merged {
		if !busy.End.After(cursor) {
			continue
		}
		if !busy.Start.Before(window.End) {
			break
		}
		if cursor.Before(busy.Start) {
			free = append(free, Interval{Start: cursor, End: busy.Start})
		}
		if busy.End.After(cursor) {
			cursor = busy.End
		}
	}
	if cursor.Before(window.End) {
		free = append(free, Interval{Start: cursor, End: window.End})
	}
	return free
}

// ClampAll clamps every interval to window, dropping the disjoint ones.
func ClampAll(intervals []Interval, window Interval) []Interval {
	out := make([]Interval, 0, len(intervals))
	for _, iv := range intervals {
		if c, ok := Clamp(iv, window); ok {
			out = append(out, c)
		}
	}
	return out
}
