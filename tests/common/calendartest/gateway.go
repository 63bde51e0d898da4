//go:build unit || e2e

// Package calendartest is an in-memory calendar that behaves like the real
// gateway: ids are assigned on insert, cancelled events disappear and listings
// are paged.
package calendartest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"sync"

	"calendar-booking/internal/domain/booking"
	"calendar-booking/internal/domain/interval"
	"calendar-booking/internal/infra"
	"calendar-booking/internal/usecase/shared"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type Gateway struct {
	mu       sync.Mutex
	events   map[string]*booking.Event
	seq      int
	PageSize int
	Busy     []shared.BusyPeriod
	// FailWith makes every call return an upstream failure with this cause.
	FailWith error
	calls    []string
}

func New() *Gateway {
	return &Gateway{events: map[string]*booking.Event{}, PageSize: 250}
}

// Seed stores ev as is. An empty id gets one assigned.
func (g *Gateway) Seed(evs ...*booking.Event) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, ev := range evs {
		c := clone(ev)
		if c.ID == "" {
			g.seq++
			c.ID = fmt.Sprintf("evt_%d", g.seq)
		}
		g.events[c.ID] = c
	}
}

func (g *Gateway) Event(id string) (*booking.Event, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	ev, ok := g.events[id]
	if !ok {
		return nil, false
	}
	return clone(ev), true
}

func (g *Gateway) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.events)
}

// Reset drops every event and recorded call.
func (g *Gateway) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.events = map[string]*booking.Event{}
	g.calls = nil
	g.Busy = nil
	g.FailWith = nil
}

// Calls lists the operations made so far in order.
func (g *Gateway) Calls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.calls...)
}

func (g *Gateway) record(op string) error {
	g.calls = append(g.calls, op)
	if g.FailWith != nil {
		return infra.WrapGatewayErr(discard, infra.KindUpstreamFailure, op+" failed", g.FailWith)
	}
	return nil
}

func (g *Gateway) ListEvents(_ context.Context, q shared.EventQuery) (*shared.EventPage, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.record("ListEvents"); err != nil {
		return nil, err
	}

	window := interval.Interval{Start: q.TimeMin, End: q.TimeMax}
	var matched []*booking.Event
	for _, ev := range g.events {
		if ev.Status == "cancelled" {
			continue
		}
		if !ev.IsAllDay() {
			start, err1 := ev.Start.Instant()
			end, err2 := ev.End.Instant()
			if err1 == nil && err2 == nil && !interval.Overlaps(interval.Interval{Start: start, End: end}, window) {
				continue
			}
		}
		matched = append(matched, clone(ev))
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Start.Raw() == matched[j].Start.Raw() {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].Start.Raw() < matched[j].Start.Raw()
	})

	size := g.PageSize
	if q.MaxResults > 0 && int(q.MaxResults) < size {
		size = int(q.MaxResults)
	}
	offset := 0
	if q.PageToken != "" {
		offset, _ = strconv.Atoi(q.PageToken)
	}
	end := min(offset+size, len(matched))
	page := &shared.EventPage{Events: matched[offset:end]}
	if end < len(matched) {
		page.NextPageToken = strconv.Itoa(end)
	}
	return page, nil
}

func (g *Gateway) GetEvent(_ context.Context, eventID string) (*booking.Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.record("GetEvent"); err != nil {
		return nil, err
	}
	ev, ok := g.events[eventID]
	if !ok || ev.Status == "cancelled" {
		return nil, notFound(eventID)
	}
	return clone(ev), nil
}

func (g *Gateway) InsertEvent(_ context.Context, ev *booking.Event) (*booking.Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.record("InsertEvent"); err != nil {
		return nil, err
	}
	g.seq++
	c := clone(ev)
	c.ID = fmt.Sprintf("evt_%d", g.seq)
	g.events[c.ID] = c
	return clone(c), nil
}

func (g *Gateway) PatchEvent(_ context.Context, eventID string, patch booking.EventPatch) (*booking.Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.record("PatchEvent"); err != nil {
		return nil, err
	}
	ev, ok := g.events[eventID]
	if !ok {
		return nil, notFound(eventID)
	}
	if patch.Private != nil {
		ev.Private = copyMap(patch.Private)
	}
	return clone(ev), nil
}

func (g *Gateway) DeleteEvent(_ context.Context, eventID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.record("DeleteEvent"); err != nil {
		return err
	}
	if _, ok := g.events[eventID]; !ok {
		return notFound(eventID)
	}
	delete(g.events, eventID)
	return nil
}

func (g *Gateway) QueryFreeBusy(_ context.Context, _ interval.Interval) ([]shared.BusyPeriod, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.record("QueryFreeBusy"); err != nil {
		return nil, err
	}
	return append([]shared.BusyPeriod(nil), g.Busy...), nil
}

func notFound(id string) error {
	return infra.WrapGatewayErr(discard, infra.KindNotFound, "event "+id+" not found", nil)
}

func clone(ev *booking.Event) *booking.Event {
	c := *ev
	c.Attendees = append([]string(nil), ev.Attendees...)
	c.Private = copyMap(ev.Private)
	return &c
}

func copyMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
