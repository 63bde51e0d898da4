// Package busy turns calendar data into the blocked intervals of one
// business window.
package busy

import (
	"context"
	"log/slog"
	"time"

	"calendar-booking/internal/domain/interval"
	"calendar-booking/internal/pkg/errs"
	"calendar-booking/internal/usecase/shared"
)

var ErrUnknownStrategy = errs.New("unknown busy source strategy")

type Strategy string

const (
	StrategyEvents   Strategy = "events"
	StrategyFreeBusy Strategy = "freebusy"
)

// listPageSize bounds a single events page; a day rarely needs a second one.
const listPageSize = 250

// Source reports the busy intervals within window, clamped to it.
type Source interface {
	Busy(ctx context.Context, window interval.Interval) ([]interval.Interval, error)
}

func New(strategy Strategy, gateway shared.CalendarGateway, logger *slog.Logger) (Source, error) {
	switch strategy {
	case StrategyEvents, "":
		return &EventScan{gateway: gateway, logger: logger}, nil
	case StrategyFreeBusy:
		return &FreeBusy{gateway: gateway, logger: logger}, nil
	default:
		return nil, errs.Mark(errs.Newf("busy source %q", strategy), ErrUnknownStrategy)
	}
}

// EventScan lists the events themselves. Transparent events never block; an
// all-day event blocks the whole window.
type EventScan struct {
	gateway shared.CalendarGateway
	logger  *slog.Logger
}

func (s *EventScan) Busy(ctx context.Context, window interval.Interval) ([]interval.Interval, error) {
	var out []interval.Interval
	q := shared.EventQuery{TimeMin: window.Start, TimeMax: window.End, MaxResults: listPageSize}
	for {
		page, err := s.gateway.ListEvents(ctx, q)
		if err != nil {
			return nil, err
		}
		for _, ev := range page.Events {
			if ev.Transparent {
				continue
			}
			if ev.IsAllDay() {
				out = append(out, window)
				continue
			}
			start, startErr := ev.Start.Instant()
			end, endErr := ev.End.Instant()
			if startErr != nil || endErr != nil {
				s.logger.Warn("skipping event with malformed time",
					slog.String("event_id", ev.ID),
					slog.String("start", ev.Start.Raw()),
					slog.String("end", ev.End.Raw()),
				)
				continue
			}
			if c, ok := interval.Clamp(interval.Interval{Start: start, End: end}, window); ok {
				out = append(out, c)
			}
		}
		if page.NextPageToken == "" {
			return out, nil
		}
		q.PageToken = page.NextPageToken
	}
}

// FreeBusy asks the calendar service for its own busy computation.
type FreeBusy struct {
	gateway shared.CalendarGateway
	logger  *slog.Logger
}

func (s *FreeBusy) Busy(ctx context.Context, window interval.Interval) ([]interval.Interval, error) {
	periods, err := s.gateway.QueryFreeBusy(ctx, window)
	if err != nil {
		return nil, err
	}
	out := make([]interval.Interval, 0, len(periods))
	for _, p := range periods {
		start, startErr := time.Parse(time.RFC3339, p.Start)
		end, endErr := time.Parse(time.RFC3339, p.End)
		if startErr != nil || endErr != nil {
			s.logger.Warn("skipping malformed busy period",
				slog.String("start", p.Start),
				slog.String("end", p.End),
			)
			continue
		}
		if c, ok := interval.Clamp(interval.Interval{Start: start, End: end}, window); ok {
			out = append(out, c)
		}
	}
	return out, nil
}
