package queries

import (
	"context"
	"log/slog"
	"time"

	"calendar-booking/internal/domain/interval"
	"calendar-booking/internal/domain/schedule"
	"calendar-booking/internal/pkg/clock"
	"calendar-booking/internal/pkg/errs"
	"calendar-booking/internal/pkg/tz"
	"calendar-booking/internal/usecase/busy"
	"calendar-booking/internal/usecase/shared"
)

type AvailabilityQueries interface {
	ComputeSlots(ctx context.Context, date, serviceName string, withDebug bool) (*AvailabilityView, error)
	IsOffered(ctx context.Context, start time.Time, serviceName string) (bool, error)
	Services() []schedule.ServiceSpec
}

type AvailabilitySettings struct {
	Hours   schedule.WeeklyHours
	StepMin int
}

type availabilityQueriesImpl struct {
	anchor    *tz.Anchor
	hours     schedule.WeeklyHours
	catalog   *schedule.Catalog
	generator schedule.Generator
	busy      busy.Source
	clock     clock.Clock
	stepMin   int
	logger    *slog.Logger
}

func NewAvailabilityQueries(
	anchor *tz.Anchor,
	settings AvailabilitySettings,
	catalog *schedule.Catalog,
	generator schedule.Generator,
	source busy.Source,
	clock clock.Clock,
	logger *slog.Logger,
) AvailabilityQueries {
	return &availabilityQueriesImpl{
		anchor:    anchor,
		hours:     settings.Hours,
		catalog:   catalog,
		generator: generator,
		busy:      source,
		clock:     clock,
		stepMin:   settings.StepMin,
		logger:    logger,
	}
}

func (q *availabilityQueriesImpl) Services() []schedule.ServiceSpec {
	return q.catalog.Services()
}

func (q *availabilityQueriesImpl) ComputeSlots(ctx context.Context, date, serviceName string, withDebug bool) (*AvailabilityView, error) {
	dayStart, err := q.anchor.StartOfCivilDay(date)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidDate)
	}
	svc := q.catalog.Lookup(serviceName)

	starts, dbg, err := q.compute(ctx, dayStart, svc)
	if err != nil {
		return nil, err
	}

	view := &AvailabilityView{
		Date:            dayStart.Format("2006-01-02"),
		Service:         svc.Name,
		DurationMinutes: svc.DurationMinutes,
		Closed:          dbg.Closed,
		Slots:           make([]SlotView, 0, len(starts)),
	}
	for _, s := range starts {
		view.Slots = append(view.Slots, SlotView{
			Start: s,
			ISO:   q.anchor.Format(s),
			Label: q.anchor.Label(s),
		})
	}
	if withDebug {
		view.Debug = dbg
	}
	return view, nil
}

// IsOffered recomputes the day's slots and checks that start is one of them.
func (q *availabilityQueriesImpl) IsOffered(ctx context.Context, start time.Time, serviceName string) (bool, error) {
	svc := q.catalog.Lookup(serviceName)
	starts, _, err := q.compute(ctx, q.anchor.StartOfDay(start), svc)
	if err != nil {
		return false, err
	}
	for _, s := range starts {
		if s.Equal(start) {
			return true, nil
		}
	}
	return false, nil
}

func (q *availabilityQueriesImpl) compute(ctx context.Context, dayStart time.Time, svc schedule.ServiceSpec) ([]time.Time, *AvailabilityDebug, error) {
	now := q.clock.Now()
	dbg := &AvailabilityDebug{
		Mode:       q.generator.Mode(),
		TimeZone:   q.anchor.Name(),
		Now:        now,
		StepMin:    q.stepMin,
		PreBuffer:  svc.PreBufferMin,
		PostBuffer: svc.PostBufferMin,
	}

	weekday := q.anchor.Weekday(dayStart)
	if q.hours.IsClosed(weekday) {
		dbg.Closed = true
		return nil, dbg, nil
	}
	openMin, closeMin := q.hours.WindowFor(weekday)
	window := interval.Interval{
		Start: q.anchor.AtMinute(dayStart, openMin),
		End:   q.anchor.AtMinute(dayStart, closeMin),
	}
	dbg.Window = &window

	// Nothing left to offer once the window has passed.
	if !now.Before(window.End) {
		return nil, dbg, nil
	}

	blocked, err := q.busy.Busy(ctx, window)
	if err != nil {
		return nil, nil, shared.MapCalendarError(err)
	}
	merged := interval.Merge(blocked)
	free := interval.Invert(merged, window)
	dbg.Busy = merged
	dbg.Free = free

	starts := q.generator.Generate(schedule.SlotRequest{
		Window:  window,
		Free:    free,
		Busy:    merged,
		Service: svc,
		Now:     now,
	})
	q.logger.Debug("computed availability",
		slog.String("date", dayStart.Format("2006-01-02")),
		slog.String("service", svc.Name),
		slog.Int("busy", len(merged)),
		slog.Int("slots", len(starts)),
	)
	return starts, dbg, nil
}
