//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"calendar-booking/internal/domain/interval"
	"calendar-booking/internal/domain/schedule"
	"calendar-booking/internal/pkg/errs"
	"calendar-booking/internal/pkg/tz"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var anchor = tz.MustAnchor("America/Los_Angeles")

func local(day string, hh, mm int) time.Time {
	d, err := anchor.StartOfCivilDay(day)
	if err != nil {
		panic(err)
	}
	return anchor.AtMinute(d, hh*60+mm)
}

func span(day string, h1, m1, h2, m2 int) interval.Interval {
	return interval.Interval{Start: local(day, h1, m1), End: local(day, h2, m2)}
}

func formatAll(ts []time.Time) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.In(anchor.Location()).Format("15:04"))
	}
	return out
}

func request(window interval.Interval, busy []interval.Interval, now time.Time) schedule.SlotRequest {
	merged := interval.Merge(interval.ClampAll(busy, window))
	return schedule.SlotRequest{
		Window:  window,
		Busy:    merged,
		Free:    interval.Invert(merged, window),
		Service: schedule.ServiceSpec{Name: "Massage", DurationMinutes: 60, PreBufferMin: 15, PostBufferMin: 15},
		Now:     now,
	}
}

func TestNewGenerator(t *testing.T) {
	_, err := schedule.NewGenerator(schedule.ModeBuffered, 0, anchor)
	assert.Error(t, err)

	_, err = schedule.NewGenerator("weekly", 15*time.Minute, anchor)
	assert.True(t, errs.Is(err, schedule.ErrUnknownSlotMode))

	_, err = schedule.NewGenerator(schedule.ModeHourly, time.Hour, nil)
	assert.Error(t, err)

	g, err := schedule.NewGenerator("", 15*time.Minute, anchor)
	require.NoError(t, err)
	assert.Equal(t, schedule.ModeBuffered, g.Mode())
}

func TestBufferedGenerator(t *testing.T) {
	const day = "2025-03-03" // Monday
	g, err := schedule.NewGenerator(schedule.ModeBuffered, 15*time.Minute, anchor)
	require.NoError(t, err)
	window := span(day, 17, 0, 21, 0)
	past := local("2025-03-01", 0, 0)

	t.Run("open evening without conflicts", func(t *testing.T) {
		got := g.Generate(request(window, nil, past))
		assert.Equal(t, []string{"17:15", "17:30", "17:45", "18:00", "18:15", "18:30", "18:45", "19:00", "19:15", "19:30", "19:45"}, formatAll(got))
	})

	t.Run("first slot after a conflict honours both buffers", func(t *testing.T) {
		got := g.Generate(request(window, []interval.Interval{span(day, 18, 0, 19, 0)}, past))
		assert.Equal(t, []string{"19:15", "19:30", "19:45"}, formatAll(got))
	})

	t.Run("no offered span overlaps busy time", func(t *testing.T) {
		busy := []interval.Interval{span(day, 17, 40, 17, 50), span(day, 20, 10, 20, 20)}
		req := request(window, busy, past)
		for _, s := range g.Generate(req) {
			reserved := interval.Interval{Start: s.Add(-15 * time.Minute), End: s.Add(75 * time.Minute)}
			for _, b := range req.Busy {
				assert.False(t, interval.Overlaps(reserved, b), "slot %s overlaps %s", s, b)
			}
			assert.True(t, interval.Contains(window, reserved))
		}
	})

	t.Run("slots before now are dropped", func(t *testing.T) {
		got := g.Generate(request(window, nil, local(day, 19, 10)))
		assert.Equal(t, []string{"19:15", "19:30", "19:45"}, formatAll(got))
	})

	t.Run("a slot starting exactly now is kept", func(t *testing.T) {
		got := g.Generate(request(window, nil, local(day, 19, 45)))
		assert.Equal(t, []string{"19:45"}, formatAll(got))
	})

	t.Run("fully booked window", func(t *testing.T) {
		assert.Empty(t, g.Generate(request(window, []interval.Interval{span(day, 16, 0, 22, 0)}, past)))
	})

	t.Run("service longer than window", func(t *testing.T) {
		req := request(span(day, 17, 0, 18, 0), nil, past)
		assert.Empty(t, g.Generate(req))
	})
}

func TestBufferedGeneratorAcrossDST(t *testing.T) {
	g, err := schedule.NewGenerator(schedule.ModeBuffered, 60*time.Minute, anchor)
	require.NoError(t, err)

	// 2025-03-09 loses 02:00-03:00 local.
	day, err := anchor.StartOfCivilDay("2025-03-09")
	require.NoError(t, err)
	window := interval.Interval{Start: anchor.AtMinute(day, 0), End: anchor.AtMinute(day, 6*60)}
	got := g.Generate(request(window, nil, local("2025-03-01", 0, 0)))

	require.NotEmpty(t, got)
	for i := 1; i < len(got); i++ {
		assert.Equal(t, time.Hour, got[i].Sub(got[i-1]), "slots are a fixed step apart in absolute time")
	}
	assert.Equal(t, "-07:00", got[len(got)-1].In(anchor.Location()).Format("-07:00"))
}

func TestHourlyGenerator(t *testing.T) {
	const day = "2025-03-03"
	g, err := schedule.NewGenerator(schedule.ModeHourly, time.Hour, anchor)
	require.NoError(t, err)

	dayStart, err := anchor.StartOfCivilDay(day)
	require.NoError(t, err)
	window := interval.Interval{Start: dayStart, End: anchor.NextCivilDay(dayStart)}

	t.Run("aligns to next whole hour after now", func(t *testing.T) {
		req := request(window, []interval.Interval{span(day, 0, 0, 20, 30)}, local(day, 9, 10))
		req.Service = schedule.ServiceSpec{DurationMinutes: 120}
		assert.Equal(t, []string{"21:00", "22:00"}, formatAll(g.Generate(req)))
	})

	t.Run("whole free day", func(t *testing.T) {
		req := request(window, nil, local("2025-03-01", 0, 0))
		req.Service = schedule.ServiceSpec{DurationMinutes: 120}
		assert.Len(t, g.Generate(req), 23)
	})

	t.Run("offers the repeated hour on a fall-back day", func(t *testing.T) {
		const fallBack = "2025-11-02"
		start, err := anchor.StartOfCivilDay(fallBack)
		require.NoError(t, err)
		day := interval.Interval{Start: start, End: anchor.NextCivilDay(start)}
		// Busy until 01:30 PDT.
		busy := []interval.Interval{{Start: start, End: time.Date(2025, 11, 2, 8, 30, 0, 0, time.UTC)}}

		got := g.Generate(request(day, busy, start))
		require.NotEmpty(t, got)
		assert.True(t, got[0].Equal(time.Date(2025, 11, 2, 9, 0, 0, 0, time.UTC)), got[0].String())
		assert.Len(t, got, 23)
	})
}
