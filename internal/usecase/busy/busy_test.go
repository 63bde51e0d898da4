//go:build unit

package busy_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"calendar-booking/internal/domain/booking"
	"calendar-booking/internal/domain/interval"
	"calendar-booking/internal/infra"
	"calendar-booking/internal/pkg/errs"
	"calendar-booking/internal/pkg/tz"
	"calendar-booking/internal/usecase/busy"
	"calendar-booking/internal/usecase/shared"
	"calendar-booking/tests/common/calendartest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	anchor = tz.MustAnchor("America/Los_Angeles")
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

func at(hh, mm int) time.Time {
	day, _ := anchor.StartOfCivilDay("2025-03-03")
	return anchor.AtMinute(day, hh*60+mm)
}

var window = interval.Interval{Start: at(17, 0), End: at(21, 0)}

func TestNew(t *testing.T) {
	gw := calendartest.New()

	s, err := busy.New("", gw, logger)
	require.NoError(t, err)
	assert.IsType(t, &busy.EventScan{}, s)

	s, err = busy.New(busy.StrategyFreeBusy, gw, logger)
	require.NoError(t, err)
	assert.IsType(t, &busy.FreeBusy{}, s)

	_, err = busy.New("ical", gw, logger)
	assert.True(t, errs.Is(err, busy.ErrUnknownStrategy))
}

func TestEventScan(t *testing.T) {
	ctx := context.Background()

	t.Run("clamps to the window and skips transparent events", func(t *testing.T) {
		gw := calendartest.New()
		transparent := calendartest.Timed("Reminder", at(18, 0), at(18, 30))
		transparent.Transparent = true
		gw.Seed(
			calendartest.Timed("Early", at(16, 0), at(17, 30)),
			calendartest.Timed("Dinner", at(19, 0), at(19, 45)),
			transparent,
			calendartest.Timed("Tomorrow", at(22, 0), at(23, 0)),
		)

		s, err := busy.New(busy.StrategyEvents, gw, logger)
		require.NoError(t, err)
		got, err := s.Busy(ctx, window)
		require.NoError(t, err)

		want := []interval.Interval{
			{Start: at(17, 0), End: at(17, 30)},
			{Start: at(19, 0), End: at(19, 45)},
		}
		if diff := cmp.Diff(want, interval.Merge(got)); diff != "" {
			t.Errorf("busy mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("all-day event blocks the whole window", func(t *testing.T) {
		gw := calendartest.New()
		gw.Seed(calendartest.AllDay("Vacation", "2025-03-03", "2025-03-04"))

		s, _ := busy.New(busy.StrategyEvents, gw, logger)
		got, err := s.Busy(ctx, window)
		require.NoError(t, err)
		assert.Equal(t, []interval.Interval{window}, got)
	})

	t.Run("malformed times are skipped", func(t *testing.T) {
		gw := calendartest.New()
		gw.Seed(&booking.Event{
			Summary: "Broken",
			Start:   booking.EventTime{DateTime: "not-a-time"},
			End:     booking.EventTime{DateTime: "2025-03-03T18:00:00-08:00"},
		})

		s, _ := busy.New(busy.StrategyEvents, gw, logger)
		got, err := s.Busy(ctx, window)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("follows every page", func(t *testing.T) {
		gw := calendartest.New()
		gw.PageSize = 2
		for i := 0; i < 5; i++ {
			gw.Seed(calendartest.Timed("Block", at(17, i*10), at(17, i*10+5)))
		}

		s, _ := busy.New(busy.StrategyEvents, gw, logger)
		got, err := s.Busy(ctx, window)
		require.NoError(t, err)
		assert.Len(t, got, 5)
		assert.Equal(t, []string{"ListEvents", "ListEvents", "ListEvents"}, gw.Calls())
	})

	t.Run("gateway failure is returned", func(t *testing.T) {
		gw := calendartest.New()
		gw.FailWith = errors.New("boom")

		s, _ := busy.New(busy.StrategyEvents, gw, logger)
		_, err := s.Busy(ctx, window)
		assert.True(t, infra.IsKind(err, infra.KindUpstreamFailure))
	})
}

func TestFreeBusy(t *testing.T) {
	gw := calendartest.New()
	gw.Busy = []shared.BusyPeriod{
		{Start: at(16, 30).Format(time.RFC3339), End: at(17, 15).Format(time.RFC3339)},
		{Start: "garbage", End: at(18, 0).Format(time.RFC3339)},
		{Start: at(20, 0).UTC().Format(time.RFC3339), End: at(20, 30).UTC().Format(time.RFC3339)},
	}

	s, err := busy.New(busy.StrategyFreeBusy, gw, logger)
	require.NoError(t, err)
	got, err := s.Busy(context.Background(), window)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.True(t, got[0].Start.Equal(at(17, 0)))
	assert.True(t, got[0].End.Equal(at(17, 15)))
	assert.True(t, got[1].Start.Equal(at(20, 0)))
}
