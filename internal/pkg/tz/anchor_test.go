//go:build unit

package tz_test

import (
	"testing"
	"time"

	"calendar-booking/internal/pkg/errs"
	"calendar-booking/internal/pkg/tz"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnchor(t *testing.T) {
	anchor := tz.MustAnchor("America/Los_Angeles")

	t.Run("rejects empty or unknown zone", func(t *testing.T) {
		_, err := tz.NewAnchor("")
		assert.Error(t, err)
		_, err = tz.NewAnchor("Mars/Olympus_Mons")
		assert.Error(t, err)
	})

	t.Run("start of civil day uses the business offset", func(t *testing.T) {
		got, err := anchor.StartOfCivilDay("2025-03-03")
		require.NoError(t, err)
		assert.Equal(t, "2025-03-03T00:00:00-08:00", got.Format(time.RFC3339))
	})

	t.Run("timestamp input keeps its literal date", func(t *testing.T) {
		got, err := anchor.StartOfCivilDay("2025-03-04T02:00:00Z")
		require.NoError(t, err)
		assert.Equal(t, "2025-03-04T00:00:00-08:00", got.Format(time.RFC3339))
	})

	t.Run("malformed date is marked", func(t *testing.T) {
		for _, in := range []string{"", "tomorrow", "2025-13-01", "2025/03/03"} {
			_, err := anchor.StartOfCivilDay(in)
			assert.True(t, errs.Is(err, tz.ErrInvalidDate), "input %q", in)
		}
	})

	t.Run("civil days across DST are 23 and 25 hours", func(t *testing.T) {
		spring, err := anchor.StartOfCivilDay("2025-03-09")
		require.NoError(t, err)
		assert.Equal(t, 23*time.Hour, anchor.NextCivilDay(spring).Sub(spring))

		fall, err := anchor.StartOfCivilDay("2025-11-02")
		require.NoError(t, err)
		assert.Equal(t, 25*time.Hour, anchor.NextCivilDay(fall).Sub(fall))
	})

	t.Run("at minute resolves wall clock after a transition", func(t *testing.T) {
		day, err := anchor.StartOfCivilDay("2025-03-09")
		require.NoError(t, err)
		assert.Equal(t, "2025-03-09T17:00:00-07:00", anchor.Format(anchor.AtMinute(day, 17*60)))
		assert.Equal(t, "2025-03-10T00:00:00-07:00", anchor.Format(anchor.AtMinute(day, 24*60)))
	})

	t.Run("offset minutes", func(t *testing.T) {
		winter := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
		summer := time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)
		assert.Equal(t, -480, anchor.OffsetMinutes(winter))
		assert.Equal(t, -420, anchor.OffsetMinutes(summer))
	})

	t.Run("align to next whole hour", func(t *testing.T) {
		onHour := time.Date(2025, 3, 3, 18, 0, 0, 0, anchor.Location())
		assert.True(t, anchor.AlignToNextWholeHour(onHour).Equal(onHour))

		mid := time.Date(2025, 3, 3, 18, 1, 0, 0, anchor.Location())
		assert.Equal(t, "2025-03-03T19:00:00-08:00", anchor.Format(anchor.AlignToNextWholeHour(mid)))
	})

	t.Run("align across a fall-back hour", func(t *testing.T) {
		// 01:30 PDT, first pass through the repeated hour.
		firstPass := time.Date(2025, 11, 2, 8, 30, 0, 0, time.UTC)
		got := anchor.AlignToNextWholeHour(firstPass)
		assert.Equal(t, "2025-11-02T01:00:00-08:00", anchor.Format(got))
		assert.Equal(t, 30*time.Minute, got.Sub(firstPass))

		// 01:30 PST, second pass.
		secondPass := time.Date(2025, 11, 2, 9, 30, 0, 0, time.UTC)
		assert.Equal(t, "2025-11-02T02:00:00-08:00", anchor.Format(anchor.AlignToNextWholeHour(secondPass)))

		onRepeatedHour := time.Date(2025, 11, 2, 9, 0, 0, 0, time.UTC)
		assert.True(t, anchor.AlignToNextWholeHour(onRepeatedHour).Equal(onRepeatedHour))
	})

	t.Run("align across a spring-forward gap", func(t *testing.T) {
		// 01:30 PST, the next boundary is 03:00 PDT.
		beforeGap := time.Date(2025, 3, 9, 9, 30, 0, 0, time.UTC)
		got := anchor.AlignToNextWholeHour(beforeGap)
		assert.Equal(t, "2025-03-09T03:00:00-07:00", anchor.Format(got))
		assert.Equal(t, 30*time.Minute, got.Sub(beforeGap))
	})

	t.Run("format renders in the business zone", func(t *testing.T) {
		utc := time.Date(2025, 3, 4, 3, 15, 0, 0, time.UTC)
		assert.Equal(t, "2025-03-03T19:15:00-08:00", anchor.Format(utc))
		assert.Equal(t, "Mon, Mar 3 · 7:15 PM", anchor.Label(utc))
		assert.Equal(t, time.Monday, anchor.Weekday(anchor.StartOfDay(utc)))
	})
}
