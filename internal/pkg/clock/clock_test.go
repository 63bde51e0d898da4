//go:build unit

package clock_test

import (
	"sync"
	"testing"
	"time"

	"calendar-booking/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
)

func TestFixedClock(t *testing.T) {
	start := time.Date(2025, 3, 3, 17, 0, 0, 0, time.UTC)
	c := clock.NewFixedClock(start)
	assert.Equal(t, start, c.Now())

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Advance(15 * time.Minute)
			_ = c.Now()
		}()
	}
	wg.Wait()
	assert.Equal(t, start.Add(2*time.Hour), c.Now())

	c.Set(start)
	assert.Equal(t, start, c.Now())
}

func TestSystemClock(t *testing.T) {
	before := time.Now()
	got := clock.NewSystemClock().Now()
	assert.False(t, got.Before(before))
}
