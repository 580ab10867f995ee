package utils

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeClockSleepAdvances(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := NewFakeClock(start)

	clock.Sleep(context.Background(), 800*time.Millisecond)
	assert.Equal(t, start.Add(800*time.Millisecond), clock.Now())
}

func TestFakeClockAfterFunc(t *testing.T) {
	clock := NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	fired := 0
	clock.AfterFunc(2*time.Second, func() { fired++ })

	clock.Advance(1 * time.Second)
	assert.Equal(t, 0, fired)

	clock.Advance(1 * time.Second)
	assert.Equal(t, 1, fired)

	// A fired timer does not fire again.
	clock.Advance(10 * time.Second)
	assert.Equal(t, 1, fired)
}

func TestFakeClockTimerOrder(t *testing.T) {
	clock := NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	var order []string
	clock.AfterFunc(2*time.Second, func() { order = append(order, "late") })
	clock.AfterFunc(1*time.Second, func() { order = append(order, "early") })

	clock.Advance(3 * time.Second)
	assert.Equal(t, []string{"early", "late"}, order)
}

func TestFakeClockStop(t *testing.T) {
	clock := NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	fired := false
	timer := clock.AfterFunc(1*time.Second, func() { fired = true })
	require.True(t, timer.Stop())

	clock.Advance(5 * time.Second)
	assert.False(t, fired)

	// Stopping twice reports failure.
	assert.False(t, timer.Stop())
}

func TestFakeClockChainedTimers(t *testing.T) {
	clock := NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	var events []string
	clock.AfterFunc(1*time.Second, func() {
		events = append(events, "first")
		clock.AfterFunc(1*time.Second, func() {
			events = append(events, "second")
		})
	})

	clock.Advance(1 * time.Second)
	assert.Equal(t, []string{"first"}, events)

	clock.Advance(1 * time.Second)
	assert.Equal(t, []string{"first", "second"}, events)
}
