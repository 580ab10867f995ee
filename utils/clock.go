package utils

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Clock abstracts wall-clock access and timer scheduling so the simulated
// backend latencies can be advanced deterministically in tests.
type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until ctx is cancelled.
	Sleep(ctx context.Context, d time.Duration)
	// AfterFunc runs f after d on an internal goroutine.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a cancellable pending callback.
type Timer interface {
	Stop() bool
}

// RealClock delegates to the time package.
type RealClock struct{}

func NewRealClock() *RealClock {
	return &RealClock{}
}

func (RealClock) Now() time.Time {
	return time.Now()
}

func (RealClock) Sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func (RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// FakeClock is a manually advanced clock for tests. Sleep advances the fake
// time immediately and returns; callbacks registered with AfterFunc fire when
// Advance moves the clock past their deadline.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock    *FakeClock
	deadline time.Time
	fn       func()
	stopped  bool
	fired    bool
}

func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

func (fc *FakeClock) Now() time.Time {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.now
}

func (fc *FakeClock) Sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	fc.Advance(d)
}

func (fc *FakeClock) AfterFunc(d time.Duration, f func()) Timer {
	fc.mu.Lock()
	t := &fakeTimer{clock: fc, deadline: fc.now.Add(d), fn: f}
	fc.timers = append(fc.timers, t)
	fc.mu.Unlock()
	if d <= 0 {
		fc.Advance(0)
	}
	return t
}

// Advance moves the clock forward and fires every timer whose deadline has
// been reached, in deadline order. Callbacks run without the lock held and
// may themselves schedule further timers.
func (fc *FakeClock) Advance(d time.Duration) {
	fc.mu.Lock()
	fc.now = fc.now.Add(d)
	fc.mu.Unlock()

	for {
		t := fc.nextDue()
		if t == nil {
			return
		}
		t.fn()
	}
}

func (fc *FakeClock) nextDue() *fakeTimer {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	sort.SliceStable(fc.timers, func(i, j int) bool {
		return fc.timers[i].deadline.Before(fc.timers[j].deadline)
	})
	for _, t := range fc.timers {
		if t.stopped || t.fired {
			continue
		}
		if !t.deadline.After(fc.now) {
			t.fired = true
			return t
		}
	}
	return nil
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}
