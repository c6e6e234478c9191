// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sort"
	"sync"
	"time"
)

// FakeClock is a Clock whose time moves only when Advance is called.
// Safe for concurrent use.
//
// Callbacks registered with AfterFunc run on the goroutine that calls
// Advance, in deadline order. A callback must not call Advance.
type FakeClock struct {
	mutex          sync.Mutex
	current        time.Time
	pending        []*fakeTimer
	pendingChanged *sync.Cond
}

type fakeTimer struct {
	deadline time.Time

	// Exactly one of channel and callback is set.
	channel  chan time.Time
	callback func()

	// done is set once the timer fired or was stopped.
	done bool
}

// Fake returns a FakeClock reading initial.
func Fake(initial time.Time) *FakeClock {
	clock := &FakeClock{current: initial}
	clock.pendingChanged = sync.NewCond(&clock.mutex)
	return clock
}

// Now returns the fake time.
func (clock *FakeClock) Now() time.Time {
	clock.mutex.Lock()
	defer clock.mutex.Unlock()
	return clock.current
}

// After returns a channel that receives once the clock has advanced
// by d.
func (clock *FakeClock) After(d time.Duration) <-chan time.Time {
	clock.mutex.Lock()
	defer clock.mutex.Unlock()

	channel := make(chan time.Time, 1)
	if d <= 0 {
		channel <- clock.current
		return channel
	}
	clock.addLocked(&fakeTimer{deadline: clock.current.Add(d), channel: channel})
	return channel
}

// AfterFunc registers f to run once the clock has advanced by d. If
// d <= 0, f runs before AfterFunc returns.
func (clock *FakeClock) AfterFunc(d time.Duration, f func()) *Timer {
	if d <= 0 {
		f()
		return &Timer{stopFunc: func() bool { return false }}
	}

	clock.mutex.Lock()
	timer := &fakeTimer{deadline: clock.current.Add(d), callback: f}
	clock.addLocked(timer)
	clock.mutex.Unlock()

	return &Timer{
		stopFunc: func() bool {
			clock.mutex.Lock()
			defer clock.mutex.Unlock()
			if timer.done {
				return false
			}
			timer.done = true
			clock.pendingChanged.Broadcast()
			return true
		},
	}
}

// Advance moves the clock forward by d and fires every timer whose
// deadline is at or before the new time, earliest first. Timers
// registered by a firing callback are honored in the same call if
// their deadline also falls inside the advanced window.
func (clock *FakeClock) Advance(d time.Duration) {
	clock.mutex.Lock()
	clock.current = clock.current.Add(d)
	target := clock.current
	clock.mutex.Unlock()

	for {
		expired := clock.takeExpired(target)
		if len(expired) == 0 {
			return
		}
		for _, timer := range expired {
			if timer.callback != nil {
				timer.callback()
				continue
			}
			select {
			case timer.channel <- target:
			default:
			}
		}
	}
}

// PendingCount returns the number of timers that have neither fired
// nor been stopped.
func (clock *FakeClock) PendingCount() int {
	clock.mutex.Lock()
	defer clock.mutex.Unlock()
	return clock.pendingCountLocked()
}

// WaitForTimers blocks until at least n timers are pending. Use it
// when the code under test registers timers from another goroutine.
func (clock *FakeClock) WaitForTimers(n int) {
	clock.mutex.Lock()
	defer clock.mutex.Unlock()
	for clock.pendingCountLocked() < n {
		clock.pendingChanged.Wait()
	}
}

func (clock *FakeClock) addLocked(timer *fakeTimer) {
	clock.pending = append(clock.pending, timer)
	clock.pendingChanged.Broadcast()
}

func (clock *FakeClock) pendingCountLocked() int {
	count := 0
	for _, timer := range clock.pending {
		if !timer.done {
			count++
		}
	}
	return count
}

// takeExpired removes and returns the live timers due at or before
// target, sorted by deadline. Stopped timers are dropped.
func (clock *FakeClock) takeExpired(target time.Time) []*fakeTimer {
	clock.mutex.Lock()
	defer clock.mutex.Unlock()

	var expired, remaining []*fakeTimer
	for _, timer := range clock.pending {
		switch {
		case timer.done:
		case timer.deadline.After(target):
			remaining = append(remaining, timer)
		default:
			timer.done = true
			expired = append(expired, timer)
		}
	}
	clock.pending = remaining

	sort.SliceStable(expired, func(i, j int) bool {
		return expired[i].deadline.Before(expired[j].deadline)
	})
	return expired
}
