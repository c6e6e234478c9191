// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package notice

import (
	"log/slog"
	"sync"
	"time"

	"github.com/bureau-foundation/triage-console/lib/clock"
)

// DefaultDelay is how long a notice stays visible.
const DefaultDelay = 4 * time.Second

// Severity selects how a notice is rendered.
type Severity string

const (
	SeverityDefault     Severity = "default"
	SeverityDestructive Severity = "destructive"
)

// ID identifies a notice for the lifetime of the process. Ids start at
// 1 and increase monotonically; 0 means "not accepted".
type ID uint64

// Notice is one transient message. Callers fill Title, Description and
// Severity; the Center assigns ID and Expires on Push.
type Notice struct {
	ID          ID
	Title       string
	Description string
	Severity    Severity
	Expires     time.Time
}

// Center is the process-wide notice scheduler. Construct one with
// NewCenter and pass it explicitly to every component that raises
// notices. Safe for concurrent use: with a real clock, expiry runs on
// timer goroutines.
type Center struct {
	clock  clock.Clock
	delay  time.Duration
	logger *slog.Logger

	mutex    sync.Mutex
	lastID   ID
	active   []*entry
	closed   bool
	onChange func()
}

type entry struct {
	notice  Notice
	timer   *clock.Timer
	removed bool
}

// NewCenter creates a Center that expires notices delay after they
// are pushed. A non-positive delay selects DefaultDelay.
func NewCenter(timeSource clock.Clock, delay time.Duration, logger *slog.Logger) *Center {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Center{
		clock:  timeSource,
		delay:  delay,
		logger: logger,
	}
}

// OnChange registers a callback invoked after every change to the
// active set (push, expiry, dismissal). The callback runs without the
// center's lock held, possibly on a timer goroutine. Replaces any
// earlier callback.
func (center *Center) OnChange(callback func()) {
	center.mutex.Lock()
	defer center.mutex.Unlock()
	center.onChange = callback
}

// Delay returns the expiry delay applied to every notice.
func (center *Center) Delay() time.Duration {
	return center.delay
}

// Push appends a notice to the active set and schedules its removal.
// Any ID or Expires set by the caller is overwritten. An empty
// Severity becomes SeverityDefault. Returns the assigned id, or 0 if
// the center has been closed.
func (center *Center) Push(notice Notice) ID {
	center.mutex.Lock()
	if center.closed {
		center.mutex.Unlock()
		return 0
	}
	center.lastID++
	notice.ID = center.lastID
	notice.Expires = center.clock.Now().Add(center.delay)
	if notice.Severity == "" {
		notice.Severity = SeverityDefault
	}
	pending := &entry{notice: notice}
	center.active = append(center.active, pending)
	center.mutex.Unlock()

	center.logger.Debug("notice pushed",
		"id", notice.ID,
		"title", notice.Title,
		"severity", notice.Severity,
	)

	// Scheduled outside the lock: a fake clock may run the callback
	// synchronously for a zero delay.
	id := notice.ID
	timer := center.clock.AfterFunc(center.delay, func() { center.expire(id) })

	center.mutex.Lock()
	if pending.removed {
		center.mutex.Unlock()
		timer.Stop()
	} else {
		pending.timer = timer
		center.mutex.Unlock()
	}

	center.changed()
	return id
}

// List returns a copy of the active notices, oldest first.
func (center *Center) List() []Notice {
	center.mutex.Lock()
	defer center.mutex.Unlock()
	notices := make([]Notice, len(center.active))
	for index, active := range center.active {
		notices[index] = active.notice
	}
	return notices
}

// Len returns the number of active notices.
func (center *Center) Len() int {
	center.mutex.Lock()
	defer center.mutex.Unlock()
	return len(center.active)
}

// Dismiss removes a notice before it expires and cancels its timer.
// Returns false if the id is not active (already expired, dismissed,
// or never issued).
func (center *Center) Dismiss(id ID) bool {
	removed := center.remove(id)
	if removed == nil {
		return false
	}
	if removed.timer != nil {
		removed.timer.Stop()
	}
	center.logger.Debug("notice dismissed", "id", id)
	center.changed()
	return true
}

// Close cancels every outstanding timer and empties the active set.
// Later pushes are dropped. Safe to call more than once.
func (center *Center) Close() {
	center.mutex.Lock()
	if center.closed {
		center.mutex.Unlock()
		return
	}
	center.closed = true
	outstanding := center.active
	center.active = nil
	for _, active := range outstanding {
		active.removed = true
	}
	center.mutex.Unlock()

	for _, active := range outstanding {
		if active.timer != nil {
			active.timer.Stop()
		}
	}
}

// expire is the timer callback. A notice that was dismissed in the
// window between its timer firing and this call is already gone.
func (center *Center) expire(id ID) {
	if center.remove(id) == nil {
		return
	}
	center.logger.Debug("notice expired", "id", id)
	center.changed()
}

// remove takes the entry for id out of the active set under the lock.
// Returns nil if id is not active.
func (center *Center) remove(id ID) *entry {
	center.mutex.Lock()
	defer center.mutex.Unlock()
	for index, active := range center.active {
		if active.notice.ID != id {
			continue
		}
		active.removed = true
		center.active = append(center.active[:index:index], center.active[index+1:]...)
		return active
	}
	return nil
}

func (center *Center) changed() {
	center.mutex.Lock()
	callback := center.onChange
	closed := center.closed
	center.mutex.Unlock()
	if callback != nil && !closed {
		callback()
	}
}
