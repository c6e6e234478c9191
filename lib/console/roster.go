// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"context"
	"log/slog"

	"github.com/bureau-foundation/triage-console/lib/notice"
	"github.com/bureau-foundation/triage-console/lib/schema/triage"
	"github.com/bureau-foundation/triage-console/lib/triageclient"
)

const (
	titleRosterFailed    = "Unable to load tickets"
	fallbackRosterFailed = "Failed to load tickets."
)

// Roster tracks the ticket list for the current status and urgency
// filter. Every filter change issues exactly one fetch, and only the
// most recently issued fetch may update the visible entries.
type Roster struct {
	gateway RosterLister
	notices Notifier
	logger  *slog.Logger

	filter     triage.RosterFilter
	entries    []triage.RosterEntry
	loading    bool
	loaded     bool
	generation uint64
}

// NewRoster creates a roster controller with no filter and no entries.
// Call Refresh for the initial fetch.
func NewRoster(gateway RosterLister, notices Notifier, logger *slog.Logger) *Roster {
	return &Roster{
		gateway: gateway,
		notices: notices,
		logger:  logger,
	}
}

// RosterRequest is an issued roster fetch, ready to Run.
type RosterRequest struct {
	gateway    RosterLister
	generation uint64
	filter     triage.RosterFilter
}

// RosterResult is the outcome of a RosterRequest, for Roster.Apply.
type RosterResult struct {
	generation uint64
	Filter     triage.RosterFilter
	Entries    []triage.RosterEntry
	Err        error
}

// Run fetches the roster. Safe to call from any goroutine.
func (request *RosterRequest) Run(ctx context.Context) RosterResult {
	entries, err := request.gateway.ListTickets(ctx, request.filter)
	return RosterResult{
		generation: request.generation,
		Filter:     request.filter,
		Entries:    entries,
		Err:        err,
	}
}

// SetStatus changes the status filter. Returns the fetch to run, or
// nil when status equals the current filter.
func (roster *Roster) SetStatus(status triage.Status) *RosterRequest {
	if status == roster.filter.Status {
		return nil
	}
	roster.filter.Status = status
	return roster.issue()
}

// SetUrgency changes the urgency filter. Returns the fetch to run, or
// nil when urgency equals the current filter.
func (roster *Roster) SetUrgency(urgency triage.Urgency) *RosterRequest {
	if urgency == roster.filter.Urgency {
		return nil
	}
	roster.filter.Urgency = urgency
	return roster.issue()
}

// SetFilter replaces both filter fields at once. A change to either
// field still issues a single fetch; no change returns nil.
func (roster *Roster) SetFilter(filter triage.RosterFilter) *RosterRequest {
	if filter == roster.filter {
		return nil
	}
	roster.filter = filter
	return roster.issue()
}

// Refresh issues a fetch for the current filter, superseding any
// fetch still outstanding.
func (roster *Roster) Refresh() *RosterRequest {
	return roster.issue()
}

func (roster *Roster) issue() *RosterRequest {
	roster.generation++
	roster.loading = true
	roster.logger.Debug("roster fetch issued",
		"generation", roster.generation,
		"status", roster.filter.Status,
		"urgency", roster.filter.Urgency,
	)
	return &RosterRequest{
		gateway:    roster.gateway,
		generation: roster.generation,
		filter:     roster.filter,
	}
}

// Apply takes the result of a RosterRequest. Results from superseded
// fetches are discarded and false is returned. A failure pushes a
// destructive notice and leaves the previous entries in place.
func (roster *Roster) Apply(result RosterResult) bool {
	if result.generation != roster.generation {
		roster.logger.Debug("discarding stale roster result",
			"generation", result.generation,
			"current", roster.generation,
		)
		return false
	}
	roster.loading = false

	if result.Err != nil {
		roster.logger.Warn("roster fetch failed", "error", result.Err)
		roster.notices.Push(notice.Notice{
			Title:       titleRosterFailed,
			Description: triageclient.Describe(result.Err, fallbackRosterFailed),
			Severity:    notice.SeverityDestructive,
		})
		return true
	}

	roster.entries = result.Entries
	if roster.entries == nil {
		roster.entries = []triage.RosterEntry{}
	}
	roster.loaded = true
	return true
}

// RefreshAndWait fetches the roster for the current filter and applies
// it. The returned error is the request failure, already reported as a
// notice.
func (roster *Roster) RefreshAndWait(ctx context.Context) error {
	result := roster.Refresh().Run(ctx)
	roster.Apply(result)
	return result.Err
}

// Filter returns the current filter.
func (roster *Roster) Filter() triage.RosterFilter {
	return roster.filter
}

// Entries returns the roster in backend order. The slice is shared;
// callers must not modify it.
func (roster *Roster) Entries() []triage.RosterEntry {
	return roster.entries
}

// Loading reports whether a fetch for the current filter is
// outstanding.
func (roster *Roster) Loading() bool {
	return roster.loading
}

// Loaded reports whether any fetch has succeeded yet. An empty roster
// that has loaded is distinct from one never fetched.
func (roster *Roster) Loaded() bool {
	return roster.loaded
}
