// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/bureau-foundation/triage-console/lib/notice"
	"github.com/bureau-foundation/triage-console/lib/schema/triage"
	"github.com/bureau-foundation/triage-console/lib/triageclient"
)

const (
	titleLogsFailed    = "Unable to load logs"
	fallbackLogsFailed = "Failed to load logs."
)

// LogView selects which log entries are visible. The view is derived
// at read time and never changes the stored entries.
type LogView string

const (
	// LogViewAll shows every entry.
	LogViewAll LogView = "all"

	// LogViewFlags shows entries with a non-blank guardrail flag string.
	LogViewFlags LogView = "flags"

	// LogViewErrors shows entries whose AI output mentions "error",
	// case-insensitively.
	LogViewErrors LogView = "errors"
)

// LogViews lists the views in cycling order.
var LogViews = []LogView{LogViewAll, LogViewFlags, LogViewErrors}

// ParseLogView converts a view name. The empty string is LogViewAll.
func ParseLogView(name string) (LogView, error) {
	if name == "" {
		return LogViewAll, nil
	}
	view := LogView(name)
	if !slices.Contains(LogViews, view) {
		return "", fmt.Errorf("unknown log view %q (want all, flags, or errors)", name)
	}
	return view, nil
}

// Keeps reports whether entry is visible under view.
func (view LogView) Keeps(entry triage.LogEntry) bool {
	switch view {
	case LogViewFlags:
		return entry.HasFlags()
	case LogViewErrors:
		return entry.HasAIError()
	default:
		return true
	}
}

// LogPhase is the inspector's position in its selection lifecycle.
type LogPhase int

const (
	// LogIdle: no ticket selected.
	LogIdle LogPhase = iota

	// LogLoading: a ticket is selected and its log fetch is outstanding.
	LogLoading

	// LogLoaded: the selected ticket's logs are in (possibly empty,
	// also after a failed fetch).
	LogLoaded
)

func (phase LogPhase) String() string {
	switch phase {
	case LogIdle:
		return "idle"
	case LogLoading:
		return "loading"
	case LogLoaded:
		return "loaded"
	default:
		return fmt.Sprintf("LogPhase(%d)", int(phase))
	}
}

// LogInspector holds the processing log of the selected ticket, the
// active view, and the set of expanded entries. The stored entries
// always belong to the most recently selected ticket.
type LogInspector struct {
	gateway LogLister
	notices Notifier
	logger  *slog.Logger

	phase      LogPhase
	ticketID   int64
	entries    []triage.LogEntry
	view       LogView
	expanded   map[int64]struct{}
	generation uint64

	panelVisible bool
}

// NewLogInspector creates an idle inspector with the "all" view and a
// visible panel.
func NewLogInspector(gateway LogLister, notices Notifier, logger *slog.Logger) *LogInspector {
	return &LogInspector{
		gateway:      gateway,
		notices:      notices,
		logger:       logger,
		view:         LogViewAll,
		expanded:     make(map[int64]struct{}),
		panelVisible: true,
	}
}

// LogRequest is an issued log fetch, ready to Run.
type LogRequest struct {
	gateway    LogLister
	generation uint64
	ticketID   int64
}

// TicketID returns the ticket whose logs the request fetches.
func (request *LogRequest) TicketID() int64 {
	return request.ticketID
}

// LogResult is the outcome of a LogRequest, for LogInspector.Apply.
type LogResult struct {
	generation uint64
	TicketID   int64
	Entries    []triage.LogEntry
	Err        error
}

// Run fetches the logs. Safe to call from any goroutine.
func (request *LogRequest) Run(ctx context.Context) LogResult {
	entries, err := request.gateway.ListLogs(ctx, request.ticketID)
	return LogResult{
		generation: request.generation,
		TicketID:   request.ticketID,
		Entries:    entries,
		Err:        err,
	}
}

// Select makes ticketID the current selection. The previous entries
// and expanded set are cleared immediately and the inspector enters
// LogLoading; any fetch still outstanding for an earlier selection
// becomes stale. Selecting the ticket that is already selected returns
// nil and changes nothing; use Reload to fetch it again.
func (inspector *LogInspector) Select(ticketID int64) *LogRequest {
	if inspector.phase != LogIdle && inspector.ticketID == ticketID {
		return nil
	}
	inspector.ticketID = ticketID
	return inspector.issue()
}

// Reload fetches the current selection again, with the same clearing
// as Select. Returns nil when idle.
func (inspector *LogInspector) Reload() *LogRequest {
	if inspector.phase == LogIdle {
		return nil
	}
	return inspector.issue()
}

// Clear drops the selection and returns to LogIdle. Outstanding
// fetches become stale. The view and panel visibility are kept.
func (inspector *LogInspector) Clear() {
	inspector.generation++
	inspector.phase = LogIdle
	inspector.ticketID = 0
	inspector.entries = nil
	clear(inspector.expanded)
}

func (inspector *LogInspector) issue() *LogRequest {
	inspector.generation++
	inspector.phase = LogLoading
	inspector.entries = nil
	clear(inspector.expanded)
	inspector.logger.Debug("log fetch issued",
		"generation", inspector.generation,
		"ticket_id", inspector.ticketID,
	)
	return &LogRequest{
		gateway:    inspector.gateway,
		generation: inspector.generation,
		ticketID:   inspector.ticketID,
	}
}

// Apply takes the result of a LogRequest. Results for superseded
// selections are discarded and false is returned. A failure pushes a
// destructive notice and leaves the inspector LogLoaded with no
// entries.
func (inspector *LogInspector) Apply(result LogResult) bool {
	if result.generation != inspector.generation {
		inspector.logger.Debug("discarding stale log result",
			"ticket_id", result.TicketID,
			"generation", result.generation,
			"current", inspector.generation,
		)
		return false
	}
	inspector.phase = LogLoaded

	if result.Err != nil {
		inspector.entries = []triage.LogEntry{}
		inspector.logger.Warn("log fetch failed",
			"ticket_id", result.TicketID,
			"error", result.Err,
		)
		inspector.notices.Push(notice.Notice{
			Title:       titleLogsFailed,
			Description: triageclient.Describe(result.Err, fallbackLogsFailed),
			Severity:    notice.SeverityDestructive,
		})
		return true
	}

	inspector.entries = result.Entries
	if inspector.entries == nil {
		inspector.entries = []triage.LogEntry{}
	}
	return true
}

// SelectAndWait selects ticketID, fetches its logs and applies them.
// The returned error is the request failure, already reported as a
// notice.
func (inspector *LogInspector) SelectAndWait(ctx context.Context, ticketID int64) error {
	request := inspector.Select(ticketID)
	if request == nil {
		request = inspector.Reload()
	}
	result := request.Run(ctx)
	inspector.Apply(result)
	return result.Err
}

// Phase returns the lifecycle phase.
func (inspector *LogInspector) Phase() LogPhase {
	return inspector.phase
}

// Loading reports whether the selected ticket's fetch is outstanding.
func (inspector *LogInspector) Loading() bool {
	return inspector.phase == LogLoading
}

// TicketID returns the selected ticket, or false when idle.
func (inspector *LogInspector) TicketID() (int64, bool) {
	return inspector.ticketID, inspector.phase != LogIdle
}

// Entries returns every stored entry in backend order. The slice is
// shared; callers must not modify it.
func (inspector *LogInspector) Entries() []triage.LogEntry {
	return inspector.entries
}

// Visible returns the entries kept by the current view, in backend
// order. Computed on every call.
func (inspector *LogInspector) Visible() []triage.LogEntry {
	visible := make([]triage.LogEntry, 0, len(inspector.entries))
	for _, entry := range inspector.entries {
		if inspector.view.Keeps(entry) {
			visible = append(visible, entry)
		}
	}
	return visible
}

// Summary describes the visible count, for example "Showing 2 of 5 log
// entries for ticket #12". Empty when idle.
func (inspector *LogInspector) Summary() string {
	if inspector.phase == LogIdle {
		return ""
	}
	return fmt.Sprintf("Showing %d of %d log entries for ticket #%d",
		len(inspector.Visible()), len(inspector.entries), inspector.ticketID)
}

// View returns the active view.
func (inspector *LogInspector) View() LogView {
	return inspector.view
}

// SetView changes the active view. Stored entries and the expanded set
// are untouched.
func (inspector *LogInspector) SetView(view LogView) {
	inspector.view = view
}

// CycleView advances to the next view in LogViews order and returns it.
func (inspector *LogInspector) CycleView() LogView {
	index := slices.Index(LogViews, inspector.view)
	inspector.view = LogViews[(index+1)%len(LogViews)]
	return inspector.view
}

// Toggle flips the expansion of entry id and reports whether it is now
// expanded. Membership does not depend on the active view.
func (inspector *LogInspector) Toggle(id int64) bool {
	if _, ok := inspector.expanded[id]; ok {
		delete(inspector.expanded, id)
		return false
	}
	inspector.expanded[id] = struct{}{}
	return true
}

// Expanded reports whether entry id is expanded.
func (inspector *LogInspector) Expanded(id int64) bool {
	_, ok := inspector.expanded[id]
	return ok
}

// ExpandedIDs returns the expanded entry ids in ascending order.
func (inspector *LogInspector) ExpandedIDs() []int64 {
	ids := make([]int64, 0, len(inspector.expanded))
	for id := range inspector.expanded {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// PanelVisible reports whether the log panel is shown. Selection and
// fetches proceed while the panel is hidden.
func (inspector *LogInspector) PanelVisible() bool {
	return inspector.panelVisible
}

// SetPanelVisible shows or hides the log panel.
func (inspector *LogInspector) SetPanelVisible(visible bool) {
	inspector.panelVisible = visible
}

// TogglePanel flips panel visibility and returns the new state.
func (inspector *LogInspector) TogglePanel() bool {
	inspector.panelVisible = !inspector.panelVisible
	return inspector.panelVisible
}
