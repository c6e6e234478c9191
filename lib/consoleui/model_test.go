// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/triage-console/lib/clock"
	"github.com/bureau-foundation/triage-console/lib/notice"
	"github.com/bureau-foundation/triage-console/lib/schema/triage"
	"github.com/bureau-foundation/triage-console/lib/testutil"
	"github.com/bureau-foundation/triage-console/lib/triageclient"
)

type testHarness struct {
	model   Model
	backend *testutil.Backend
	clock   *clock.FakeClock
	notices *notice.Center
}

// newHarness starts a fake backend with two tickets (ids 1 and 2, the
// second auto-resolved with high urgency) and builds a model against
// it.
func newHarness(t *testing.T) *testHarness {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	backend := testutil.NewBackend(t)
	backend.AddTicket(triage.Ticket{
		Subject: "Refund not received",
		Status:  triage.StatusNeedsHumanReview,
		Urgency: triage.UrgencyMedium,
	})
	backend.AddTicket(triage.Ticket{
		Subject: "Password reset email",
		Status:  triage.StatusAutoResolved,
		Urgency: triage.UrgencyHigh,
	})

	fakeClock := clock.Fake(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	center := notice.NewCenter(fakeClock, notice.DefaultDelay, logger)
	t.Cleanup(center.Close)

	model := NewModel(context.Background(), Options{
		Gateway: triageclient.New(backend.URL(), logger),
		Notices: center,
		Logger:  logger,
		BaseURL: backend.URL(),
	})
	return &testHarness{model: model, backend: backend, clock: fakeClock, notices: center}
}

// send delivers msg and returns the command Update produced.
func (harness *testHarness) send(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := harness.model.Update(msg)
	harness.model = next.(Model)
	return cmd
}

// run executes cmd once and delivers its message. A batch runs each
// member once; commands produced in response are not followed.
func (harness *testHarness) run(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command, got nil")
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, member := range batch {
			if member != nil {
				harness.send(t, member())
			}
		}
		return
	}
	harness.send(t, msg)
}

func (harness *testHarness) typeText(t *testing.T, text string) {
	t.Helper()
	harness.send(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func (harness *testHarness) key(t *testing.T, keyType tea.KeyType) tea.Cmd {
	t.Helper()
	return harness.send(t, tea.KeyMsg{Type: keyType})
}

func (harness *testHarness) runes(t *testing.T, text string) tea.Cmd {
	t.Helper()
	return harness.send(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

// openTickets loads the roster via Init and switches to the Tickets
// tab.
func (harness *testHarness) openTickets(t *testing.T) {
	t.Helper()
	harness.run(t, harness.model.Init())
	harness.key(t, tea.KeyF2)
}

func TestInitLoadsRoster(t *testing.T) {
	harness := newHarness(t)
	harness.run(t, harness.model.Init())

	entries := harness.model.roster.Entries()
	if len(entries) != 2 {
		t.Fatalf("roster has %d entries, want 2", len(entries))
	}
	// Backend order (newest first) is kept.
	if entries[0].ID != 2 || entries[1].ID != 1 {
		t.Errorf("roster order = %d, %d; want 2, 1", entries[0].ID, entries[1].ID)
	}

	harness.key(t, tea.KeyF2)
	view := harness.model.View()
	for _, want := range []string{"Refund not received", "Password reset email", "Status: All"} {
		if !strings.Contains(view, want) {
			t.Errorf("tickets view missing %q", want)
		}
	}
}

func TestSubmitRejectsInvalidFormWithoutRequest(t *testing.T) {
	harness := newHarness(t)

	if cmd := harness.key(t, tea.KeyCtrlS); cmd != nil {
		t.Error("invalid form produced a command")
	}
	view := harness.model.View()
	for _, want := range []string{"Name is required.", "Email is required.", "Subject is required.", "Message cannot be empty."} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing problem %q", want)
		}
	}
	if requests := harness.backend.Requests(); len(requests) != 0 {
		t.Errorf("backend received %v, want no requests", requests)
	}
}

func TestSubmitShowsResultAndNotice(t *testing.T) {
	harness := newHarness(t)

	harness.typeText(t, "Jane Doe")
	harness.key(t, tea.KeyTab)
	harness.typeText(t, "jane@example.com")
	harness.key(t, tea.KeyTab)
	harness.typeText(t, "Invoice question")
	harness.key(t, tea.KeyTab)
	harness.typeText(t, "I was charged twice this month.")

	if got := harness.model.form.Submission(); got.Name != "Jane Doe" || got.Message != "I was charged twice this month." {
		t.Fatalf("form contents = %+v", got)
	}
	if !strings.Contains(harness.model.View(), "31/5000") {
		t.Error("message counter not shown")
	}

	cmd := harness.key(t, tea.KeyCtrlS)
	if cmd == nil {
		t.Fatal("valid form produced no command")
	}
	if !harness.model.submission.Busy() {
		t.Error("not busy while the submission is outstanding")
	}
	if !strings.Contains(harness.model.View(), "Analysis in progress") {
		t.Error("busy view does not show progress")
	}
	if second := harness.key(t, tea.KeyCtrlS); second != nil {
		t.Error("second submit while busy produced a command")
	}

	harness.run(t, cmd)
	if harness.model.submission.Busy() {
		t.Error("still busy after the result arrived")
	}
	view := harness.model.View()
	for _, want := range []string{"AI Routing & Guardrails", "Ticket #3", "Auto-Resolved", "Route: Auto-Resolve", "Ticket submitted"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	posts := 0
	for _, request := range harness.backend.Requests() {
		if strings.HasPrefix(request, "POST /tickets") {
			posts++
		}
	}
	if posts != 1 {
		t.Errorf("POST /tickets sent %d times, want 1", posts)
	}
}

func TestSubmitFailureNotice(t *testing.T) {
	harness := newHarness(t)
	harness.backend.Fail("POST /tickets", 429, `{"message":"rate limited"}`)

	harness.typeText(t, "Jane Doe")
	harness.key(t, tea.KeyTab)
	harness.typeText(t, "jane@example.com")
	harness.key(t, tea.KeyTab)
	harness.typeText(t, "Invoice question")
	harness.key(t, tea.KeyTab)
	harness.typeText(t, "I was charged twice this month.")
	harness.run(t, harness.key(t, tea.KeyCtrlS))

	active := harness.notices.List()
	if len(active) != 1 {
		t.Fatalf("notices = %+v, want one", active)
	}
	if active[0].Title != "Submission failed" || active[0].Description != "rate limited" || active[0].Severity != notice.SeverityDestructive {
		t.Errorf("notice = %+v", active[0])
	}
	if _, ok := harness.model.submission.Result(); ok {
		t.Error("a failed submission produced a result")
	}
}

func TestStatusFilterRefetches(t *testing.T) {
	harness := newHarness(t)
	harness.openTickets(t)

	cmd := harness.runes(t, "s")
	if !harness.model.roster.Loading() {
		t.Error("not loading after a filter change")
	}
	harness.run(t, cmd)

	requests := harness.backend.Requests()
	if last := requests[len(requests)-1]; last != "GET /tickets?status=Auto-Resolved" {
		t.Errorf("last request = %q, want the status filter only", last)
	}
	entries := harness.model.roster.Entries()
	if len(entries) != 1 || entries[0].Status != triage.StatusAutoResolved {
		t.Errorf("entries = %+v, want only the auto-resolved ticket", entries)
	}
	if !strings.Contains(harness.model.View(), "Status: Auto-Resolved") {
		t.Error("filter bar does not show the status filter")
	}

	// Urgency cycles independently; the status filter stays.
	harness.run(t, harness.runes(t, "u"))
	requests = harness.backend.Requests()
	if last := requests[len(requests)-1]; last != "GET /tickets?status=Auto-Resolved&urgency=low" {
		t.Errorf("last request = %q", last)
	}
	if len(harness.model.roster.Entries()) != 0 {
		t.Error("expected an empty roster for low urgency")
	}
	if !strings.Contains(harness.model.View(), "No tickets match the current filters.") {
		t.Error("empty roster message not shown")
	}
}

func TestSelectTicketShowsLogs(t *testing.T) {
	harness := newHarness(t)
	harness.backend.SetLogs(2, []triage.LogEntry{
		{ID: 10, RawInput: strings.Repeat("x", 300), AIOutput: `{"category":"account"}`, RoutingDecision: "Auto-Resolve"},
		{ID: 11, RawInput: "retry", AIOutput: "ERROR: model timeout", GuardrailFlags: "pii"},
	})
	harness.openTickets(t)

	cmd := harness.key(t, tea.KeyEnter)
	if !strings.Contains(harness.model.View(), "Loading logs") {
		t.Error("log panel does not show loading")
	}
	harness.run(t, cmd)

	view := harness.model.View()
	for _, want := range []string{"Showing 2 of 2 log entries for ticket #2", "Guardrails", "AI error", "[all]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	harness.runes(t, "v")
	if !strings.Contains(harness.model.View(), "Showing 1 of 2 log entries for ticket #2") {
		t.Error("flags view count not shown")
	}
	harness.runes(t, "v")
	harness.runes(t, "v")

	harness.key(t, tea.KeySpace)
	if !harness.model.logs.Expanded(10) {
		t.Fatal("space did not expand the entry under the cursor")
	}
	view = harness.model.View()
	if !strings.Contains(view, "Raw input") || !strings.Contains(view, "AI output") {
		t.Error("expanded entry does not show its details")
	}

	harness.runes(t, "J")
	harness.key(t, tea.KeySpace)
	if got := harness.model.logs.ExpandedIDs(); !slices.Equal(got, []int64{10, 11}) {
		t.Errorf("ExpandedIDs = %v, want [10 11]", got)
	}
}

func TestLateLogResultForPreviousSelectionIsDropped(t *testing.T) {
	harness := newHarness(t)
	harness.backend.SetLogs(1, []triage.LogEntry{{ID: 100, RawInput: "first ticket"}})
	harness.backend.SetLogs(2, []triage.LogEntry{{ID: 200, RawInput: "second ticket"}})
	harness.openTickets(t)

	selectSecond := harness.key(t, tea.KeyEnter)
	harness.runes(t, "j")
	selectFirst := harness.key(t, tea.KeyEnter)

	harness.run(t, selectFirst)
	harness.run(t, selectSecond)

	if id, _ := harness.model.logs.TicketID(); id != 1 {
		t.Errorf("selected ticket = %d, want 1", id)
	}
	entries := harness.model.logs.Entries()
	if len(entries) != 1 || entries[0].ID != 100 {
		t.Errorf("entries = %+v, want ticket 1's log", entries)
	}
}

func TestRosterFailureNoticeExpires(t *testing.T) {
	harness := newHarness(t)
	harness.backend.Fail("GET /tickets", 503, `{"code":"unavailable","message":"maintenance window"}`)
	harness.openTickets(t)

	view := harness.model.View()
	if !strings.Contains(view, "Unable to load tickets") || !strings.Contains(view, "maintenance window") {
		t.Fatal("failure notice not rendered")
	}

	harness.clock.Advance(notice.DefaultDelay - time.Millisecond)
	if harness.notices.Len() != 1 {
		t.Fatal("notice expired early")
	}
	harness.clock.Advance(time.Millisecond)
	harness.send(t, NoticesChangedMsg{})
	if strings.Contains(harness.model.View(), "Unable to load tickets") {
		t.Error("notice still rendered after expiry")
	}
}

func TestDismissNewestNotice(t *testing.T) {
	harness := newHarness(t)
	harness.notices.Push(notice.Notice{Title: "older"})
	harness.notices.Push(notice.Notice{Title: "newer"})

	harness.key(t, tea.KeyCtrlX)
	active := harness.notices.List()
	if len(active) != 1 || active[0].Title != "older" {
		t.Errorf("notices after dismiss = %+v, want only \"older\"", active)
	}
	if harness.clock.PendingCount() != 1 {
		t.Errorf("pending timers = %d, want the dismissed notice's timer cancelled", harness.clock.PendingCount())
	}
}

func TestLogsPanelToggle(t *testing.T) {
	harness := newHarness(t)
	harness.openTickets(t)

	harness.runes(t, "p")
	if !strings.Contains(harness.model.View(), "Logs hidden") {
		t.Error("panel not hidden")
	}
	harness.runes(t, "p")
	if !strings.Contains(harness.model.View(), "Select a ticket to inspect its processing logs.") {
		t.Error("panel not shown again")
	}
}

func TestQuitKeys(t *testing.T) {
	harness := newHarness(t)

	// On the Submit tab, q is text.
	harness.runes(t, "q")
	if harness.model.form.Submission().Name != "q" {
		t.Errorf("name = %q, want the typed q", harness.model.form.Submission().Name)
	}

	cmd := harness.key(t, tea.KeyCtrlC)
	if cmd == nil {
		t.Fatal("ctrl+c produced no command")
	}
	if _, quit := cmd().(tea.QuitMsg); !quit {
		t.Error("ctrl+c did not quit")
	}
}

func TestStatusBarRecordFades(t *testing.T) {
	harness := newHarness(t)

	fade := harness.send(t, logRecordMsg{Summary: "roster fetch failed", Level: slog.LevelWarn})
	if fade == nil {
		t.Fatal("log record scheduled no fade")
	}
	if !strings.Contains(harness.model.View(), "Warn: roster fetch failed") {
		t.Error("status bar does not show the record")
	}

	// A fade for an older record leaves a newer one in place.
	harness.send(t, logRecordMsg{Summary: "newer", Level: slog.LevelError})
	harness.send(t, logRecordFadeMsg{Sequence: 1})
	if !strings.Contains(harness.model.View(), "Error: newer") {
		t.Error("stale fade cleared the newer record")
	}
	harness.send(t, logRecordFadeMsg{Sequence: 2})
	if strings.Contains(harness.model.View(), "Error: newer") {
		t.Error("record not cleared by its fade")
	}
}

func TestNextOption(t *testing.T) {
	var seen []triage.Status
	current := triage.Status("")
	for range 3 {
		current = nextOption(current, triage.Statuses)
		seen = append(seen, current)
	}
	want := []triage.Status{triage.StatusAutoResolved, triage.StatusNeedsHumanReview, ""}
	if !slices.Equal(seen, want) {
		t.Errorf("cycle = %q, want %q", seen, want)
	}
}

func TestPadCell(t *testing.T) {
	if got := padCell("abc", 5); got != "abc  " {
		t.Errorf("padCell short = %q", got)
	}
	if got := padCell("abcdefgh", 5); got != "abcd…" {
		t.Errorf("padCell long = %q", got)
	}
}
