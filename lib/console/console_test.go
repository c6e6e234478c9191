// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/bureau-foundation/triage-console/lib/notice"
	"github.com/bureau-foundation/triage-console/lib/schema/triage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recordingNotifier keeps every pushed notice.
type recordingNotifier struct {
	mutex   sync.Mutex
	notices []notice.Notice
}

func (notifier *recordingNotifier) Push(pushed notice.Notice) notice.ID {
	notifier.mutex.Lock()
	defer notifier.mutex.Unlock()
	notifier.notices = append(notifier.notices, pushed)
	return notice.ID(len(notifier.notices))
}

func (notifier *recordingNotifier) all() []notice.Notice {
	notifier.mutex.Lock()
	defer notifier.mutex.Unlock()
	return append([]notice.Notice(nil), notifier.notices...)
}

// fakeGateway serves canned responses and counts calls. Each hook, when
// set, replaces the canned response.
type fakeGateway struct {
	mutex sync.Mutex

	submitCalls int
	submitHook  func(triage.Submission) (triage.Ticket, error)

	listCalls   []triage.RosterFilter
	listEntries []triage.RosterEntry
	listErr     error

	logCalls   []int64
	logEntries map[int64][]triage.LogEntry
	logErr     error
}

func (gateway *fakeGateway) SubmitTicket(ctx context.Context, submission triage.Submission) (triage.Ticket, error) {
	gateway.mutex.Lock()
	gateway.submitCalls++
	hook := gateway.submitHook
	gateway.mutex.Unlock()
	if hook != nil {
		return hook(submission)
	}
	return triage.Ticket{ID: 1, Subject: submission.Subject, Status: triage.StatusAutoResolved}, nil
}

func (gateway *fakeGateway) ListTickets(ctx context.Context, filter triage.RosterFilter) ([]triage.RosterEntry, error) {
	gateway.mutex.Lock()
	defer gateway.mutex.Unlock()
	gateway.listCalls = append(gateway.listCalls, filter)
	return gateway.listEntries, gateway.listErr
}

func (gateway *fakeGateway) ListLogs(ctx context.Context, ticketID int64) ([]triage.LogEntry, error) {
	gateway.mutex.Lock()
	defer gateway.mutex.Unlock()
	gateway.logCalls = append(gateway.logCalls, ticketID)
	return gateway.logEntries[ticketID], gateway.logErr
}

func entryIDs(entries []triage.LogEntry) []int64 {
	ids := make([]int64, len(entries))
	for index, entry := range entries {
		ids[index] = entry.ID
	}
	return ids
}
