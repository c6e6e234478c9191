// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"context"

	"github.com/bureau-foundation/triage-console/lib/notice"
	"github.com/bureau-foundation/triage-console/lib/schema/triage"
)

// Notifier receives the notices a controller raises. *notice.Center
// implements it.
type Notifier interface {
	Push(notice.Notice) notice.ID
}

// TicketSubmitter sends a new ticket to the backend.
// *triageclient.Client implements it.
type TicketSubmitter interface {
	SubmitTicket(ctx context.Context, submission triage.Submission) (triage.Ticket, error)
}

// RosterLister fetches the filtered ticket roster.
// *triageclient.Client implements it.
type RosterLister interface {
	ListTickets(ctx context.Context, filter triage.RosterFilter) ([]triage.RosterEntry, error)
}

// LogLister fetches the processing log of one ticket.
// *triageclient.Client implements it.
type LogLister interface {
	ListLogs(ctx context.Context, ticketID int64) ([]triage.LogEntry, error)
}

// Gateway is the full backend surface the console uses.
type Gateway interface {
	TicketSubmitter
	RosterLister
	LogLister
}
