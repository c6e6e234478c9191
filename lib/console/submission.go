// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"context"
	"errors"
	"log/slog"

	"github.com/bureau-foundation/triage-console/lib/notice"
	"github.com/bureau-foundation/triage-console/lib/schema/triage"
	"github.com/bureau-foundation/triage-console/lib/triageclient"
)

// ErrSubmissionInProgress is returned by Submission.Submit while an
// earlier submission is still outstanding.
var ErrSubmissionInProgress = errors.New("a submission is already in progress")

// Notice texts raised by the submission controller.
const (
	titleSubmitted           = "Ticket submitted"
	descriptionSubmitted     = "The ticket was analyzed successfully."
	titleSubmissionFailed    = "Submission failed"
	fallbackSubmissionFailed = "Failed to submit ticket."
)

// Submission validates and submits new tickets. It is busy from a
// successful Submit until the matching Apply, and holds the most
// recently accepted ticket.
type Submission struct {
	gateway TicketSubmitter
	notices Notifier
	logger  *slog.Logger

	busy       bool
	generation uint64
	result     *triage.Ticket
	problems   []string
}

// NewSubmission creates a submission controller.
func NewSubmission(gateway TicketSubmitter, notices Notifier, logger *slog.Logger) *Submission {
	return &Submission{
		gateway: gateway,
		notices: notices,
		logger:  logger,
	}
}

// SubmitRequest is an issued submission, ready to Run.
type SubmitRequest struct {
	gateway    TicketSubmitter
	generation uint64
	submission triage.Submission
}

// SubmitResult is the outcome of a SubmitRequest, for Submission.Apply.
type SubmitResult struct {
	generation uint64
	Ticket     triage.Ticket
	Err        error
}

// Run sends the submission. Safe to call from any goroutine.
func (request *SubmitRequest) Run(ctx context.Context) SubmitResult {
	ticket, err := request.gateway.SubmitTicket(ctx, request.submission)
	return SubmitResult{generation: request.generation, Ticket: ticket, Err: err}
}

// Submit validates input and, when it is valid, enters the busy state
// and returns the request to run. Invalid input returns a
// *ValidationError (also kept in Problems) and nothing reaches the
// network. While busy, Submit returns ErrSubmissionInProgress.
func (submission *Submission) Submit(input triage.Submission) (*SubmitRequest, error) {
	if submission.busy {
		return nil, ErrSubmissionInProgress
	}
	if err := ValidateSubmission(input); err != nil {
		var validationError *ValidationError
		if errors.As(err, &validationError) {
			submission.problems = validationError.Problems
		}
		return nil, err
	}

	submission.problems = nil
	submission.busy = true
	submission.generation++
	return &SubmitRequest{
		gateway:    submission.gateway,
		generation: submission.generation,
		submission: input,
	}, nil
}

// Apply takes the result of a SubmitRequest. On success the accepted
// ticket replaces the current result and a "Ticket submitted" notice
// is pushed; on failure a destructive notice carries the backend's
// message and the previous result is kept. Busy is cleared either way.
// Returns false if result belongs to a superseded submission.
func (submission *Submission) Apply(result SubmitResult) bool {
	if result.generation != submission.generation {
		submission.logger.Debug("discarding stale submission result",
			"generation", result.generation,
			"current", submission.generation,
		)
		return false
	}
	defer func() { submission.busy = false }()

	if result.Err != nil {
		submission.logger.Warn("ticket submission failed", "error", result.Err)
		submission.notices.Push(notice.Notice{
			Title:       titleSubmissionFailed,
			Description: triageclient.Describe(result.Err, fallbackSubmissionFailed),
			Severity:    notice.SeverityDestructive,
		})
		return true
	}

	ticket := result.Ticket
	submission.result = &ticket
	submission.logger.Info("ticket submitted",
		"ticket_id", ticket.ID,
		"status", ticket.Status,
	)
	submission.notices.Push(notice.Notice{
		Title:       titleSubmitted,
		Description: descriptionSubmitted,
	})
	return true
}

// SubmitAndWait validates, sends and applies in one call. The returned
// error is the *ValidationError, ErrSubmissionInProgress, or the
// request failure (already reported as a notice).
func (submission *Submission) SubmitAndWait(ctx context.Context, input triage.Submission) (triage.Ticket, error) {
	request, err := submission.Submit(input)
	if err != nil {
		return triage.Ticket{}, err
	}
	result := request.Run(ctx)
	submission.Apply(result)
	if result.Err != nil {
		return triage.Ticket{}, result.Err
	}
	return result.Ticket, nil
}

// Busy reports whether a submission is outstanding.
func (submission *Submission) Busy() bool {
	return submission.busy
}

// Result returns the most recently accepted ticket.
func (submission *Submission) Result() (triage.Ticket, bool) {
	if submission.result == nil {
		return triage.Ticket{}, false
	}
	return *submission.result, true
}

// Problems returns the rules violated by the last rejected Submit. It
// is cleared by the next valid Submit.
func (submission *Submission) Problems() []string {
	return submission.problems
}
