// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/triage-console/lib/console"
	"github.com/bureau-foundation/triage-console/lib/schema/triage"
)

// commandFlags builds a subcommand flag set that reports parse errors
// as usage errors instead of printing them.
func commandFlags(name string) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	return flagSet
}

func runSubmitCommand(ctx context.Context, session *commandSession, args []string, stdout io.Writer) error {
	var input triage.Submission
	flagSet := commandFlags("submit")
	flagSet.StringVar(&input.Name, "name", "", "customer name")
	flagSet.StringVar(&input.Email, "email", "", "customer email")
	flagSet.StringVar(&input.Subject, "subject", "", "ticket subject")
	flagSet.StringVar(&input.Message, "message", "", "ticket body (10 to 5000 characters)")
	if err := flagSet.Parse(args); err != nil {
		return usageError("submit: %v", err)
	}
	if flagSet.NArg() > 0 {
		return usageError("submit: unexpected argument %q", flagSet.Arg(0))
	}

	submission := console.NewSubmission(session.client, session.notices, session.logger)
	ticket, err := submission.SubmitAndWait(ctx, input)
	if err != nil {
		var validationError *console.ValidationError
		if errors.As(err, &validationError) {
			fmt.Fprintln(session.notices.output, "The ticket was not submitted:")
			for _, problem := range validationError.Problems {
				fmt.Fprintf(session.notices.output, "  - %s\n", problem)
			}
		}
		// Request failures were already printed as a notice.
		return &exitError{code: 1}
	}

	printTicket(stdout, ticket)
	return nil
}

func printTicket(output io.Writer, ticket triage.Ticket) {
	fmt.Fprintf(output, "Ticket #%d  %s\n", ticket.ID, ticket.Status)
	if note := console.DuplicateNote(ticket); note != "" {
		fmt.Fprintln(output, note)
	}

	writer := tabwriter.NewWriter(output, 2, 0, 3, ' ', 0)
	fmt.Fprintf(writer, "Subject:\t%s\n", ticket.Subject)
	fmt.Fprintf(writer, "Category:\t%s\n", valueOrDash(ticket.Category))
	fmt.Fprintf(writer, "Urgency:\t%s\n", valueOrDash(string(ticket.Urgency)))
	fmt.Fprintf(writer, "Route:\t%s\n", valueOrDash(ticket.RoutingDecision))
	fmt.Fprintf(writer, "Priority:\t%s\n", console.FormatPriority(ticket.PriorityScore))
	fmt.Fprintf(writer, "Confidence:\t%s\n", console.FormatConfidence(ticket.ConfidenceScore))
	if len(ticket.GuardrailFlags) > 0 {
		fmt.Fprintf(writer, "Guardrail flags:\t%s\n", strings.Join(ticket.GuardrailFlags, ", "))
	}
	writer.Flush()

	if ticket.ReasoningSummary != "" {
		fmt.Fprintf(output, "\nReasoning summary:\n%s\n", indent(ticket.ReasoningSummary))
	}
	if ticket.DraftReply != "" {
		fmt.Fprintf(output, "\nDraft reply:\n%s\n", indent(ticket.DraftReply))
	}
}

func runTicketsCommand(ctx context.Context, session *commandSession, args []string, stdout io.Writer) error {
	var statusFlag, urgencyFlag string
	flagSet := commandFlags("tickets")
	flagSet.StringVar(&statusFlag, "status", "", `only tickets with this status ("Auto-Resolved" or "Needs Human Review")`)
	flagSet.StringVar(&urgencyFlag, "urgency", "", "only tickets with this urgency (low, medium, high)")
	if err := flagSet.Parse(args); err != nil {
		return usageError("tickets: %v", err)
	}
	if flagSet.NArg() > 0 {
		return usageError("tickets: unexpected argument %q", flagSet.Arg(0))
	}

	filter := triage.RosterFilter{
		Status:  triage.Status(statusFlag),
		Urgency: triage.Urgency(urgencyFlag),
	}
	if filter.Status != "" && !slices.Contains(triage.Statuses, filter.Status) {
		return usageError("tickets: unknown status %q", statusFlag)
	}
	if filter.Urgency != "" && !slices.Contains(triage.Urgencies, filter.Urgency) {
		return usageError("tickets: unknown urgency %q", urgencyFlag)
	}

	roster := console.NewRoster(session.client, session.notices, session.logger)
	roster.SetFilter(filter)
	if err := roster.RefreshAndWait(ctx); err != nil {
		return &exitError{code: 1}
	}

	entries := roster.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(stdout, "No tickets match the current filters.")
		return nil
	}

	writer := tabwriter.NewWriter(stdout, 2, 0, 3, ' ', 0)
	fmt.Fprintln(writer, "ID\tSTATUS\tURGENCY\tCATEGORY\tPRIORITY\tCONFIDENCE\tCREATED\tSUBJECT")
	for _, entry := range entries {
		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			entry.ID,
			entry.Status,
			valueOrDash(string(entry.Urgency)),
			valueOrDash(entry.Category),
			console.FormatPriority(entry.PriorityScore),
			console.FormatConfidence(entry.ConfidenceScore),
			formatCreated(entry.CreatedAt),
			entry.Subject,
		)
	}
	return writer.Flush()
}

func runLogsCommand(ctx context.Context, session *commandSession, args []string, stdout io.Writer) error {
	var viewFlag string
	flagSet := commandFlags("logs")
	flagSet.StringVar(&viewFlag, "view", string(console.LogViewAll), "which entries to print: all, flags, errors")
	if err := flagSet.Parse(args); err != nil {
		return usageError("logs: %v", err)
	}
	if flagSet.NArg() != 1 {
		return usageError("logs: expected exactly one ticket id")
	}
	ticketID, err := strconv.ParseInt(flagSet.Arg(0), 10, 64)
	if err != nil || ticketID <= 0 {
		return usageError("logs: invalid ticket id %q", flagSet.Arg(0))
	}
	view, err := console.ParseLogView(viewFlag)
	if err != nil {
		return usageError("logs: %v", err)
	}

	inspector := console.NewLogInspector(session.client, session.notices, session.logger)
	inspector.SetView(view)
	if err := inspector.SelectAndWait(ctx, ticketID); err != nil {
		return &exitError{code: 1}
	}

	fmt.Fprintln(stdout, inspector.Summary())
	for _, entry := range inspector.Visible() {
		printLogEntry(stdout, entry)
	}
	return nil
}

func printLogEntry(output io.Writer, entry triage.LogEntry) {
	header := fmt.Sprintf("\n#%d  %s", entry.ID, formatCreated(entry.Timestamp))
	for _, badge := range console.LogBadges(entry) {
		header += "  [" + badge + "]"
	}
	fmt.Fprintln(output, header)

	writer := tabwriter.NewWriter(output, 2, 0, 3, ' ', 0)
	if entry.RoutingDecision != "" {
		fmt.Fprintf(writer, "  Route:\t%s\n", entry.RoutingDecision)
	}
	if flags := entry.Flags(); len(flags) > 0 {
		fmt.Fprintf(writer, "  Guardrail flags:\t%s\n", strings.Join(flags, ", "))
	}
	fmt.Fprintf(writer, "  Raw input:\t%s\n", oneLine(console.TruncateText(entry.RawInput, console.PreviewLimit)))
	if entry.AIOutput != "" {
		fmt.Fprintf(writer, "  AI output:\t%s\n", oneLine(console.TruncateText(entry.AIOutput, console.PreviewLimit)))
	}
	writer.Flush()
}

func formatCreated(timestamp triage.Timestamp) string {
	if timestamp.IsZero() {
		return "-"
	}
	return timestamp.UTC().Format("2006-01-02 15:04")
}

func valueOrDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

func oneLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func indent(text string) string {
	lines := strings.Split(text, "\n")
	for index, line := range lines {
		lines[index] = "  " + line
	}
	return strings.Join(lines, "\n")
}
