// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package triage

import "strings"

// LogEntry is one processing record for a ticket, as served by
// GET /tickets/{id}/logs. The backend does not repeat the ticket id in
// each entry; the gateway fills TicketID from the request it issued.
type LogEntry struct {
	ID       int64 `json:"id"`
	TicketID int64 `json:"-"`

	Timestamp Timestamp `json:"timestamp"`
	RawInput  string    `json:"raw_input"`

	// AIOutput holds the model response and, when processing failed,
	// an appended "ERROR: ..." line.
	AIOutput string `json:"ai_output,omitempty"`

	// GuardrailFlags is the comma-joined flag list as stored by the
	// backend. Use Flags for the parsed form.
	GuardrailFlags  string `json:"guardrail_flags,omitempty"`
	RoutingDecision string `json:"routing_decision,omitempty"`
}

// Flags returns the parsed guardrail flags in stored order.
func (entry LogEntry) Flags() []string {
	return ParseGuardrailFlags(entry.GuardrailFlags)
}

// HasFlags reports whether the raw flag string is non-blank. This is
// the predicate behind the "flags" log view.
func (entry LogEntry) HasFlags() bool {
	return strings.TrimSpace(entry.GuardrailFlags) != ""
}

// HasAIError reports whether the AI output mentions an error,
// case-insensitively. This is the predicate behind the "errors" log
// view.
func (entry LogEntry) HasAIError() bool {
	return strings.Contains(strings.ToLower(entry.AIOutput), "error")
}

// ParseGuardrailFlags splits a comma-joined flag string, trims each
// segment, and drops empty segments. Order is preserved. A string with
// no non-empty segments yields nil.
func ParseGuardrailFlags(joined string) []string {
	var flags []string
	for _, segment := range strings.Split(joined, ",") {
		if segment = strings.TrimSpace(segment); segment != "" {
			flags = append(flags, segment)
		}
	}
	return flags
}
