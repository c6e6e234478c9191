// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"slices"
	"strings"
	"testing"

	"github.com/bureau-foundation/triage-console/lib/schema/triage"
)

func TestTruncateText(t *testing.T) {
	exact := strings.Repeat("a", PreviewLimit)
	if got := TruncateText(exact, PreviewLimit); got != exact {
		t.Errorf("text at the limit was changed")
	}

	over := strings.Repeat("b", PreviewLimit+1)
	want := strings.Repeat("b", PreviewLimit) + "…"
	if got := TruncateText(over, PreviewLimit); got != want {
		t.Errorf("TruncateText(221 chars) = %d bytes, want the first 220 plus an ellipsis", len(got))
	}

	// Multi-byte characters count once each.
	if got := TruncateText("ééééé", 3); got != "ééé…" {
		t.Errorf("TruncateText(runes) = %q, want %q", got, "ééé…")
	}
	if got := TruncateText("", 3); got != "" {
		t.Errorf("TruncateText(empty) = %q", got)
	}
}

func TestFormatScores(t *testing.T) {
	priority := 87
	zero := 0
	if got := FormatPriority(&priority); got != "87" {
		t.Errorf("FormatPriority(87) = %q", got)
	}
	if got := FormatPriority(&zero); got != "N/A" {
		t.Errorf("FormatPriority(0) = %q, want N/A", got)
	}
	if got := FormatPriority(nil); got != "N/A" {
		t.Errorf("FormatPriority(nil) = %q, want N/A", got)
	}

	confidence := 0.876
	if got := FormatConfidence(&confidence); got != "88%" {
		t.Errorf("FormatConfidence(0.876) = %q, want 88%%", got)
	}
	if got := FormatConfidence(nil); got != "N/A" {
		t.Errorf("FormatConfidence(nil) = %q, want N/A", got)
	}
}

func TestDuplicateNote(t *testing.T) {
	original := int64(9)
	if got := DuplicateNote(triage.Ticket{IsDuplicate: true, OriginalTicketID: &original}); got != "Marked as potential duplicate of #9" {
		t.Errorf("DuplicateNote = %q", got)
	}
	if got := DuplicateNote(triage.Ticket{}); got != "" {
		t.Errorf("DuplicateNote(original) = %q, want empty", got)
	}
}

func TestLogBadges(t *testing.T) {
	tests := []struct {
		entry triage.LogEntry
		want  []string
	}{
		{triage.LogEntry{}, nil},
		{triage.LogEntry{GuardrailFlags: "pii,toxicity"}, []string{"Guardrails"}},
		{triage.LogEntry{GuardrailFlags: " , "}, nil},
		{triage.LogEntry{AIOutput: "error: quota"}, []string{"AI error"}},
		{triage.LogEntry{GuardrailFlags: "pii", AIOutput: "ERROR"}, []string{"Guardrails", "AI error"}},
	}
	for _, test := range tests {
		if got := LogBadges(test.entry); !slices.Equal(got, test.want) {
			t.Errorf("LogBadges(%+v) = %q, want %q", test.entry, got, test.want)
		}
	}
}
