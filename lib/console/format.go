// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/bureau-foundation/triage-console/lib/schema/triage"
)

// PreviewLimit is the number of characters of raw input or AI output
// shown for an expanded log entry.
const PreviewLimit = 220

// Ellipsis marks truncated text.
const Ellipsis = "…"

// notAvailable is shown for absent or zero scores.
const notAvailable = "N/A"

// TruncateText returns text unchanged when it has at most limit
// characters, otherwise its first limit characters followed by
// Ellipsis.
func TruncateText(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	count := 0
	for index := range text {
		if count == limit {
			return text[:index] + Ellipsis
		}
		count++
	}
	return text
}

// FormatPriority renders a priority score, or "N/A" when absent or
// zero.
func FormatPriority(score *int) string {
	if score == nil || *score == 0 {
		return notAvailable
	}
	return strconv.Itoa(*score)
}

// FormatConfidence renders a confidence score in [0,1] as a whole
// percentage, or "N/A" when absent or zero.
func FormatConfidence(score *float64) string {
	if score == nil || *score == 0 {
		return notAvailable
	}
	return fmt.Sprintf("%d%%", int(math.Round(*score*100)))
}

// DuplicateNote describes a duplicate ticket, or returns "" for an
// original.
func DuplicateNote(ticket triage.Ticket) string {
	if !ticket.IsDuplicate {
		return ""
	}
	if ticket.OriginalTicketID == nil {
		return "Marked as potential duplicate"
	}
	return fmt.Sprintf("Marked as potential duplicate of #%d", *ticket.OriginalTicketID)
}

// LogBadges returns the badge labels for a log entry: "Guardrails" when
// it carries at least one parsed flag, "AI error" when its AI output
// mentions an error.
func LogBadges(entry triage.LogEntry) []string {
	var badges []string
	if len(entry.Flags()) > 0 {
		badges = append(badges, "Guardrails")
	}
	if entry.HasAIError() {
		badges = append(badges, "AI error")
	}
	return badges
}
