// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/triage-console/lib/notice"
	"github.com/bureau-foundation/triage-console/lib/schema/triage"
)

// Theme defines the color palette of the console. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Urgency colors, indexed low, medium, high.
	UrgencyColors [3]lipgloss.Color

	// Status colors.
	StatusAutoResolved     lipgloss.Color
	StatusNeedsHumanReview lipgloss.Color

	// Badges on log entries.
	BadgeGuardrails lipgloss.Color
	BadgeAIError    lipgloss.Color

	// Notice borders by severity.
	NoticeDefault     lipgloss.Color
	NoticeDestructive lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	ActiveTab        lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
	FocusedField     lipgloss.Color
	ProblemText      lipgloss.Color
}

// UrgencyColor returns the color for an urgency. Unknown or empty
// urgencies return FaintText.
func (theme Theme) UrgencyColor(urgency triage.Urgency) lipgloss.Color {
	switch urgency {
	case triage.UrgencyLow:
		return theme.UrgencyColors[0]
	case triage.UrgencyMedium:
		return theme.UrgencyColors[1]
	case triage.UrgencyHigh:
		return theme.UrgencyColors[2]
	default:
		return theme.FaintText
	}
}

// StatusColor returns the color for a ticket status, FaintText for
// unknown values.
func (theme Theme) StatusColor(status triage.Status) lipgloss.Color {
	switch status {
	case triage.StatusAutoResolved:
		return theme.StatusAutoResolved
	case triage.StatusNeedsHumanReview:
		return theme.StatusNeedsHumanReview
	default:
		return theme.FaintText
	}
}

// NoticeColor returns the border color for a notice severity.
func (theme Theme) NoticeColor(severity notice.Severity) lipgloss.Color {
	if severity == notice.SeverityDestructive {
		return theme.NoticeDestructive
	}
	return theme.NoticeDefault
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	UrgencyColors: [3]lipgloss.Color{
		lipgloss.Color("114"), // low: green
		lipgloss.Color("220"), // medium: amber
		lipgloss.Color("196"), // high: red
	},

	StatusAutoResolved:     lipgloss.Color("114"), // green
	StatusNeedsHumanReview: lipgloss.Color("220"), // amber

	BadgeGuardrails: lipgloss.Color("141"), // light purple
	BadgeAIError:    lipgloss.Color("196"), // red

	NoticeDefault:     lipgloss.Color("75"),  // blue
	NoticeDestructive: lipgloss.Color("196"), // red

	HeaderForeground: lipgloss.Color("255"),
	ActiveTab:        lipgloss.Color("75"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),
	FocusedField:     lipgloss.Color("75"),
	ProblemText:      lipgloss.Color("203"),
}
