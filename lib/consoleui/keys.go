// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the console. Bindings on the
// Submit tab avoid printable characters, which go to the form fields.
type KeyMap struct {
	// Tab switching.
	TabSubmit  key.Binding
	TabTickets key.Binding

	// Submit tab.
	NextField     key.Binding
	PreviousField key.Binding
	Submit        key.Binding

	// Tickets tab: roster.
	Up            key.Binding
	Down          key.Binding
	Select        key.Binding
	StatusFilter  key.Binding // Cycle the status filter.
	UrgencyFilter key.Binding // Cycle the urgency filter.
	Refresh       key.Binding

	// Tickets tab: log panel.
	LogUp      key.Binding
	LogDown    key.Binding
	ToggleLog  key.Binding // Expand or collapse the log entry under the cursor.
	LogView    key.Binding // Cycle all / flags / errors.
	LogsPanel  key.Binding // Show or hide the log panel.
	ReloadLogs key.Binding

	// Notices.
	DismissNotice key.Binding // Dismiss the newest notice.

	Quit     key.Binding
	QuitSoft key.Binding // Quit outside text entry.
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	TabSubmit: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("F1", "submit tab"),
	),
	TabTickets: key.NewBinding(
		key.WithKeys("f2"),
		key.WithHelp("F2", "tickets tab"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "next field"),
	),
	PreviousField: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-Tab", "previous field"),
	),
	Submit: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("C-s", "submit"),
	),
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "show logs"),
	),
	StatusFilter: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "status"),
	),
	UrgencyFilter: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "urgency"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	LogUp: key.NewBinding(
		key.WithKeys("K", "shift+up"),
		key.WithHelp("K", "log up"),
	),
	LogDown: key.NewBinding(
		key.WithKeys("J", "shift+down"),
		key.WithHelp("J", "log down"),
	),
	ToggleLog: key.NewBinding(
		key.WithKeys(" ", "space"),
		key.WithHelp("Space", "expand"),
	),
	LogView: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "log view"),
	),
	LogsPanel: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "logs panel"),
	),
	ReloadLogs: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "reload logs"),
	),
	DismissNotice: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("C-x", "dismiss"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "quit"),
	),
	QuitSoft: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
}
