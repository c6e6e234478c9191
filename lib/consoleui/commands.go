// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/triage-console/lib/console"
)

// NoticesChangedMsg tells the model that the notice set changed
// outside Update (a timer expired a notice). The model re-renders.
type NoticesChangedMsg struct{}

// NotifyProgram returns a notice.Center change callback that posts
// NoticesChangedMsg into program. The send runs on its own goroutine
// because pushes happen inside Update, where a blocking Send would
// deadlock the event loop.
func NotifyProgram(program *tea.Program) func() {
	return func() {
		go program.Send(NoticesChangedMsg{})
	}
}

// submitResultMsg carries a finished submission back to Update.
type submitResultMsg struct {
	result console.SubmitResult
}

// rosterResultMsg carries a finished roster fetch back to Update.
type rosterResultMsg struct {
	result console.RosterResult
}

// logResultMsg carries a finished log fetch back to Update.
type logResultMsg struct {
	result console.LogResult
}

// runSubmit returns a command that runs request. Nil request, nil
// command.
func runSubmit(ctx context.Context, request *console.SubmitRequest) tea.Cmd {
	if request == nil {
		return nil
	}
	return func() tea.Msg {
		return submitResultMsg{result: request.Run(ctx)}
	}
}

// runRoster returns a command that runs request. Nil request, nil
// command.
func runRoster(ctx context.Context, request *console.RosterRequest) tea.Cmd {
	if request == nil {
		return nil
	}
	return func() tea.Msg {
		return rosterResultMsg{result: request.Run(ctx)}
	}
}

// runLogs returns a command that runs request. Nil request, nil
// command.
func runLogs(ctx context.Context, request *console.LogRequest) tea.Cmd {
	if request == nil {
		return nil
	}
	return func() tea.Msg {
		return logResultMsg{result: request.Run(ctx)}
	}
}
