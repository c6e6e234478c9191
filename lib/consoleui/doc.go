// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package consoleui is the bubbletea terminal interface of the triage
// console. It has two tabs: Submit, a form backed by
// console.Submission with a result panel for the accepted ticket, and
// Tickets, the filtered roster from console.Roster with the selected
// ticket's processing log from console.LogInspector below it.
//
// Network calls run as tea.Cmd values: the model issues a request on
// the event loop, the command runs it, and the resulting message is
// applied back on the event loop, where stale results are dropped by
// the controllers.
//
// Transient notices live in a notice.Center shared with the
// controllers. The center's change callback must post NoticesChangedMsg
// into the program (see NotifyProgram) so that timer-driven expiry
// re-renders the toast stack. TUILogHandler routes warnings into the
// status bar.
package consoleui
