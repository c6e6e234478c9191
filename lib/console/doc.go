// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package console holds the interaction state of the triage console:
// ticket submission, the filtered ticket roster, and per-ticket log
// inspection. The controllers have no terminal dependency. Renderers
// (the bubbletea model in lib/consoleui, the plain CLI in
// cmd/triage-console) read their state and drive them with user
// actions.
//
// Every operation that reaches the backend is split into three steps
// so that it fits an event loop:
//
//   - Issue: a controller method (Submit, SetStatus, Select, ...) that
//     updates state on the caller's goroutine and returns a request
//     value capturing the controller's generation counter.
//   - Run: a method on the request value that performs the gateway
//     call. It may run on any goroutine and never touches controller
//     state.
//   - Apply: a controller method that takes the result back on the
//     caller's goroutine. Results whose generation is no longer current
//     are stale and discarded; the last issued request wins.
//
// Controllers are not safe for concurrent use. Issue and Apply must be
// called from one goroutine (the event loop); only Run may run
// elsewhere.
//
// Request failures never escape Apply: they become destructive notices
// pushed through the Notifier each controller was constructed with.
// The *AndWait helpers chain the three steps for synchronous callers
// and additionally return the failure so that a CLI can set its exit
// status.
package console
