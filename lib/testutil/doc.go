// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for triage-console
// packages.
//
// [Backend] is an in-memory ticket-triage backend behind an
// httptest.Server. It accepts submissions, filters the roster by
// status and urgency, serves per-ticket logs, records every request,
// and can be told to fail a route with a given status and body. Tests
// of the gateway's callers (the terminal UI, the CLI) run against it
// instead of hand-written handlers.
//
// [RequireReceive] encapsulates the timeout safety valve pattern
// (select with time.After fallback) so that individual tests do not
// need direct time.After calls. It is the only place in the test suite
// where real wall-clock timeouts are used.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
