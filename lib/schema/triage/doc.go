// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package triage defines the wire types exchanged with the
// ticket-triage backend: the submission payload, the accepted ticket
// record, the reduced roster entry used by list views, and the
// per-ticket processing log entry.
//
// Every type here is a read-only projection of backend state. The
// console never mutates a decoded value; controllers replace whole
// slices when new data arrives.
package triage
