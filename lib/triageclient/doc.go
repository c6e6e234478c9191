// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package triageclient is the console's only point of contact with the
// ticket-triage backend. [Client] exposes one typed method per
// endpoint:
//
//	POST /tickets            -> SubmitTicket
//	GET  /tickets?status=... -> ListTickets
//	GET  /tickets/{id}/logs  -> ListLogs
//
// Every failure, whether the transport broke or the backend answered
// with a non-2xx status, comes back as a [*RequestError] whose Message
// is safe to show to a user: the backend's JSON "message" field when
// present, otherwise a generic fallback.
package triageclient
