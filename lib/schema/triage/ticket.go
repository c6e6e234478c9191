// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package triage

// Status is the backend's disposition of a processed ticket.
type Status string

const (
	StatusAutoResolved     Status = "Auto-Resolved"
	StatusNeedsHumanReview Status = "Needs Human Review"
)

// Statuses lists the known statuses in the order the roster filter
// cycles through them. The empty status (no filter) is not included.
var Statuses = []Status{StatusAutoResolved, StatusNeedsHumanReview}

// Urgency is the backend's urgency classification.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// Urgencies lists the known urgencies, lowest first.
var Urgencies = []Urgency{UrgencyLow, UrgencyMedium, UrgencyHigh}

// Submission is the body of POST /tickets. It has no identity until
// the backend accepts it.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Ticket is an accepted ticket as returned by POST /tickets. Optional
// text fields decode to the empty string when the backend sends null;
// optional numbers are pointers so that "absent" and zero stay
// distinguishable.
type Ticket struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`

	Category        string   `json:"category,omitempty"`
	Urgency         Urgency  `json:"urgency,omitempty"`
	PriorityScore   *int     `json:"priority_score,omitempty"`
	ConfidenceScore *float64 `json:"confidence_score,omitempty"`

	DraftReply       string `json:"draft_reply,omitempty"`
	ReasoningSummary string `json:"reasoning_summary,omitempty"`

	Status          Status   `json:"status"`
	GuardrailFlags  []string `json:"guardrail_flags"`
	RoutingDecision string   `json:"routing_decision,omitempty"`

	IsDuplicate      bool   `json:"is_duplicate"`
	OriginalTicketID *int64 `json:"original_ticket_id,omitempty"`

	CreatedAt Timestamp `json:"created_at"`
}

// RosterEntry is the reduced projection of a ticket served by
// GET /tickets: no message body, no draft reply.
type RosterEntry struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`

	Category        string   `json:"category,omitempty"`
	Urgency         Urgency  `json:"urgency,omitempty"`
	PriorityScore   *int     `json:"priority_score,omitempty"`
	ConfidenceScore *float64 `json:"confidence_score,omitempty"`

	Status    Status    `json:"status"`
	CreatedAt Timestamp `json:"created_at"`
}

// RosterFilter narrows GET /tickets. A zero field means "any" and is
// omitted from the query string.
type RosterFilter struct {
	Status  Status
	Urgency Urgency
}
