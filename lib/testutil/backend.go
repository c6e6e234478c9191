// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/bureau-foundation/triage-console/lib/schema/triage"
)

// Backend is a fake ticket-triage backend. Construct with NewBackend;
// the server is closed when the test ends.
type Backend struct {
	server *httptest.Server

	mutex    sync.Mutex
	tickets  []triage.Ticket
	logs     map[int64][]triage.LogEntry
	lastID   int64
	requests []string
	failures map[string]failure
}

type failure struct {
	status int
	body   string
}

// NewBackend starts a Backend with no tickets.
func NewBackend(t testing.TB) *Backend {
	t.Helper()
	backend := &Backend{
		logs:     make(map[int64][]triage.LogEntry),
		failures: make(map[string]failure),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /tickets", backend.handleSubmit)
	mux.HandleFunc("GET /tickets", backend.handleList)
	mux.HandleFunc("GET /tickets/{id}/logs", backend.handleLogs)

	backend.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.Method + " " + r.URL.Path
		backend.mutex.Lock()
		backend.requests = append(backend.requests, r.Method+" "+r.URL.RequestURI())
		injected, fail := backend.failures[route]
		backend.mutex.Unlock()
		if fail {
			w.WriteHeader(injected.status)
			w.Write([]byte(injected.body))
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(backend.server.Close)
	return backend
}

// URL returns the base URL of the backend.
func (backend *Backend) URL() string {
	return backend.server.URL
}

// AddTicket stores ticket as if it had been submitted. A zero ID is
// assigned the next free id. Returns the stored ticket.
func (backend *Backend) AddTicket(ticket triage.Ticket) triage.Ticket {
	backend.mutex.Lock()
	defer backend.mutex.Unlock()
	if ticket.ID == 0 {
		backend.lastID++
		ticket.ID = backend.lastID
	} else if ticket.ID > backend.lastID {
		backend.lastID = ticket.ID
	}
	if ticket.Status == "" {
		ticket.Status = triage.StatusNeedsHumanReview
	}
	if ticket.CreatedAt.IsZero() {
		ticket.CreatedAt = triage.Timestamp{Time: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(ticket.ID) * time.Minute)}
	}
	backend.tickets = append(backend.tickets, ticket)
	return ticket
}

// SetLogs replaces the processing log of ticketID.
func (backend *Backend) SetLogs(ticketID int64, entries []triage.LogEntry) {
	backend.mutex.Lock()
	defer backend.mutex.Unlock()
	backend.logs[ticketID] = entries
}

// Fail makes every request to route ("POST /tickets", "GET /tickets",
// "GET /tickets/3/logs") answer with status and body until Recover.
func (backend *Backend) Fail(route string, status int, body string) {
	backend.mutex.Lock()
	defer backend.mutex.Unlock()
	backend.failures[route] = failure{status: status, body: body}
}

// Recover undoes Fail for route.
func (backend *Backend) Recover(route string) {
	backend.mutex.Lock()
	defer backend.mutex.Unlock()
	delete(backend.failures, route)
}

// Requests returns every request received, as "METHOD /path?query".
func (backend *Backend) Requests() []string {
	backend.mutex.Lock()
	defer backend.mutex.Unlock()
	return slices.Clone(backend.requests)
}

func (backend *Backend) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var submission triage.Submission
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"code": "bad_request", "message": "Malformed request body."})
		return
	}
	ticket := backend.AddTicket(triage.Ticket{
		Name:            submission.Name,
		Email:           submission.Email,
		Subject:         submission.Subject,
		Message:         submission.Message,
		Category:        "general",
		Urgency:         triage.UrgencyMedium,
		Status:          triage.StatusAutoResolved,
		GuardrailFlags:  []string{},
		RoutingDecision: "Auto-Resolve",
	})
	writeJSON(w, http.StatusCreated, ticket)
}

func (backend *Backend) handleList(w http.ResponseWriter, r *http.Request) {
	status := triage.Status(r.URL.Query().Get("status"))
	urgency := triage.Urgency(r.URL.Query().Get("urgency"))

	backend.mutex.Lock()
	items := make([]triage.RosterEntry, 0, len(backend.tickets))
	// Newest first, as the real backend orders by creation time.
	for index := len(backend.tickets) - 1; index >= 0; index-- {
		ticket := backend.tickets[index]
		if status != "" && ticket.Status != status {
			continue
		}
		if urgency != "" && ticket.Urgency != urgency {
			continue
		}
		items = append(items, triage.RosterEntry{
			ID:              ticket.ID,
			Name:            ticket.Name,
			Email:           ticket.Email,
			Subject:         ticket.Subject,
			Category:        ticket.Category,
			Urgency:         ticket.Urgency,
			PriorityScore:   ticket.PriorityScore,
			ConfidenceScore: ticket.ConfidenceScore,
			Status:          ticket.Status,
			CreatedAt:       ticket.CreatedAt,
		})
	}
	backend.mutex.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (backend *Backend) handleLogs(w http.ResponseWriter, r *http.Request) {
	ticketID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"code": "not_found", "message": "Ticket not found."})
		return
	}
	backend.mutex.Lock()
	entries := backend.logs[ticketID]
	backend.mutex.Unlock()
	if entries == nil {
		entries = []triage.LogEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(value)
}
