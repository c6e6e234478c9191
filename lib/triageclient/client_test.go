// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package triageclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bureau-foundation/triage-console/lib/schema/triage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSubmitTicketSendsJSONAndDecodesRecord(t *testing.T) {
	var gotMethod, gotPath, gotContentType string
	var gotBody triage.Submission
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{
			"id": 12,
			"name": "Jane Doe",
			"email": "jane@example.com",
			"subject": "Login loop",
			"message": "The login page keeps redirecting.",
			"category": "technical",
			"urgency": "medium",
			"status": "Auto-Resolved",
			"guardrail_flags": [],
			"routing_decision": "Auto-Resolve",
			"is_duplicate": false,
			"created_at": "2026-02-01T09:00:00"
		}`))
	}))
	defer srv.Close()

	client := New(srv.URL+"/", discardLogger())
	submission := triage.Submission{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Subject: "Login loop",
		Message: "The login page keeps redirecting.",
	}
	ticket, err := client.SubmitTicket(context.Background(), submission)
	if err != nil {
		t.Fatalf("SubmitTicket: %v", err)
	}

	if gotMethod != http.MethodPost || gotPath != "/tickets" {
		t.Errorf("request = %s %s, want POST /tickets", gotMethod, gotPath)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotContentType)
	}
	if gotBody != submission {
		t.Errorf("request body = %+v, want %+v", gotBody, submission)
	}
	if ticket.ID != 12 || ticket.Status != triage.StatusAutoResolved || ticket.Urgency != triage.UrgencyMedium {
		t.Errorf("unexpected ticket: %+v", ticket)
	}
}

func TestErrorMessageFromBody(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantCode    string
	}{
		{"message field", http.StatusTooManyRequests, `{"message":"rate limited"}`, "rate limited", ""},
		{"structured", http.StatusBadRequest, `{"code":"validation_error","message":"Input failed security validation.","details":{}}`, "Input failed security validation.", "validation_error"},
		{"bare string", http.StatusBadGateway, `"upstream unavailable"`, "upstream unavailable", ""},
		{"no message", http.StatusInternalServerError, `{"code":"internal_error"}`, "Request failed", "internal_error"},
		{"empty message", http.StatusInternalServerError, `{"message":""}`, "Request failed", ""},
		{"not json", http.StatusServiceUnavailable, `<html>down</html>`, "Request failed", ""},
		{"empty body", http.StatusNotFound, ``, "Request failed", ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(test.status)
				w.Write([]byte(test.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL, discardLogger()).SubmitTicket(context.Background(), triage.Submission{})
			var requestError *RequestError
			if !errors.As(err, &requestError) {
				t.Fatalf("error = %T %v, want *RequestError", err, err)
			}
			if requestError.StatusCode != test.status {
				t.Errorf("StatusCode = %d, want %d", requestError.StatusCode, test.status)
			}
			if requestError.Message != test.wantMessage {
				t.Errorf("Message = %q, want %q", requestError.Message, test.wantMessage)
			}
			if requestError.Code != test.wantCode {
				t.Errorf("Code = %q, want %q", requestError.Code, test.wantCode)
			}
			if err.Error() != test.wantMessage {
				t.Errorf("Error() = %q, want %q", err.Error(), test.wantMessage)
			}
		})
	}
}

func TestListTicketsQueryOmitsUnsetFilters(t *testing.T) {
	tests := []struct {
		name   string
		filter triage.RosterFilter
		want   string
	}{
		{"no filter", triage.RosterFilter{}, ""},
		{"status only", triage.RosterFilter{Status: triage.StatusNeedsHumanReview}, "status=Needs+Human+Review"},
		{"urgency only", triage.RosterFilter{Urgency: triage.UrgencyHigh}, "urgency=high"},
		{"both", triage.RosterFilter{Status: triage.StatusAutoResolved, Urgency: triage.UrgencyLow}, "status=Auto-Resolved&urgency=low"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var gotQuery string
			var sawQueryMark bool
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotQuery = r.URL.RawQuery
				sawQueryMark = r.URL.ForceQuery
				w.Write([]byte(`{"items":[{"id":3,"subject":"a","status":"Auto-Resolved","created_at":"2026-01-01T00:00:00"}]}`))
			}))
			defer srv.Close()

			entries, err := New(srv.URL, discardLogger()).ListTickets(context.Background(), test.filter)
			if err != nil {
				t.Fatalf("ListTickets: %v", err)
			}
			if gotQuery != test.want {
				t.Errorf("query = %q, want %q", gotQuery, test.want)
			}
			if sawQueryMark {
				t.Error("request carried a dangling '?'")
			}
			if len(entries) != 1 || entries[0].ID != 3 {
				t.Errorf("entries = %+v, want one entry with id 3", entries)
			}
		})
	}
}

func TestListTicketsEmptyItemsIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()

	entries, err := New(srv.URL, discardLogger()).ListTickets(context.Background(), triage.RosterFilter{})
	if err != nil {
		t.Fatalf("ListTickets: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Fatalf("entries = %#v, want empty non-nil slice", entries)
	}
}

func TestListLogsSetsTicketID(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[
			{"id": 1, "timestamp": "2026-02-01T09:00:00", "raw_input": "name=a", "ai_output": "{}", "guardrail_flags": "pii", "routing_decision": "Human Review"},
			{"id": 2, "timestamp": "2026-02-01T09:01:00", "raw_input": "name=b", "ai_output": null, "guardrail_flags": null, "routing_decision": null}
		]`))
	}))
	defer srv.Close()

	entries, err := New(srv.URL, discardLogger()).ListLogs(context.Background(), 77)
	if err != nil {
		t.Fatalf("ListLogs: %v", err)
	}
	if gotPath != "/tickets/77/logs" {
		t.Errorf("path = %q, want /tickets/77/logs", gotPath)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	for _, entry := range entries {
		if entry.TicketID != 77 {
			t.Errorf("entry %d TicketID = %d, want 77", entry.ID, entry.TicketID)
		}
	}
	if entries[0].GuardrailFlags != "pii" || entries[1].GuardrailFlags != "" {
		t.Errorf("flags = %q, %q", entries[0].GuardrailFlags, entries[1].GuardrailFlags)
	}
}

func TestTransportFailureIsRequestError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	_, err := New(baseURL, discardLogger()).ListLogs(context.Background(), 1)
	var requestError *RequestError
	if !errors.As(err, &requestError) {
		t.Fatalf("error = %T %v, want *RequestError", err, err)
	}
	if requestError.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 for transport failure", requestError.StatusCode)
	}
	if requestError.Message != "Request failed" {
		t.Errorf("Message = %q, want fallback", requestError.Message)
	}
	if requestError.Err == nil {
		t.Error("Err is nil, want the transport error")
	}
}

func TestMalformedSuccessBodyIsRequestError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": "nope"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, discardLogger()).ListTickets(context.Background(), triage.RosterFilter{})
	var requestError *RequestError
	if !errors.As(err, &requestError) {
		t.Fatalf("error = %T %v, want *RequestError", err, err)
	}
	if requestError.StatusCode != http.StatusOK || requestError.Err == nil {
		t.Errorf("got %+v, want status 200 with decode cause", requestError)
	}
}

func TestTimeoutOption(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := New(srv.URL, discardLogger(), WithTimeout(50*time.Millisecond))
	_, err := client.ListTickets(context.Background(), triage.RosterFilter{})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want exactly one attempt", calls.Load())
	}
}

func TestDescribe(t *testing.T) {
	if got := Describe(&RequestError{Message: "rate limited"}, "fallback"); got != "rate limited" {
		t.Errorf("Describe(RequestError) = %q", got)
	}
	if got := Describe(errors.New("boom"), "fallback"); got != "fallback" {
		t.Errorf("Describe(plain error) = %q, want fallback", got)
	}
}
