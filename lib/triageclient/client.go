// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package triageclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bureau-foundation/triage-console/lib/schema/triage"
)

// DefaultTimeout bounds a single request when no WithTimeout option
// is given.
const DefaultTimeout = 15 * time.Second

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 8 << 20

// Client calls the ticket-triage backend over HTTP with JSON bodies.
// Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying *http.Client. Any earlier
// WithTimeout is discarded.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(client *Client) {
		client.httpClient = httpClient
	}
}

// New creates a Client for the backend at baseURL (for example
// "http://localhost:8000"). A trailing slash on baseURL is ignored.
func New(baseURL string, logger *slog.Logger, options ...Option) *Client {
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     logger,
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// BaseURL returns the backend base URL without a trailing slash.
func (client *Client) BaseURL() string {
	return client.baseURL
}

// SubmitTicket sends a new ticket and returns the accepted record.
func (client *Client) SubmitTicket(ctx context.Context, submission triage.Submission) (triage.Ticket, error) {
	var ticket triage.Ticket
	if err := client.do(ctx, http.MethodPost, "/tickets", nil, submission, &ticket); err != nil {
		return triage.Ticket{}, err
	}
	return ticket, nil
}

// ListTickets returns the roster for filter, in backend order. Unset
// filter fields are left out of the query string entirely.
func (client *Client) ListTickets(ctx context.Context, filter triage.RosterFilter) ([]triage.RosterEntry, error) {
	var response struct {
		Items []triage.RosterEntry `json:"items"`
	}
	if err := client.do(ctx, http.MethodGet, "/tickets", RosterQuery(filter), nil, &response); err != nil {
		return nil, err
	}
	if response.Items == nil {
		return []triage.RosterEntry{}, nil
	}
	return response.Items, nil
}

// ListLogs returns the processing log for one ticket, in backend
// order. Each entry's TicketID is set to ticketID.
func (client *Client) ListLogs(ctx context.Context, ticketID int64) ([]triage.LogEntry, error) {
	path := "/tickets/" + strconv.FormatInt(ticketID, 10) + "/logs"
	var entries []triage.LogEntry
	if err := client.do(ctx, http.MethodGet, path, nil, nil, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []triage.LogEntry{}
	}
	for index := range entries {
		entries[index].TicketID = ticketID
	}
	return entries, nil
}

// RosterQuery builds the GET /tickets query for filter. Empty fields
// produce no key at all.
func RosterQuery(filter triage.RosterFilter) url.Values {
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}
	if filter.Urgency != "" {
		query.Set("urgency", string(filter.Urgency))
	}
	return query
}

// do performs one JSON round trip. requestBody, when non-nil, is
// encoded as the request body; a 2xx response body is decoded into
// responseBody. Every failure is returned as *RequestError.
func (client *Client) do(ctx context.Context, method, path string, query url.Values, requestBody, responseBody any) error {
	fullURL := client.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var body io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return &RequestError{Message: fallbackMessage, Err: fmt.Errorf("encoding request: %w", err)}
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return &RequestError{Message: fallbackMessage, Err: err}
	}
	request.Header.Set("Accept", "application/json")
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		client.logger.Warn("triage request failed",
			"method", method,
			"path", path,
			"error", err,
		)
		return &RequestError{Message: fallbackMessage, Err: err}
	}
	defer response.Body.Close()

	data, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return &RequestError{StatusCode: response.StatusCode, Message: fallbackMessage, Err: fmt.Errorf("reading response: %w", err)}
	}

	client.logger.Debug("triage request",
		"method", method,
		"path", path,
		"status", response.StatusCode,
		"bytes", len(data),
	)

	if response.StatusCode < 200 || response.StatusCode > 299 {
		requestError := errorFromBody(response.StatusCode, data)
		client.logger.Warn("triage request rejected",
			"method", method,
			"path", path,
			"status", response.StatusCode,
			"code", requestError.Code,
			"message", requestError.Message,
		)
		return requestError
	}

	if err := json.Unmarshal(data, responseBody); err != nil {
		return &RequestError{StatusCode: response.StatusCode, Message: fallbackMessage, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}
