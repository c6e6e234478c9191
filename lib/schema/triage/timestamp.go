// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package triage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Timestamp is a backend datetime. The backend serializes naive
// datetimes without a zone suffix; those are read as UTC.
type Timestamp struct {
	time.Time
}

// timestampLayouts are tried in order. RFC 3339 covers zoned values;
// the rest cover naive ISO 8601 with and without fractional seconds.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// ParseTimestamp parses a backend datetime string.
func ParseTimestamp(value string) (Timestamp, error) {
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return Timestamp{Time: parsed}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("unrecognized timestamp %q", value)
}

// UnmarshalJSON accepts a JSON string in any of timestampLayouts, or
// null for the zero Timestamp.
func (timestamp *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*timestamp = Timestamp{}
		return nil
	}
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if value == "" {
		*timestamp = Timestamp{}
		return nil
	}
	parsed, err := ParseTimestamp(value)
	if err != nil {
		return err
	}
	*timestamp = parsed
	return nil
}

// MarshalJSON writes RFC 3339, or null for the zero Timestamp.
func (timestamp Timestamp) MarshalJSON() ([]byte, error) {
	if timestamp.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(timestamp.Time.Format(time.RFC3339Nano))
}
