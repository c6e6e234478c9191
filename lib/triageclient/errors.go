// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package triageclient

import (
	"encoding/json"
	"errors"
)

// fallbackMessage is shown when the backend gives no usable message.
const fallbackMessage = "Request failed"

// RequestError reports a failed backend call. StatusCode is zero when
// no response arrived (dial failure, timeout, cancellation); Err then
// holds the transport error.
type RequestError struct {
	// StatusCode is the HTTP status, or zero for transport failures.
	StatusCode int

	// Code is the backend's machine-readable error code ("validation_error",
	// "rate_limited", ...) when the error body carried one.
	Code string

	// Message is user-facing: the backend's "message" field, a bare
	// JSON string body, or fallbackMessage.
	Message string

	// Err is the underlying cause for transport and decoding failures.
	Err error
}

func (requestError *RequestError) Error() string {
	if requestError.Err != nil {
		return requestError.Message + ": " + requestError.Err.Error()
	}
	return requestError.Message
}

func (requestError *RequestError) Unwrap() error {
	return requestError.Err
}

// Describe returns the user-facing message for err: the Message of a
// wrapped *RequestError, or fallback for anything else.
func Describe(err error, fallback string) string {
	var requestError *RequestError
	if errors.As(err, &requestError) && requestError.Message != "" {
		return requestError.Message
	}
	return fallback
}

// errorBody is the backend's structured error shape.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorFromBody builds a RequestError for a non-2xx response. The body
// may be a JSON object with "message" (and optionally "code"), a bare
// JSON string, or anything else.
func errorFromBody(statusCode int, data []byte) *RequestError {
	requestError := &RequestError{StatusCode: statusCode, Message: fallbackMessage}

	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		if text != "" {
			requestError.Message = text
		}
		return requestError
	}

	var structured errorBody
	if err := json.Unmarshal(data, &structured); err == nil {
		requestError.Code = structured.Code
		if structured.Message != "" {
			requestError.Message = structured.Message
		}
	}
	return requestError
}
