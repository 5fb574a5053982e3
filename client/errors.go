package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// RequestError is a failed gateway call: a transport error mapped to
// status 0, or a non-2xx response with the backend's detail message when
// one was sent.
type RequestError struct {
	Status int
	Detail string
	cause  error
}

func (e *RequestError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Status > 0 {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	if e.cause != nil {
		return e.cause.Error()
	}
	return "backend request failed"
}

// Unwrap exposes the transport error, if any, for diagnostics.
func (e *RequestError) Unwrap() error {
	return e.cause
}

// maxErrorBody caps how much of an error response is read when looking
// for a detail message.
const maxErrorBody = int64(64 * 1024)

// errorFromResponse builds a RequestError from a non-2xx response,
// extracting the FastAPI-style {"detail": "..."} field when present.
// Non-string detail payloads (e.g. validation error lists) are ignored
// and fall back to the status-only error.
func errorFromResponse(resp *http.Response) *RequestError {
	reqErr := &RequestError{Status: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return reqErr
	}

	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		reqErr.Detail = payload.Detail
	}
	return reqErr
}
