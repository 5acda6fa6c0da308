package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxErrorBodyBytes caps how much of an error response is read for the
// message.
const maxErrorBodyBytes = 4096

// APIError is a non-2xx response from the backend. It propagates unchanged
// through the caching layer to the caller; failed fetches are never cached.
type APIError struct {
	Status    int
	Message   string
	RequestID string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d (request %s)", e.Status, e.RequestID)
	}
	return fmt.Sprintf("backend returned status %d: %s (request %s)", e.Status, e.Message, e.RequestID)
}

// newAPIError builds an APIError from a response, pulling the FastAPI-style
// {"detail": ...} message when present.
func newAPIError(resp *http.Response, requestID string) *APIError {
	apiErr := &APIError{Status: resp.StatusCode, RequestID: requestID}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var detail struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &detail) == nil && detail.Detail != "" {
		apiErr.Message = detail.Detail
	} else {
		apiErr.Message = string(body)
	}
	return apiErr
}
