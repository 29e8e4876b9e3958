package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrUnexpectedResponse marks a remote payload whose shape violates an
// invariant the client depends on, such as an active-policy map that is
// missing the caller's own role.
var ErrUnexpectedResponse = errors.New("unexpected response received")

// APIError is a failed call against the platform: a non-success status,
// optionally with the machine-readable description the API puts in its
// error body.
type APIError struct {
	Status      int
	Description string
	Body        json.RawMessage
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return e.Description
	}
	return fmt.Sprintf("unexpected response status %d", e.Status)
}

// errorFromResponse converts a non-success HTTP response into an *APIError.
// The platform reports errors either as a JSON array of strings or as an
// object with a "detail" field; anything else keeps only the status.
func errorFromResponse(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	if !strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		return apiErr
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiErr
	}
	apiErr.Body = body

	var list []any
	if err := json.Unmarshal(body, &list); err == nil && len(list) > 0 {
		if s, ok := list[0].(string); ok {
			apiErr.Description = s
		}
		return apiErr
	}

	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err == nil {
		if s, ok := obj["detail"].(string); ok {
			apiErr.Description = s
		}
	}
	return apiErr
}
