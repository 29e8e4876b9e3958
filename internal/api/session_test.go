package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"punch.cli/internal/api"
)

// newTestSession starts a test server and returns a session pointed at it
// with company and role configured, like a logged-in client.
func newTestSession(t *testing.T, handler http.Handler) *api.Session {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	session, err := api.NewSession(server.URL+"/", "access-token")
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return session.WithCompanyAndRole("some-company-id", "some-role-id")
}

func TestSessionSendsAuthHeaders(t *testing.T) {
	var got http.Header
	session := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))

	var out map[string]any
	if err := session.Get(context.Background(), "auth_ext/get_account_info", nil, &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if auth := got.Get("Authorization"); auth != "Bearer access-token" {
		t.Errorf("Authorization = %q, want %q", auth, "Bearer access-token")
	}
	if company := got.Get("Company"); company != "some-company-id" {
		t.Errorf("Company = %q, want %q", company, "some-company-id")
	}
	if role := got.Get("Role"); role != "some-role-id" {
		t.Errorf("Role = %q, want %q", role, "some-role-id")
	}
}

func TestSessionParsesArrayError(t *testing.T) {
	session := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`["Oops!"]`))
	}))

	err := session.Get(context.Background(), "some/path", nil, nil)
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", apiErr.Status)
	}
	if apiErr.Description != "Oops!" {
		t.Errorf("Description = %q, want %q", apiErr.Description, "Oops!")
	}
	if apiErr.Error() != "Oops!" {
		t.Errorf("Error() = %q, want %q", apiErr.Error(), "Oops!")
	}
}

func TestSessionParsesDetailError(t *testing.T) {
	session := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Not found"}`))
	}))

	err := session.Get(context.Background(), "some/path", nil, nil)
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Status != http.StatusNotFound || apiErr.Description != "Not found" {
		t.Errorf("got %d %q, want 404 %q", apiErr.Status, apiErr.Description, "Not found")
	}
}

func TestSessionNonJSONErrorKeepsStatus(t *testing.T) {
	session := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))

	err := session.Get(context.Background(), "some/path", nil, nil)
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Status != http.StatusBadGateway || apiErr.Description != "" {
		t.Errorf("got %d %q, want 502 with empty description", apiErr.Status, apiErr.Description)
	}
	if apiErr.Error() != "unexpected response status 502" {
		t.Errorf("Error() = %q", apiErr.Error())
	}
}
