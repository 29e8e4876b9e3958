package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the platform's API root.
const DefaultBaseURL = "https://app.rippling.com/api/"

const requestTimeout = 5 * time.Second

// Session is an authenticated API session. It attaches the bearer token and,
// once known, the company and role headers to every request. A Session is
// read-only after creation and safe for concurrent use.
type Session struct {
	base       *url.URL
	token      string
	company    string
	role       string
	httpClient *http.Client
}

// NewSession creates a session for the given API root and access token.
// baseURL must end in a slash so relative resource paths resolve under it.
func NewSession(baseURL, token string) (*Session, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", baseURL, err)
	}
	return &Session{
		base:       base,
		token:      token,
		httpClient: &http.Client{Timeout: requestTimeout},
	}, nil
}

// WithCompanyAndRole returns a copy of the session that sends the Company
// and Role headers.
func (s *Session) WithCompanyAndRole(company, role string) *Session {
	copied := *s
	copied.company = company
	copied.role = role
	return &copied
}

// Token returns the session's bearer token, for persisting after login.
func (s *Session) Token() string {
	return s.token
}

// Role returns the role id the session acts as, or "" before login completes.
func (s *Session) Role() string {
	return s.role
}

// Company returns the company id, or "" before login completes.
func (s *Session) Company() string {
	return s.company
}

// Get issues a GET against path (relative to the API root) and decodes the
// JSON response into out.
func (s *Session) Get(ctx context.Context, path string, query url.Values, out any) error {
	return s.do(ctx, http.MethodGet, path, query, nil, out, http.StatusOK, http.StatusCreated)
}

// Post issues a POST with a JSON body and decodes the response into out.
func (s *Session) Post(ctx context.Context, path string, body, out any) error {
	return s.do(ctx, http.MethodPost, path, nil, body, out, http.StatusOK, http.StatusCreated)
}

func (s *Session) do(ctx context.Context, method, path string, query url.Values, body, out any, acceptStatus ...int) error {
	u, err := s.base.Parse(path)
	if err != nil {
		return fmt.Errorf("invalid resource path %q: %w", path, err)
	}
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.company != "" {
		req.Header.Set("Company", s.company)
	}
	if s.role != "" {
		req.Header.Set("Role", s.role)
	}

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api call")

	accepted := false
	for _, status := range acceptStatus {
		if resp.StatusCode == status {
			accepted = true
			break
		}
	}
	if !accepted {
		return errorFromResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
