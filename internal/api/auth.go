package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/oauth2"
)

// The login page embeds the OAuth2 client credentials for the web app in an
// inline script; there is no public registration endpoint to fetch them from.
var clientConfigRe = regexp.MustCompile(`<script>window\.ripplingConfig = (\{.*?\})</script>`)

// Login performs the platform's password-grant OAuth2 flow: it scrapes the
// client id and secret from the login page, exchanges the user's credentials
// for an access token and returns a session carrying it. The session has no
// company or role yet; callers complete it from account info.
func Login(ctx context.Context, baseURL, username, password string) (*Session, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	root, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", baseURL, err)
	}

	clientID, clientSecret, err := fetchClientCredentials(ctx, root)
	if err != nil {
		return nil, err
	}

	tokenURL, err := root.Parse("o/token/")
	if err != nil {
		return nil, fmt.Errorf("building token URL: %w", err)
	}
	cfg := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  tokenURL.String(),
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}

	tok, err := cfg.PasswordCredentialsToken(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}
	return NewSession(baseURL, tok.AccessToken)
}

// fetchClientCredentials loads the login page of the host serving the API
// and extracts CLIENT_ID and CLIENT_SECRET from the embedded config JSON.
func fetchClientCredentials(ctx context.Context, apiRoot *url.URL) (id, secret string, err error) {
	loginURL := &url.URL{Scheme: apiRoot.Scheme, Host: apiRoot.Host, Path: "/login"}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loginURL.String(), nil)
	if err != nil {
		return "", "", fmt.Errorf("creating request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("fetching login page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", "", &APIError{Status: resp.StatusCode}
	}
	html, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", fmt.Errorf("reading login page: %w", err)
	}

	m := clientConfigRe.FindSubmatch(html)
	if m == nil {
		return "", "", ErrUnexpectedResponse
	}
	var data map[string]string
	if err := json.Unmarshal(m[1], &data); err != nil {
		return "", "", fmt.Errorf("parsing login page config: %w", err)
	}
	id, secret = data["CLIENT_ID"], data["CLIENT_SECRET"]
	if id == "" || secret == "" {
		return "", "", ErrUnexpectedResponse
	}
	return id, secret, nil
}
