package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
)

// Backend API paths
const (
	PathMe          = "/api/me"
	PathMyStats     = "/api/me/stats"
	PathMySightings = "/api/me/sightings"
	PathSightings   = "/api/sightings"
	PathLeaderboard = "/api/leaderboard"
	PathScan        = "/api/scan"
	PathLogin       = "/auth/login"
	PathSignup      = "/auth/signup"
)

// Client talks to the Snap Species backend API. It never retries and sets no
// timeout of its own; callers bound requests through their context.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the backend rooted at baseURL (e.g. "http://localhost:8000").
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// SetHTTPClient sets a custom HTTP client
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Session returns a view of the backend authenticated with token. The bearer
// transport is built once here and shared by every call made through the
// session. An empty token yields an anonymous session.
func (c *Client) Session(ctx context.Context, token string) *Session {
	s := &Session{client: c, httpClient: c.httpClient}
	if token != "" {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
		s.httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: token,
			TokenType:   "Bearer",
		}))
	}
	return s
}

// Me fetches the profile owning token.
func (c *Client) Me(ctx context.Context, token string) (*Profile, error) {
	return c.Session(ctx, token).Me(ctx)
}

func (c *Client) CreateSighting(ctx context.Context, token string, req SightingRequest) (json.RawMessage, error) {
	return c.Session(ctx, token).CreateSighting(ctx, req)
}

func (c *Client) Forward(ctx context.Context, token, method, path, contentType string, body io.Reader) (*http.Response, error) {
	return c.Session(ctx, token).Forward(ctx, method, path, contentType, body)
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	body, err := doJSON(ctx, c.httpClient, http.MethodPost, c.baseURL+PathLogin, req, "login")
	if err != nil {
		return nil, err
	}
	return decode[*TokenResponse](body, "login")
}

// Signup creates an account and returns its access token.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*TokenResponse, error) {
	body, err := doJSON(ctx, c.httpClient, http.MethodPost, c.baseURL+PathSignup, req, "signup")
	if err != nil {
		return nil, err
	}
	return decode[*TokenResponse](body, "signup")
}

// doJSON sends an optional JSON body and returns the raw response body of a
// 2xx answer. Non-2xx answers become *StatusError, transport failures wrap
// ErrUnavailable.
func doJSON(ctx context.Context, httpClient *http.Client, method, url string, payload any, op string) ([]byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to marshal request: %w", op, err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, unavailable(op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, unavailable(op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s: %w", op, newStatusError(resp.StatusCode, body))
	}
	return body, nil
}

func decode[T any](body []byte, op string) (T, error) {
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("%s: failed to decode response: %w", op, err)
	}
	return out, nil
}
