package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Session is a view of the backend bound to one bearer token.
type Session struct {
	client     *Client
	httpClient *http.Client
}

func (s *Session) Me(ctx context.Context) (*Profile, error) {
	return getJSON[*Profile](ctx, s, PathMe, "me")
}

func (s *Session) MyStats(ctx context.Context) (*Stats, error) {
	return getJSON[*Stats](ctx, s, PathMyStats, "my stats")
}

func (s *Session) MySightings(ctx context.Context) ([]Sighting, error) {
	return getJSON[[]Sighting](ctx, s, PathMySightings, "my sightings")
}

// Sightings lists recent sightings from every reporter. No token is required.
func (s *Session) Sightings(ctx context.Context) ([]Sighting, error) {
	return getJSON[[]Sighting](ctx, s, PathSightings, "sightings")
}

// Leaderboard lists ranked reporters. No token is required.
func (s *Session) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	return getJSON[[]LeaderboardEntry](ctx, s, PathLeaderboard, "leaderboard")
}

// CreateSighting posts a sighting and returns the backend's response body unchanged.
func (s *Session) CreateSighting(ctx context.Context, req SightingRequest) (json.RawMessage, error) {
	body, err := doJSON(ctx, s.httpClient, http.MethodPost, s.client.baseURL+PathSightings, req, "create sighting")
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// Forward streams body to path and hands back the raw response, whatever its
// status. The caller must close the response body.
func (s *Session) Forward(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, s.client.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("forward %s: failed to create request: %w", path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, unavailable("forward "+path, err)
	}
	return resp, nil
}

func getJSON[T any](ctx context.Context, s *Session, path, op string) (T, error) {
	body, err := doJSON(ctx, s.httpClient, http.MethodGet, s.client.baseURL+path, nil, op)
	if err != nil {
		var zero T
		return zero, err
	}
	return decode[T](body, op)
}
