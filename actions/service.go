// Package actions implements the gateway's mutating operations: login,
// signup and sighting submission. Each validates locally before any
// network call and reports failures as *errors.ActionError.
package actions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jrsteele09/snap-species-web/backend"
	apperrors "github.com/jrsteele09/snap-species-web/internal/errors"
	"github.com/rs/zerolog"
)

const (
	msgUnreachable        = "Could not reach the server. Try again later."
	msgInvalidCredentials = "Invalid credentials."
	msgSignupFailed       = "Could not create account."
)

// Backend is the write side of the upstream API.
type Backend interface {
	Login(ctx context.Context, req backend.LoginRequest) (*backend.TokenResponse, error)
	Signup(ctx context.Context, req backend.SignupRequest) (*backend.TokenResponse, error)
	CreateSighting(ctx context.Context, token string, req backend.SightingRequest) (json.RawMessage, error)
}

type Service struct {
	backend  Backend
	validate *validator.Validate
}

func NewService(b Backend) *Service {
	return &Service{backend: b, validate: newValidator()}
}

// Login exchanges credentials for a session token.
func (s *Service) Login(ctx context.Context, form LoginForm) (string, error) {
	if err := validateForm(s.validate, form); err != nil {
		return "", err
	}
	resp, err := s.backend.Login(ctx, backend.LoginRequest{Email: form.Email, Password: form.Password})
	if err != nil {
		zerolog.Ctx(ctx).Info().Err(err).Msg("login failed")
		return "", upstreamFailure(err, http.StatusUnauthorized, msgInvalidCredentials)
	}
	return accessToken(resp)
}

// Signup creates an account and returns its session token.
func (s *Service) Signup(ctx context.Context, form SignupForm) (string, error) {
	if err := validateForm(s.validate, form); err != nil {
		return "", err
	}
	resp, err := s.backend.Signup(ctx, backend.SignupRequest{
		Username: form.Username,
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		zerolog.Ctx(ctx).Info().Err(err).Msg("signup failed")
		return "", upstreamFailure(err, 0, msgSignupFailed)
	}
	return accessToken(resp)
}

// SubmitSighting records a sighting for the owner of token and returns the
// backend's response body. Backend error bodies are carried in the
// ActionError's Body unchanged.
func (s *Service) SubmitSighting(ctx context.Context, token string, body []byte) (json.RawMessage, error) {
	if token == "" {
		return nil, apperrors.Unauthenticated(msgNotAuthenticated)
	}
	req, err := parseSighting(body)
	if err != nil {
		return nil, err
	}
	created, err := s.backend.CreateSighting(ctx, token, req)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("species", req.Sci).Msg("sighting submission failed")
		actionErr := upstreamFailure(err, 0, "Could not save sighting.")
		if apperrors.Is(actionErr, apperrors.ErrUpstreamRejected) && !json.Valid(actionErr.Body) {
			actionErr.Body = []byte("{}")
		}
		return nil, actionErr
	}
	return created, nil
}

// upstreamFailure maps a backend error to an ActionError. A zero
// rejectedStatus keeps the backend's own status.
func upstreamFailure(err error, rejectedStatus int, fallback string) *apperrors.ActionError {
	if statusErr, ok := backend.AsStatusError(err); ok {
		status := rejectedStatus
		if status == 0 {
			status = statusErr.StatusCode
		}
		msg := statusErr.Detail
		if msg == "" {
			msg = fallback
		}
		rejected := apperrors.Rejected(status, msg, statusErr.Body)
		rejected.Err = apperrors.Join(apperrors.ErrUpstreamRejected, err)
		return rejected
	}
	if errors.Is(err, backend.ErrUnavailable) {
		return apperrors.Unavailable(msgUnreachable, err)
	}
	return apperrors.AsActionError(err)
}

func accessToken(resp *backend.TokenResponse) (string, error) {
	if resp == nil || resp.AccessToken == "" {
		return "", apperrors.AsActionError(errors.New("backend returned no access token"))
	}
	return resp.AccessToken, nil
}
