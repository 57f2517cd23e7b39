package actions

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/jrsteele09/snap-species-web/backend"
	apperrors "github.com/jrsteele09/snap-species-web/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	calls     int
	loginReq  backend.LoginRequest
	signupReq backend.SignupRequest
	sighting  backend.SightingRequest
	token     string
	err       error
	created   json.RawMessage
}

func (f *fakeBackend) Login(_ context.Context, req backend.LoginRequest) (*backend.TokenResponse, error) {
	f.calls++
	f.loginReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &backend.TokenResponse{AccessToken: "issued", TokenType: "bearer"}, nil
}

func (f *fakeBackend) Signup(_ context.Context, req backend.SignupRequest) (*backend.TokenResponse, error) {
	f.calls++
	f.signupReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &backend.TokenResponse{AccessToken: "issued", TokenType: "bearer"}, nil
}

func (f *fakeBackend) CreateSighting(_ context.Context, token string, req backend.SightingRequest) (json.RawMessage, error) {
	f.calls++
	f.token = token
	f.sighting = req
	if f.err != nil {
		return nil, f.err
	}
	return f.created, nil
}

func requireActionError(t *testing.T, err error, status int, message string) *apperrors.ActionError {
	t.Helper()
	require.Error(t, err)
	var actionErr *apperrors.ActionError
	require.ErrorAs(t, err, &actionErr)
	assert.Equal(t, status, actionErr.Status)
	assert.Equal(t, message, actionErr.Message)
	return actionErr
}

func rejected(status int, detail string, body string) error {
	return fmt.Errorf("op: %w", &backend.StatusError{StatusCode: status, Detail: detail, Body: []byte(body)})
}

func unreachable() error {
	return fmt.Errorf("op: %w: dial tcp: connection refused", backend.ErrUnavailable)
}

func TestLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fb := &fakeBackend{}
		token, err := NewService(fb).Login(context.Background(), LoginForm{Email: "ada@example.com", Password: "pw"})
		require.NoError(t, err)
		assert.Equal(t, "issued", token)
		assert.Equal(t, backend.LoginRequest{Email: "ada@example.com", Password: "pw"}, fb.loginReq)
	})

	t.Run("missing fields fail locally", func(t *testing.T) {
		for _, form := range []LoginForm{{}, {Email: "a@b.c"}, {Password: "pw"}} {
			fb := &fakeBackend{}
			_, err := NewService(fb).Login(context.Background(), form)
			actionErr := requireActionError(t, err, http.StatusBadRequest, "Please fill in all fields.")
			assert.ErrorIs(t, actionErr, apperrors.ErrValidation)
			assert.Equal(t, 0, fb.calls)
		}
	})

	t.Run("backend detail surfaced as 401", func(t *testing.T) {
		fb := &fakeBackend{err: rejected(http.StatusBadRequest, "Incorrect email or password", `{"detail":"Incorrect email or password"}`)}
		_, err := NewService(fb).Login(context.Background(), LoginForm{Email: "a@b.c", Password: "pw"})
		actionErr := requireActionError(t, err, http.StatusUnauthorized, "Incorrect email or password")
		assert.ErrorIs(t, actionErr, apperrors.ErrUpstreamRejected)
	})

	t.Run("rejection without detail", func(t *testing.T) {
		fb := &fakeBackend{err: rejected(http.StatusUnauthorized, "", `{}`)}
		_, err := NewService(fb).Login(context.Background(), LoginForm{Email: "a@b.c", Password: "pw"})
		requireActionError(t, err, http.StatusUnauthorized, "Invalid credentials.")
	})

	t.Run("transport failure", func(t *testing.T) {
		fb := &fakeBackend{err: unreachable()}
		_, err := NewService(fb).Login(context.Background(), LoginForm{Email: "a@b.c", Password: "pw"})
		actionErr := requireActionError(t, err, http.StatusServiceUnavailable, "Could not reach the server. Try again later.")
		assert.ErrorIs(t, actionErr, apperrors.ErrUpstreamUnavailable)
		assert.ErrorIs(t, actionErr, backend.ErrUnavailable)
	})
}

func validSignup() SignupForm {
	return SignupForm{
		Username:        "ada",
		Name:            "Ada Lovelace",
		Email:           "ada@example.com",
		Password:        "secret",
		ConfirmPassword: "secret",
	}
}

func TestSignup(t *testing.T) {
	t.Run("success forwards username", func(t *testing.T) {
		fb := &fakeBackend{}
		token, err := NewService(fb).Signup(context.Background(), validSignup())
		require.NoError(t, err)
		assert.Equal(t, "issued", token)
		assert.Equal(t, backend.SignupRequest{Username: "ada", Name: "Ada Lovelace", Email: "ada@example.com", Password: "secret"}, fb.signupReq)
	})

	tests := []struct {
		name    string
		mutate  func(f *SignupForm)
		message string
		field   string
	}{
		{"missing username", func(f *SignupForm) { f.Username = "" }, "Please fill in all fields.", "username"},
		{"missing email", func(f *SignupForm) { f.Email = "" }, "Please fill in all fields.", "email"},
		{"missing name", func(f *SignupForm) { f.Name = "" }, "Please fill in all fields.", "name"},
		{"single name", func(f *SignupForm) { f.Name = "  Ada  " }, "Please enter your full name.", "name"},
		{"tab separated name", func(f *SignupForm) { f.Name = "Ada\tLovelace" }, "Please enter your full name.", "name"},
		{"password mismatch", func(f *SignupForm) { f.ConfirmPassword = "other" }, "Passwords do not match.", "confirmPassword"},
		{"missing field beats mismatch", func(f *SignupForm) { f.Email = ""; f.ConfirmPassword = "x" }, "Please fill in all fields.", "email"},
		{"full name beats mismatch", func(f *SignupForm) { f.Name = "Ada"; f.ConfirmPassword = "x" }, "Please enter your full name.", "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validSignup()
			tt.mutate(&form)
			fb := &fakeBackend{}
			_, err := NewService(fb).Signup(context.Background(), form)
			actionErr := requireActionError(t, err, http.StatusBadRequest, tt.message)
			assert.Equal(t, tt.field, actionErr.Field)
			assert.Equal(t, 0, fb.calls)
		})
	}

	t.Run("backend status kept", func(t *testing.T) {
		fb := &fakeBackend{err: rejected(http.StatusConflict, "Email already registered", `{"detail":"Email already registered"}`)}
		_, err := NewService(fb).Signup(context.Background(), validSignup())
		requireActionError(t, err, http.StatusConflict, "Email already registered")
	})

	t.Run("rejection without detail", func(t *testing.T) {
		fb := &fakeBackend{err: rejected(http.StatusUnprocessableEntity, "", `{"detail":[{"msg":"bad"}]}`)}
		_, err := NewService(fb).Signup(context.Background(), validSignup())
		requireActionError(t, err, http.StatusUnprocessableEntity, "Could not create account.")
	})

	t.Run("transport failure", func(t *testing.T) {
		fb := &fakeBackend{err: unreachable()}
		_, err := NewService(fb).Signup(context.Background(), validSignup())
		requireActionError(t, err, http.StatusServiceUnavailable, "Could not reach the server. Try again later.")
	})
}

func TestSubmitSighting(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		fb := &fakeBackend{created: json.RawMessage(`{"id":9}`)}
		out, err := NewService(fb).SubmitSighting(context.Background(), "tok", []byte(`{"name":"Tiger","sci":"Panthera tigris"}`))
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":9}`, string(out))
		assert.Equal(t, "tok", fb.token)
		assert.Equal(t, backend.SightingRequest{
			Name:   "Tiger",
			Sci:    "Panthera tigris",
			Status: backend.StatusLeastConcern,
		}, fb.sighting)
	})

	t.Run("values forwarded", func(t *testing.T) {
		fb := &fakeBackend{created: json.RawMessage(`{}`)}
		body := `{"name":"Tiger","sci":"Panthera tigris","status":"EN","lat":12.5,"lng":-3,"threat_score":88}`
		_, err := NewService(fb).SubmitSighting(context.Background(), "tok", []byte(body))
		require.NoError(t, err)
		assert.Equal(t, backend.SightingRequest{
			Name: "Tiger", Sci: "Panthera tigris", Status: backend.StatusEndangered,
			Lat: 12.5, Lng: -3, ThreatScore: 88,
		}, fb.sighting)
	})

	t.Run("non-numeric values default to zero", func(t *testing.T) {
		fb := &fakeBackend{created: json.RawMessage(`{}`)}
		body := `{"name":"Tiger","sci":"Panthera tigris","status":null,"lat":"12","lng":true,"threat_score":null}`
		_, err := NewService(fb).SubmitSighting(context.Background(), "tok", []byte(body))
		require.NoError(t, err)
		assert.Equal(t, backend.StatusLeastConcern, fb.sighting.Status)
		assert.Zero(t, fb.sighting.Lat)
		assert.Zero(t, fb.sighting.Lng)
		assert.Zero(t, fb.sighting.ThreatScore)
	})

	t.Run("unknown status left to backend", func(t *testing.T) {
		fb := &fakeBackend{err: rejected(http.StatusUnprocessableEntity, "", `{"detail":[{"loc":["body","status"]}]}`)}
		_, err := NewService(fb).SubmitSighting(context.Background(), "tok", []byte(`{"name":"Tiger","sci":"Panthera tigris","status":"XX"}`))
		assert.Equal(t, 1, fb.calls)
		assert.Equal(t, backend.ConservationStatus("XX"), fb.sighting.Status)
		actionErr := apperrors.AsActionError(err)
		require.NotNil(t, actionErr)
		assert.Equal(t, http.StatusUnprocessableEntity, actionErr.Status)
	})

	local := []struct {
		name    string
		token   string
		body    string
		status  int
		message string
	}{
		{"no token", "", `{"name":"Tiger","sci":"Panthera tigris"}`, http.StatusUnauthorized, "Not authenticated"},
		{"not json", "tok", `name=Tiger`, http.StatusBadRequest, "Invalid body"},
		{"empty body", "tok", ``, http.StatusBadRequest, "Invalid body"},
		{"missing sci", "tok", `{"name":"Tiger"}`, http.StatusBadRequest, "name and sci required"},
		{"empty name", "tok", `{"name":"","sci":"Panthera tigris"}`, http.StatusBadRequest, "name and sci required"},
		{"null body", "tok", `null`, http.StatusBadRequest, "name and sci required"},
		{"array body", "tok", `[1,2]`, http.StatusBadRequest, "name and sci required"},
		{"numeric status", "tok", `{"name":"Tiger","sci":"Panthera tigris","status":3}`, http.StatusBadRequest, "status must be a string"},
	}
	for _, tt := range local {
		t.Run(tt.name, func(t *testing.T) {
			fb := &fakeBackend{}
			_, err := NewService(fb).SubmitSighting(context.Background(), tt.token, []byte(tt.body))
			requireActionError(t, err, tt.status, tt.message)
			assert.Equal(t, 0, fb.calls)
		})
	}

	t.Run("invalid body is tagged", func(t *testing.T) {
		_, err := NewService(&fakeBackend{}).SubmitSighting(context.Background(), "tok", []byte(`{`))
		assert.ErrorIs(t, err, apperrors.ErrInvalidBody)
	})

	t.Run("backend error body relayed", func(t *testing.T) {
		fb := &fakeBackend{err: rejected(http.StatusUnprocessableEntity, "", `{"detail":[{"loc":["body","lat"]}]}`)}
		_, err := NewService(fb).SubmitSighting(context.Background(), "tok", []byte(`{"name":"Tiger","sci":"Panthera tigris"}`))
		require.Error(t, err)
		actionErr := apperrors.AsActionError(err)
		assert.Equal(t, http.StatusUnprocessableEntity, actionErr.Status)
		assert.JSONEq(t, `{"detail":[{"loc":["body","lat"]}]}`, string(actionErr.Body))
	})

	t.Run("non-json backend error body becomes empty object", func(t *testing.T) {
		fb := &fakeBackend{err: rejected(http.StatusBadGateway, "", `<html>bad gateway</html>`)}
		_, err := NewService(fb).SubmitSighting(context.Background(), "tok", []byte(`{"name":"Tiger","sci":"Panthera tigris"}`))
		actionErr := apperrors.AsActionError(err)
		assert.Equal(t, http.StatusBadGateway, actionErr.Status)
		assert.Equal(t, "{}", string(actionErr.Body))
	})

	t.Run("transport failure", func(t *testing.T) {
		fb := &fakeBackend{err: unreachable()}
		_, err := NewService(fb).SubmitSighting(context.Background(), "tok", []byte(`{"name":"Tiger","sci":"Panthera tigris"}`))
		actionErr := requireActionError(t, err, http.StatusServiceUnavailable, "Could not reach the server. Try again later.")
		assert.Nil(t, actionErr.Body)
	})
}
