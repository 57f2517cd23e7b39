// Package sessions resolves the identity behind a session cookie and carries
// the resulting auth state through a request.
package sessions

import (
	"net/http"
	"time"

	"github.com/jrsteele09/snap-species-web/backend"
	"github.com/jrsteele09/snap-species-web/internal/utils"
)

const (
	// DefaultCookieName is the cookie holding the backend access token.
	DefaultCookieName = "session"
	// DefaultMaxAge is how long a login keeps its cookie.
	DefaultMaxAge = 7 * 24 * time.Hour
)

// Identity is the signed-in user as seen by pages. Username mirrors the email.
type Identity struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// IdentityFromProfile maps a backend profile, defaulting missing fields to "".
func IdentityFromProfile(p *backend.Profile) *Identity {
	if p == nil {
		return nil
	}
	email := utils.Value(p.Email)
	return &Identity{
		Username: email,
		Name:     utils.Value(p.Name),
		Email:    email,
	}
}

// CookiePolicy sets, reads and clears the session cookie. Every cookie it
// writes is HttpOnly, Secure, SameSite=Lax and scoped to the whole site.
type CookiePolicy struct {
	Name   string
	MaxAge time.Duration
}

func DefaultCookiePolicy() CookiePolicy {
	return CookiePolicy{Name: DefaultCookieName, MaxAge: DefaultMaxAge}
}

// Token returns the session token carried by r, or "" when there is none.
func (p CookiePolicy) Token(r *http.Request) string {
	cookie, err := r.Cookie(p.Name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (p CookiePolicy) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, p.cookie(token, int(p.MaxAge/time.Second)))
}

func (p CookiePolicy) Clear(w http.ResponseWriter) {
	http.SetCookie(w, p.cookie("", -1))
}

func (p CookiePolicy) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     p.Name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
}
