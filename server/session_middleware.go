package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrsteele09/snap-species-web/guard"
	"github.com/jrsteele09/snap-species-web/sessions"
	"github.com/rs/zerolog"
)

type contextKey string

const sessionTokenKey contextKey = "session_token"

// SessionMiddleware resolves the session cookie to an identity, stores the
// auth state in the request context and applies the route guard before the
// handler runs.
func (s *Server) SessionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		token := s.cookies.Token(r)

		resolution := s.resolver.Resolve(ctx, token)
		if resolution.Rejected {
			zerolog.Ctx(ctx).Debug().Err(resolution.Err).Msg("clearing rejected session cookie")
			s.cookies.Clear(w)
			token = ""
		}

		ctx = sessions.WithAuthState(ctx, sessions.NewAuthState(resolution.Identity))
		ctx = context.WithValue(ctx, sessionTokenKey, token)

		decision := s.guard.Decide(r.URL.Path, resolution.Identity)
		if !decision.Allow {
			if s.guard.Classify(r.URL.Path) == guard.Protected && isAPIRequest(r) {
				writeJSONError(w, http.StatusUnauthorized, msgNotAuthenticated)
				return
			}
			redirectSuccess(w, r, decision.RedirectTo)
			return
		}

		next(w, r.WithContext(ctx))
	}
}

// sessionToken is the token SessionMiddleware accepted for this request, or "".
func sessionToken(ctx context.Context) string {
	token, _ := ctx.Value(sessionTokenKey).(string)
	return token
}

// isAPIRequest reports whether r is a script call (JSON or upload) rather
// than a page navigation or form post.
func isAPIRequest(r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return false
	}
	contentType := r.Header.Get("Content-Type")
	return strings.HasPrefix(contentType, "application/json") ||
		strings.HasPrefix(contentType, "multipart/form-data") ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}

// redirectSuccess helper for htmx-aware redirects
func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMXRequest(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusNoContent) // 204 - no content, just redirect instruction
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// isHTMXRequest checks if the request was initiated by HTMX
func isHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
