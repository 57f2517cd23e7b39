package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/jrsteele09/snap-species-web/actions"
	"github.com/jrsteele09/snap-species-web/guard"
	apperrors "github.com/jrsteele09/snap-species-web/internal/errors"
	"github.com/rs/zerolog"
)

const loginNotice = "Please log in to continue."

func (s *Server) LoginGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := s.newView(r, "Log in", "login")
		view.Form = FormView{
			Email:    r.URL.Query().Get("email"),
			Redirect: safeRedirect(r.URL.Query().Get("redirect"), ""),
		}
		if r.URL.Query().Has("redirect") {
			view.Form.Notice = loginNotice
		}
		s.render(w, r, http.StatusOK, "login.html", view)
	}
}

// LoginPostHandler processes the login form submission
func (s *Server) LoginPostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		form := actions.LoginForm{
			Email:    r.PostFormValue("email"),
			Password: r.PostFormValue("password"),
		}
		redirectTo := safeRedirect(r.PostFormValue("redirect"), guard.LandingPath)

		token, err := s.actions.Login(r.Context(), form)
		if err != nil {
			actionErr := apperrors.AsActionError(err)
			view := s.newView(r, "Log in", "login")
			view.Form = FormView{Error: actionErr.Message, Email: form.Email, Redirect: r.PostFormValue("redirect")}
			s.render(w, r, actionErr.Status, "login.html", view)
			return
		}

		s.cookies.Set(w, token)
		zerolog.Ctx(r.Context()).Info().Msg("user logged in")
		redirectSuccess(w, r, redirectTo)
	}
}

func (s *Server) SignupGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, http.StatusOK, "signup.html", s.newView(r, "Sign up", "signup"))
	}
}

func (s *Server) SignupPostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		form := actions.SignupForm{
			Username:        r.PostFormValue("username"),
			Name:            r.PostFormValue("name"),
			Email:           r.PostFormValue("email"),
			Password:        r.PostFormValue("password"),
			ConfirmPassword: r.PostFormValue("confirmPassword"),
		}

		token, err := s.actions.Signup(r.Context(), form)
		if err != nil {
			actionErr := apperrors.AsActionError(err)
			view := s.newView(r, "Sign up", "signup")
			view.Form = FormView{Error: actionErr.Message, Username: form.Username, Name: form.Name, Email: form.Email}
			s.render(w, r, actionErr.Status, "signup.html", view)
			return
		}

		s.cookies.Set(w, token)
		zerolog.Ctx(r.Context()).Info().Msg("account created")
		redirectSuccess(w, r, guard.LandingPath)
	}
}

// LogoutHandler drops the session cookie. The backend keeps no session to end.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.cookies.Clear(w)
		redirectSuccess(w, r, RouteIndex)
	}
}

// safeRedirect accepts only site-local absolute paths; anything else yields
// fallback. Control characters are refused outright since browsers strip tabs
// and newlines from Location before resolving it.
func safeRedirect(target, fallback string) string {
	if strings.IndexFunc(target, isControl) >= 0 {
		return fallback
	}
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return fallback
	}
	u, err := url.Parse(target)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return fallback
	}
	return target
}

func isControl(r rune) bool {
	return r < 0x20 || r == 0x7f
}
