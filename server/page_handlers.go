package server

import (
	"bytes"
	"net/http"

	"github.com/jrsteele09/snap-species-web/pages"
	"github.com/jrsteele09/snap-species-web/sessions"
	"github.com/rs/zerolog"
)

const contentTypeHTML = "text/html; charset=utf-8"

// ViewData is what every page template receives.
type ViewData struct {
	AppName string
	Title   string
	Active  string
	Auth    sessions.AuthState
	Page    pages.PageData
	Form    FormView
}

// FormView carries submitted values and the inline error back to a form.
type FormView struct {
	Error    string
	Notice   string
	Username string
	Name     string
	Email    string
	Redirect string
}

func (s *Server) newView(r *http.Request, title, active string) ViewData {
	return ViewData{
		AppName: s.config.GetAppName(),
		Title:   title,
		Active:  active,
		Auth:    sessions.AuthStateFrom(r.Context()),
	}
}

// render executes a page into a buffer first so a template error never
// leaves a half-written page behind.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data ViewData) {
	logger := zerolog.Ctx(r.Context())
	tmpl, ok := s.templates[name]
	if !ok {
		logger.Error().Str("template", name).Msg("unknown template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		logger.Err(err).Str("template", name).Msg("Failed to render template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, http.StatusOK, "index.html", s.newView(r, "Home", "home"))
	}
}

var pageTitles = map[pages.RouteKey]string{
	pages.RouteMap:         "Sightings Map",
	pages.RouteLeaderboard: "Leaderboard",
	pages.RouteAccount:     "My Account",
}

// PageHandler renders a page backed by the aggregator's data for route.
func (s *Server) PageHandler(route pages.RouteKey, templateName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := s.newView(r, pageTitles[route], string(route))
		view.Page = s.pages.Load(r.Context(), route, sessionToken(r.Context()))
		s.render(w, r, http.StatusOK, templateName, view)
	}
}

func (s *Server) ScanPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, http.StatusOK, "scan.html", s.newView(r, "Scan", "scan"))
	}
}

// NotFoundHandler answers paths no page claims. It sits behind the session
// middleware so protected prefixes redirect before anything is revealed.
func (s *Server) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "404 - Page Not Found", http.StatusNotFound)
	}
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
