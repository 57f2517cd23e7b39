package server

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/jrsteele09/snap-species-web/actions"
	"github.com/jrsteele09/snap-species-web/backend"
	"github.com/jrsteele09/snap-species-web/guard"
	"github.com/jrsteele09/snap-species-web/internal/config"
	apperrors "github.com/jrsteele09/snap-species-web/internal/errors"
	"github.com/jrsteele09/snap-species-web/pages"
	"github.com/jrsteele09/snap-species-web/sessions"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env    string // Environment (e.g., "DEV", "PROD")
	mux    *http.ServeMux
	routes []string
	config config.Config

	backend   *backend.Client
	resolver  *sessions.Resolver
	guard     *guard.Guard
	pages     *pages.Aggregator
	actions   *actions.Service
	cookies   sessions.CookiePolicy
	limiter   *ipRateLimiter
	templates map[string]*template.Template
	assets    staticAssets
}

func New(config config.Config) (*Server, error) {
	templates, err := parsePageTemplates()
	if err != nil {
		return nil, apperrors.Wrapf(err, "[Server New] failed to parse templates")
	}

	assets, err := loadStaticAssets()
	if err != nil {
		return nil, apperrors.Wrapf(err, "[Server New] failed to load static assets")
	}

	client := backend.New(config.GetAPIBaseURL())
	client.SetHTTPClient(&http.Client{Timeout: config.GetAPITimeout()})
	s := &Server{
		env:      config.GetEnv(),
		mux:      http.NewServeMux(),
		config:   config,
		backend:  client,
		resolver: sessions.NewResolver(client),
		guard:    guard.New(),
		pages:    pages.NewAggregator(pages.FromClient(client)),
		actions:  actions.NewService(client),
		cookies: sessions.CookiePolicy{
			Name:   config.GetSessionCookieName(),
			MaxAge: config.GetSessionMaxAge(),
		},
		limiter:   newIPRateLimiter(config.GetAuthRateLimit(), config.GetAuthRateBurst()),
		templates: templates,
		assets:    assets,
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	log.Info().Str("upstream", s.backend.BaseURL()).Int("routes", len(s.routes)).Msg("routes registered")
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	log.Info().Msgf("[%-19s] %s", colouredMethod(method), path)
}
