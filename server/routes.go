package server

import (
	"net/http"

	"github.com/jrsteele09/snap-species-web/pages"
)

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET "+RouteIndex+"{$}", ChainMiddleware(s.IndexHandler(), s.HTMLMiddleWare(s.SessionMiddleware)...))

	// Pages
	s.RegisterRouteHandler("GET "+RouteMap, ChainMiddleware(s.PageHandler(pages.RouteMap, "map.html"), s.HTMLMiddleWare(s.SessionMiddleware)...))
	s.RegisterRouteHandler("GET "+RouteLeaderboard, ChainMiddleware(s.PageHandler(pages.RouteLeaderboard, "leaderboard.html"), s.HTMLMiddleWare(s.SessionMiddleware)...))
	s.RegisterRouteHandler("GET "+RouteAccount, ChainMiddleware(s.PageHandler(pages.RouteAccount, "account.html"), s.HTMLMiddleWare(s.SessionMiddleware)...))
	s.RegisterRouteHandler("GET "+RouteScan, ChainMiddleware(s.ScanPageHandler(), s.HTMLMiddleWare(s.SessionMiddleware)...))

	// LOGIN / SIGNUP
	s.RegisterRouteHandler("GET "+RouteAuthLogin, ChainMiddleware(s.LoginGetHandler(), s.HTMLMiddleWare(s.SessionMiddleware)...))
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginPostHandler(), s.HTMLMiddleWare(s.RateLimitMiddleware, s.SessionMiddleware)...))
	s.RegisterRouteHandler("GET "+RouteAuthSignup, ChainMiddleware(s.SignupGetHandler(), s.HTMLMiddleWare(s.SessionMiddleware)...))
	s.RegisterRouteHandler("POST "+RouteAuthSignup, ChainMiddleware(s.SignupPostHandler(), s.HTMLMiddleWare(s.RateLimitMiddleware, s.SessionMiddleware)...))
	s.RegisterRouteHandler("GET "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))

	// Scan JSON endpoints
	s.RegisterRouteHandler("POST "+RouteSubmitSighting, ChainMiddleware(s.SubmitSightingHandler(), s.APIMiddleware(s.SessionMiddleware)...))
	s.RegisterRouteHandler("POST "+RouteScanAnalyze, ChainMiddleware(s.ScanAnalyzeHandler(), s.APIMiddleware(s.SessionMiddleware)...))
	s.RegisterRouteHandler("OPTIONS "+RouteSubmitSighting, ChainMiddleware(preflightHandler, s.APIMiddleware()...))
	s.RegisterRouteHandler("OPTIONS "+RouteScanAnalyze, ChainMiddleware(preflightHandler, s.APIMiddleware()...))

	s.RegisterRouteHandler("GET "+RouteHealth, ChainMiddleware(s.HealthHandler(), s.APIMiddleware()...))

	s.RegisterRouteHandler("GET "+RouteStaticCSS, ChainMiddleware(s.serveFileHandler(), s.HTMLMiddleWare(s.CacheMiddleware, s.CompressionMiddleware)...))
	s.RegisterRouteHandler("GET "+RouteStaticJS, ChainMiddleware(s.serveFileHandler(), s.HTMLMiddleWare(s.CacheMiddleware, s.CompressionMiddleware)...))

	// Everything else still passes the guard before the 404.
	s.RegisterRouteHandler(RouteFallback, ChainMiddleware(s.NotFoundHandler(), s.HTMLMiddleWare(s.SessionMiddleware)...))
}

// preflightHandler is only reached when CorsMiddleware lets an OPTIONS request through.
func preflightHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
