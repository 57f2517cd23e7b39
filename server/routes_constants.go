package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Pages
	RouteIndex       = "/"
	RouteMap         = "/map"
	RouteLeaderboard = "/leaderboard"
	RouteAccount     = "/account"
	RouteScan        = "/scan"

	// Auth Routes
	RouteAuthLogin  = "/auth/login"
	RouteAuthSignup = "/auth/signup"
	RouteAuthLogout = "/auth/logout"

	// Scan endpoints (JSON)
	RouteSubmitSighting = "/scan/submit-sighting"
	RouteScanAnalyze    = "/scan/analyze"

	RouteHealth = "/health"

	// Catch-all for paths no other route claims
	RouteFallback = "/"

	// Static Asset Routes (patterns)
	RouteStaticCSS = "/css/{file}"
	RouteStaticJS  = "/js/{file}"
)
