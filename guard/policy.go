// Package guard decides, from a path and the resolved identity, whether a
// request may proceed or must be redirected.
package guard

import "strings"

// RouteClass is the access class of a path.
type RouteClass int

const (
	Public RouteClass = iota
	// Protected routes require a signed-in identity.
	Protected
	// AuthOnly routes are for signed-out visitors only (login, signup).
	AuthOnly
)

func (c RouteClass) String() string {
	switch c {
	case Protected:
		return "protected"
	case AuthOnly:
		return "auth-only"
	default:
		return "public"
	}
}

// Policy maps a raw path prefix to a class. Matching is a plain string
// prefix, so "/scan" also covers "/scanner" and "/scan/analyze".
type Policy struct {
	Prefix string
	Class  RouteClass
}

// DefaultPolicies is the site's route table. Paths matching no entry are Public.
func DefaultPolicies() []Policy {
	return []Policy{
		{Prefix: "/account", Class: Protected},
		{Prefix: "/scan", Class: Protected},
		{Prefix: "/auth/login", Class: AuthOnly},
		{Prefix: "/auth/signup", Class: AuthOnly},
	}
}

func (p Policy) matches(path string) bool {
	return p.Prefix != "" && strings.HasPrefix(path, p.Prefix)
}
