package guard

import (
	"fmt"
	"strings"

	"github.com/jrsteele09/snap-species-web/sessions"
)

const (
	LoginPath   = "/auth/login"
	LandingPath = "/map"
)

// Decision is the guard's verdict. RedirectTo is set only when Allow is false.
type Decision struct {
	Allow      bool
	RedirectTo string
}

func allow() Decision {
	return Decision{Allow: true}
}

func redirect(to string) Decision {
	return Decision{RedirectTo: to}
}

// Guard classifies paths against a single policy table. It never performs I/O.
type Guard struct {
	policies []Policy
}

// New builds a guard over policies, or DefaultPolicies when none are given.
// The first matching policy wins.
func New(policies ...Policy) *Guard {
	if len(policies) == 0 {
		policies = DefaultPolicies()
	}
	return &Guard{policies: append([]Policy(nil), policies...)}
}

func (g *Guard) Classify(path string) RouteClass {
	for _, p := range g.policies {
		if p.matches(path) {
			return p.Class
		}
	}
	return Public
}

// Decide returns the redirect for path given the resolved identity (nil when
// anonymous).
func (g *Guard) Decide(path string, identity *sessions.Identity) Decision {
	switch g.Classify(path) {
	case Protected:
		if identity == nil {
			return redirect(LoginRedirect(path))
		}
	case AuthOnly:
		if identity != nil {
			return redirect(LandingPath)
		}
	}
	return allow()
}

// LoginRedirect is the login URL that returns the visitor to path afterwards.
func LoginRedirect(path string) string {
	return LoginPath + "?redirect=" + EncodeURIComponent(path)
}

// EncodeURIComponent percent-encodes s the way browsers encode a URI
// component: everything except letters, digits and -_.!~*'() is escaped.
func EncodeURIComponent(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unescaped(c) {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}

func unescaped(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
