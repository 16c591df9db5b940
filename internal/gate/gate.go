package gate

// Package gate implements the edge request-authorization layer. Every inbound
// page request is classified and checked against static permission tables
// before a handler runs; the result is one of four outcomes: pass through,
// pass through with refreshed session cookies, redirect to sign-in, or
// redirect to the caller's default dashboard.

import (
	"net/url"
	"strings"

	domainauth "github.com/aromabase/aromabase/internal/domain/auth"
)

// Outcome identifies the routing decision for a request.
type Outcome int

const (
	// OutcomeSkip passes the request through with no auth evaluation at all.
	OutcomeSkip Outcome = iota
	// OutcomeAllow passes the request through after auth evaluation.
	OutcomeAllow
	// OutcomeRedirectLogin redirects to the sign-in path.
	OutcomeRedirectLogin
	// OutcomeRedirectDashboard redirects to a role's default landing page.
	OutcomeRedirectDashboard
)

// Decision is the gate's verdict for a single request. Location is set for
// the redirect outcomes and empty otherwise.
type Decision struct {
	Outcome  Outcome
	Location string
}

// Principal is the per-request view of the caller the gate decides over.
// Role is only meaningful when RoleResolved is true; a session whose role
// cannot be resolved is treated as insufficient, not as "any access".
type Principal struct {
	Authenticated bool
	Role          domainauth.Role
	RoleResolved  bool
}

// Config holds the gate's static tables. They are loaded once at startup and
// never mutated afterwards; concurrent evaluation needs no locking.
type Config struct {
	// LoginPath is the sign-in page; redirects carry the original path in
	// RedirectParam so the user returns there after login.
	LoginPath     string
	RedirectParam string

	// SkipPrefixes are framework-internal/static path prefixes that bypass
	// auth evaluation entirely. SkipExact lists exact-match skip paths.
	SkipPrefixes []string
	SkipExact    []string

	// PublicPrefixes are paths reachable without authentication
	// (sign-in, registration, password-reset flows).
	PublicPrefixes []string

	// Permissions is the path-prefix → allowed-roles table.
	Permissions PermissionTable

	// Dashboards maps each role to its default landing page.
	Dashboards DashboardTable
}

// Gate is the compiled decision engine. Construct once via New; Evaluate is
// pure and safe for concurrent use.
type Gate struct {
	cfg Config
}

// New compiles a Gate from static configuration, applying defaults for any
// zero-valued field.
func New(cfg Config) *Gate {
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/login"
	}
	if cfg.RedirectParam == "" {
		cfg.RedirectParam = "redirect"
	}
	if cfg.Dashboards == nil {
		cfg.Dashboards = DashboardTable{}
	}
	return &Gate{cfg: cfg}
}

// ShouldSkip reports whether the path bypasses auth evaluation entirely.
// Skip paths never trigger an identity lookup; callers must check this
// before resolving the principal.
func (g *Gate) ShouldSkip(p string) bool {
	for _, exact := range g.cfg.SkipExact {
		if p == exact {
			return true
		}
	}
	for _, prefix := range g.cfg.SkipPrefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return hasNonHTMLExtension(p)
}

// IsPublic reports whether the path is reachable without authentication.
func (g *Gate) IsPublic(p string) bool {
	for _, prefix := range g.cfg.PublicPrefixes {
		if prefixMatches(p, prefix) {
			return true
		}
	}
	return false
}

// Evaluate produces the routing decision for a request path and principal.
// It is a pure function of its inputs: evaluating the same (path, principal)
// pair twice yields the same decision.
//
// requestURI is the original request URI (path plus query) used to build the
// post-login return parameter; pass the bare path when no query is present.
func (g *Gate) Evaluate(p, requestURI string, pr Principal) Decision {
	if g.ShouldSkip(p) {
		return Decision{Outcome: OutcomeSkip}
	}

	isPublic := g.IsPublic(p)

	switch {
	case pr.Authenticated && isPublic:
		// Signed-in users have no business on sign-in/registration pages;
		// send them to their dashboard.
		return Decision{
			Outcome:  OutcomeRedirectDashboard,
			Location: g.dashboardFor(pr),
		}

	case !pr.Authenticated && !isPublic:
		return Decision{
			Outcome:  OutcomeRedirectLogin,
			Location: g.loginURL(requestURI),
		}

	case pr.Authenticated && !isPublic:
		return g.evaluateProtected(p, pr)

	default: // unauthenticated on a public path
		return Decision{Outcome: OutcomeAllow}
	}
}

// evaluateProtected checks the permission table for an authenticated
// principal on a protected path.
func (g *Gate) evaluateProtected(p string, pr Principal) Decision {
	// A session without a usable role is insufficient, not omnipotent.
	if !pr.RoleResolved {
		return Decision{
			Outcome:  OutcomeRedirectLogin,
			Location: g.cfg.LoginPath,
		}
	}

	rule, ok := g.cfg.Permissions.Match(p)
	if !ok {
		// No matching entry: implicit allow for authenticated principals.
		// This default-allow is deliberate; see the gate tests.
		return Decision{Outcome: OutcomeAllow}
	}
	if !rule.Allows(pr.Role) {
		return Decision{
			Outcome:  OutcomeRedirectDashboard,
			Location: g.dashboardFor(pr),
		}
	}
	return Decision{Outcome: OutcomeAllow}
}

// dashboardFor resolves the principal's default landing page, falling back to
// the contributor default for unrecognized roles.
func (g *Gate) dashboardFor(pr Principal) string {
	if pr.RoleResolved {
		return g.cfg.Dashboards.For(pr.Role)
	}
	return g.cfg.Dashboards.For(domainauth.RoleContributor)
}

// loginURL builds the sign-in redirect carrying the original destination.
func (g *Gate) loginURL(requestURI string) string {
	if requestURI == "" {
		return g.cfg.LoginPath
	}
	q := url.Values{}
	q.Set(g.cfg.RedirectParam, requestURI)
	return g.cfg.LoginPath + "?" + q.Encode()
}
