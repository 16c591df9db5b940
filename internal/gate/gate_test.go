package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/aromabase/aromabase/internal/domain/auth"
)

// newTestGate builds a gate with the platform's default routing policy.
func newTestGate(t *testing.T) *Gate {
	t.Helper()
	return New(Config{
		LoginPath:      "/login",
		RedirectParam:  "redirect",
		SkipPrefixes:   []string{"/_next/", "/static/", "/auth/"},
		SkipExact:      []string{"/favicon.ico", "/sitemap.xml", "/robots.txt"},
		PublicPrefixes: []string{"/login", "/register", "/forgot-password", "/reset-password"},
		Permissions: PermissionTable{
			{Prefix: "/admin", Roles: []domainauth.Role{domainauth.RoleTeamMember, domainauth.RoleSuperAdmin}},
			{Prefix: "/admin/users", Roles: []domainauth.Role{domainauth.RoleSuperAdmin}},
			{Prefix: "/admin/settings", Roles: []domainauth.Role{domainauth.RoleSuperAdmin}},
			{Prefix: "/contribute", Roles: []domainauth.Role{domainauth.RoleContributor, domainauth.RoleTeamMember, domainauth.RoleSuperAdmin}},
		},
		Dashboards: DashboardTable{
			domainauth.RoleContributor: "/contribute/dashboard",
			domainauth.RoleTeamMember:  "/admin/dashboard",
			domainauth.RoleSuperAdmin:  "/admin/dashboard",
		},
	})
}

func principal(role domainauth.Role) Principal {
	return Principal{Authenticated: true, Role: role, RoleResolved: true}
}

func TestGate_Evaluate_SkipPaths(t *testing.T) {
	t.Parallel()
	g := newTestGate(t)

	for _, p := range []string{
		"/_next/static/chunk.js",
		"/static/app.css",
		"/auth/callback",
		"/auth/login",
		"/favicon.ico",
		"/robots.txt",
		"/images/logo.png", // non-HTML extension
	} {
		d := g.Evaluate(p, p, Principal{})
		assert.Equal(t, OutcomeSkip, d.Outcome, "path %s", p)
		assert.Empty(t, d.Location)
	}
}

func TestGate_Evaluate_SignInFlowReachableWithoutSession(t *testing.T) {
	t.Parallel()
	g := newTestGate(t)

	// An unauthenticated browser on /login must be able to reach the flow
	// initiator; bouncing it back to /login would make sign-in impossible.
	for _, p := range []string{"/auth/login", "/auth/status", "/auth/logout"} {
		d := g.Evaluate(p, p+"?redirect=%2Fadmin", Principal{})
		assert.Equal(t, OutcomeSkip, d.Outcome, "path %s", p)
	}
}

func TestGate_Evaluate_UnauthenticatedProtectedRedirectsToLogin(t *testing.T) {
	t.Parallel()
	g := newTestGate(t)

	d := g.Evaluate("/admin/dashboard", "/admin/dashboard", Principal{})
	assert.Equal(t, OutcomeRedirectLogin, d.Outcome)
	assert.Equal(t, "/login?redirect=%2Fadmin%2Fdashboard", d.Location)
}

func TestGate_Evaluate_LoginRedirectPreservesQuery(t *testing.T) {
	t.Parallel()
	g := newTestGate(t)

	d := g.Evaluate("/admin/perfumes", "/admin/perfumes?status=pending&limit=10", Principal{})
	assert.Equal(t, OutcomeRedirectLogin, d.Outcome)
	assert.Equal(t, "/login?redirect=%2Fadmin%2Fperfumes%3Fstatus%3Dpending%26limit%3D10", d.Location)
}

func TestGate_Evaluate_UnauthenticatedPublicAllowed(t *testing.T) {
	t.Parallel()
	g := newTestGate(t)

	for _, p := range []string{"/login", "/register", "/forgot-password", "/reset-password"} {
		d := g.Evaluate(p, p, Principal{})
		assert.Equal(t, OutcomeAllow, d.Outcome, "path %s", p)
	}
}

func TestGate_Evaluate_AuthenticatedOnPublicGoesToDashboard(t *testing.T) {
	t.Parallel()
	g := newTestGate(t)

	tests := []struct {
		role domainauth.Role
		want string
	}{
		{domainauth.RoleContributor, "/contribute/dashboard"},
		{domainauth.RoleTeamMember, "/admin/dashboard"},
		{domainauth.RoleSuperAdmin, "/admin/dashboard"},
	}
	for _, tc := range tests {
		d := g.Evaluate("/login", "/login", principal(tc.role))
		assert.Equal(t, OutcomeRedirectDashboard, d.Outcome, "role %s", tc.role)
		assert.Equal(t, tc.want, d.Location, "role %s", tc.role)
	}
}

func TestGate_Evaluate_LongestPrefixWins(t *testing.T) {
	t.Parallel()
	g := newTestGate(t)

	// team_member is allowed under /admin generally, but /admin/users is
	// narrowed to super_admin; the longer prefix decides.
	d := g.Evaluate("/admin/users", "/admin/users", principal(domainauth.RoleTeamMember))
	assert.Equal(t, OutcomeRedirectDashboard, d.Outcome)
	assert.Equal(t, "/admin/dashboard", d.Location)

	d = g.Evaluate("/admin/users", "/admin/users", principal(domainauth.RoleSuperAdmin))
	assert.Equal(t, OutcomeAllow, d.Outcome)
}

func TestGate_Evaluate_GeneralAdminRuleCoversSubpaths(t *testing.T) {
	t.Parallel()
	g := newTestGate(t)

	// /admin/analytics has no dedicated rule; the /admin rule applies.
	d := g.Evaluate("/admin/analytics", "/admin/analytics", principal(domainauth.RoleTeamMember))
	assert.Equal(t, OutcomeAllow, d.Outcome)

	d = g.Evaluate("/admin/analytics", "/admin/analytics", principal(domainauth.RoleContributor))
	assert.Equal(t, OutcomeRedirectDashboard, d.Outcome)
	assert.Equal(t, "/contribute/dashboard", d.Location)
}

func TestGate_Evaluate_ContributorSection(t *testing.T) {
	t.Parallel()
	g := newTestGate(t)

	for _, role := range []domainauth.Role{
		domainauth.RoleContributor,
		domainauth.RoleTeamMember,
		domainauth.RoleSuperAdmin,
	} {
		d := g.Evaluate("/contribute/dashboard", "/contribute/dashboard", principal(role))
		assert.Equal(t, OutcomeAllow, d.Outcome, "role %s", role)
	}
}

func TestGate_Evaluate_UnresolvedRoleFailsClosed(t *testing.T) {
	t.Parallel()
	g := newTestGate(t)

	// Authenticated, but no claim location yielded a usable role. The gate
	// must not grant protected access and sends the user to sign in again,
	// without a return target.
	pr := Principal{Authenticated: true}
	d := g.Evaluate("/admin/dashboard", "/admin/dashboard", pr)
	assert.Equal(t, OutcomeRedirectLogin, d.Outcome)
	assert.Equal(t, "/login", d.Location)
}

func TestGate_Evaluate_UnmatchedProtectedPathDefaultAllow(t *testing.T) {
	t.Parallel()
	g := newTestGate(t)

	// /profile has no permission entry: any authenticated principal with a
	// resolved role passes.
	for _, role := range []domainauth.Role{
		domainauth.RoleContributor,
		domainauth.RoleTeamMember,
		domainauth.RoleSuperAdmin,
	} {
		d := g.Evaluate("/profile", "/profile", principal(role))
		assert.Equal(t, OutcomeAllow, d.Outcome, "role %s", role)
	}
}

func TestGate_Evaluate_Idempotent(t *testing.T) {
	t.Parallel()
	g := newTestGate(t)

	pr := principal(domainauth.RoleTeamMember)
	first := g.Evaluate("/admin/users", "/admin/users", pr)
	second := g.Evaluate("/admin/users", "/admin/users", pr)
	assert.Equal(t, first, second)
}

func TestGate_Evaluate_UnknownRoleDashboardFallsBackToContributor(t *testing.T) {
	t.Parallel()
	g := newTestGate(t)

	// A role outside the dashboard table lands on the contributor default.
	pr := Principal{Authenticated: true, Role: domainauth.Role("auditor"), RoleResolved: true}
	d := g.Evaluate("/login", "/login", pr)
	assert.Equal(t, OutcomeRedirectDashboard, d.Outcome)
	assert.Equal(t, "/contribute/dashboard", d.Location)
}

func TestGate_New_Defaults(t *testing.T) {
	t.Parallel()
	g := New(Config{})

	d := g.Evaluate("/anything", "/anything", Principal{})
	assert.Equal(t, OutcomeRedirectLogin, d.Outcome)
	assert.Equal(t, "/login?redirect=%2Fanything", d.Location)
}
