package gate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/aromabase/aromabase/internal/domain/auth"
)

// stubResolver is a scripted PrincipalResolver that counts lookups.
type stubResolver struct {
	sess      *domainauth.Session
	refreshed []*http.Cookie
	err       error
	calls     int
}

func (s *stubResolver) Resolve(context.Context, *http.Request) (*domainauth.Session, []*http.Cookie, error) {
	s.calls++
	return s.sess, s.refreshed, s.err
}

// stubRoles maps any claims to a fixed role.
type stubRoles struct {
	role domainauth.Role
	ok   bool
}

func (s stubRoles) Map(map[string]any) (domainauth.Role, bool) { return s.role, s.ok }

func testSession() *domainauth.Session {
	return &domainauth.Session{
		ID:        "sess-1",
		UserID:    "subject-1",
		Email:     "user@example.com",
		Claims:    map[string]any{"user_metadata": map[string]any{"role": "team_member"}},
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func newMiddleware(t *testing.T, resolver *stubResolver, roles stubRoles) (http.Handler, *bool) {
	t.Helper()

	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})

	mw := Middleware(MiddlewareOptions{
		Gate:     newTestGate(t),
		Resolver: resolver,
		Roles:    roles,
	})
	return mw(next), &reached
}

func TestMiddleware_SkipPathNeverResolvesIdentity(t *testing.T) {
	t.Parallel()

	resolver := &stubResolver{}
	handler, reached := newMiddleware(t, resolver, stubRoles{})

	req := httptest.NewRequest(http.MethodGet, "/_next/static/chunk.js", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.True(t, *reached)
	assert.Zero(t, resolver.calls, "skip paths must bypass the identity lookup")
}

func TestMiddleware_UnauthenticatedRedirectsToLogin(t *testing.T) {
	t.Parallel()

	resolver := &stubResolver{}
	handler, reached := newMiddleware(t, resolver, stubRoles{})

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.False(t, *reached)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?redirect=%2Fadmin%2Fdashboard", rec.Header().Get("Location"))
}

func TestMiddleware_ResolverErrorFailsClosed(t *testing.T) {
	t.Parallel()

	// An unreachable session store resolves to unauthenticated, never a 500.
	resolver := &stubResolver{err: errors.New("redis: connection refused")}
	handler, reached := newMiddleware(t, resolver, stubRoles{})

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.False(t, *reached)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?redirect=%2Fadmin%2Fdashboard", rec.Header().Get("Location"))
}

func TestMiddleware_AllowedRequestCarriesSession(t *testing.T) {
	t.Parallel()

	resolver := &stubResolver{sess: testSession()}

	var got *domainauth.Session
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = SessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := Middleware(MiddlewareOptions{
		Gate:     newTestGate(t),
		Resolver: resolver,
		Roles:    stubRoles{role: domainauth.RoleTeamMember, ok: true},
	})(next)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "sess-1", got.ID)
}

func TestMiddleware_RefreshedCookiesSurviveRedirects(t *testing.T) {
	t.Parallel()

	renewed := &http.Cookie{Name: "session_id", Value: "sess-1", Path: "/", MaxAge: 3600}

	tests := []struct {
		name  string
		path  string
		roles stubRoles
	}{
		// Allowed request
		{"allow", "/admin/dashboard", stubRoles{role: domainauth.RoleTeamMember, ok: true}},
		// Insufficient role: redirected to dashboard, cookie still written
		{"dashboard redirect", "/admin/users", stubRoles{role: domainauth.RoleTeamMember, ok: true}},
		// Unresolved role: redirected to login, cookie still written
		{"login redirect", "/admin/dashboard", stubRoles{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			resolver := &stubResolver{sess: testSession(), refreshed: []*http.Cookie{renewed}}
			handler, _ := newMiddleware(t, resolver, tc.roles)

			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			cookies := rec.Result().Cookies()
			require.Len(t, cookies, 1)
			assert.Equal(t, "session_id", cookies[0].Name)
			assert.Equal(t, "sess-1", cookies[0].Value)
		})
	}
}

func TestMiddleware_InsufficientRoleRedirectsToOwnDashboard(t *testing.T) {
	t.Parallel()

	resolver := &stubResolver{sess: testSession()}
	handler, reached := newMiddleware(t, resolver, stubRoles{role: domainauth.RoleContributor, ok: true})

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.False(t, *reached)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/contribute/dashboard", rec.Header().Get("Location"))
}

func TestSafeReturnURI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"/admin/dashboard", "/admin/dashboard"},
		{"/admin/perfumes?status=pending", "/admin/perfumes?status=pending"},
		// A path starting with "//" reads as a protocol-relative URL once it
		// lands in a Location header; it must not survive as a return target.
		{"//evil.example/phish", "/"},
	}
	for _, tc := range tests {
		req := httptest.NewRequest(http.MethodGet, "http://localhost"+tc.in, nil)
		assert.Equal(t, tc.want, safeReturnURI(req), "in=%s", tc.in)
	}
}
