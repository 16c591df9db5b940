package gate

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	domainauth "github.com/aromabase/aromabase/internal/domain/auth"
	"github.com/aromabase/aromabase/internal/ports"
)

// PrincipalResolver resolves the caller's session from request cookies.
// Implementations call the identity provider / session store; a nil session
// with nil error means "no usable session". Refreshed holds cookies that must
// be written onto the response regardless of the routing decision, so a
// renewed session token survives redirects.
type PrincipalResolver interface {
	Resolve(ctx context.Context, r *http.Request) (sess *domainauth.Session, refreshed []*http.Cookie, err error)
}

// MiddlewareOptions groups dependencies for the gate middleware.
type MiddlewareOptions struct {
	Gate     *Gate
	Resolver PrincipalResolver
	Roles    ports.RoleMapper
	Logger   *slog.Logger
}

// Middleware returns the edge authorization middleware. It evaluates the gate
// for every request and either forwards to next or issues a redirect. The
// gate never surfaces an error to the caller: identity lookup failures
// resolve to "unauthenticated" and end in a redirect, not an error page.
func Middleware(opts MiddlewareOptions) func(http.Handler) http.Handler {
	g := opts.Gate
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := r.URL.Path

			// Skip paths bypass the identity lookup entirely.
			if g.ShouldSkip(p) {
				next.ServeHTTP(w, r)
				return
			}

			sess, refreshed, err := opts.Resolver.Resolve(r.Context(), r)
			if err != nil {
				// Fail closed: an unreachable identity provider means
				// unauthenticated, never an error page.
				logger.DebugContext(r.Context(), "identity lookup failed, treating as unauthenticated",
					slog.String("path", p), slog.Any("error", err))
				sess = nil
			}

			// Renewed session cookies ride along on every outcome,
			// redirects included.
			for _, c := range refreshed {
				http.SetCookie(w, c)
			}

			pr := Principal{Authenticated: sess != nil}
			if sess != nil {
				if role, ok := opts.Roles.Map(sess.Claims); ok {
					pr.Role = role
					pr.RoleResolved = true
				}
			}

			decision := g.Evaluate(p, safeReturnURI(r), pr)
			switch decision.Outcome {
			case OutcomeRedirectLogin, OutcomeRedirectDashboard:
				http.Redirect(w, r, decision.Location, http.StatusSeeOther)
			default:
				if sess != nil {
					r = r.WithContext(SetSessionInContext(r.Context(), sess))
				}
				next.ServeHTTP(w, r)
			}
		})
	}
}

// safeReturnURI derives the post-login return target from the request,
// rejecting anything that is not a same-origin relative path.
func safeReturnURI(r *http.Request) string {
	uri := r.URL.RequestURI()
	if uri == "" {
		return "/"
	}
	u, err := url.Parse(uri)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	return uri
}

// sessionKey is an unexported context key type to avoid collisions across
// packages. The gate owns the key; handlers read it via SessionFromContext.
type sessionKey struct{}

// SetSessionInContext returns a child context carrying the given session.
// If session is nil, the original ctx is returned unchanged.
func SetSessionInContext(ctx context.Context, sess *domainauth.Session) context.Context {
	if sess == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, sess)
}

// SessionFromContext returns the session placed by the middleware and a
// boolean indicating presence.
func SessionFromContext(ctx context.Context) (*domainauth.Session, bool) {
	if sess, ok := ctx.Value(sessionKey{}).(*domainauth.Session); ok && sess != nil {
		return sess, true
	}
	return nil, false
}
