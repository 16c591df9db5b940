package httpx

import (
	"net/http"

	domainauth "github.com/aromabase/aromabase/internal/domain/auth"
	apperrors "github.com/aromabase/aromabase/internal/errors"
	"github.com/aromabase/aromabase/internal/gate"
	"github.com/aromabase/aromabase/internal/ports"
)

// RequireRole wraps a handler with a role check against the session placed in
// the request context by the access gate. The gate redirects unauthenticated
// browsers before a handler runs; this guards individual API operations whose
// required role is stricter than the path-prefix table, so a contributor
// cannot, for example, change user roles or review submissions. The role is
// re-derived from session claims on every call, same as the gate does.
func RequireRole(roles ports.RoleMapper, allowed ...domainauth.Role) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			sess, ok := gate.SessionFromContext(r.Context())
			if !ok {
				WriteServiceError(w, apperrors.Unauthorized("authentication required"))
				return
			}
			role, resolved := roles.Map(sess.Claims)
			if !resolved {
				WriteServiceError(w, apperrors.Forbidden("no resolvable role"))
				return
			}
			for _, a := range allowed {
				if role == a {
					next(w, r)
					return
				}
			}
			WriteServiceError(w, apperrors.Forbidden("insufficient role for this operation"))
		}
	}
}
