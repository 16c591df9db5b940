package httpx

import (
	"context"
	"net/http"

	domainauth "github.com/aromabase/aromabase/internal/domain/auth"
)

// SessionResolverService is the slice of the auth service the resolver needs.
type SessionResolverService interface {
	ResolveSession(ctx context.Context, sessionID string) (sess *domainauth.Session, refreshed bool, err error)
}

// SessionResolver adapts the auth service to the gate's principal lookup.
// When the service reports the session was renewed, the re-issued cookie is
// handed back so the middleware can write it on every outcome.
type SessionResolver struct {
	auth    SessionResolverService
	cookies CookieSettings
}

// NewSessionResolver constructs a SessionResolver.
func NewSessionResolver(auth SessionResolverService, cookies CookieSettings) *SessionResolver {
	return &SessionResolver{auth: auth, cookies: cookies}
}

// Resolve looks up the caller's session from the session cookie. A missing
// cookie is not an error: it resolves to no session.
func (sr *SessionResolver) Resolve(ctx context.Context, r *http.Request) (*domainauth.Session, []*http.Cookie, error) {
	cookie, err := r.Cookie(sr.cookies.sessionName())
	if err != nil || cookie.Value == "" {
		return nil, nil, nil
	}

	sess, refreshed, err := sr.auth.ResolveSession(ctx, cookie.Value)
	if err != nil {
		return nil, nil, err
	}

	var cookies []*http.Cookie
	if refreshed {
		cookies = append(cookies, sr.cookies.sessionCookie(r, sess))
	}
	return sess, cookies, nil
}
