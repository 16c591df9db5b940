package httpx

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/aromabase/aromabase/internal/domain/auth"
)

const (
	oauthStateCookie   = "oauth_state"
	oauthNonceCookie   = "oauth_nonce"
	postLoginCookie    = "post_login_redirect"
	oauthCookieMaxAge  = 600 // seconds; covers the round-trip to the IdP
	defaultSessionName = "session_id"
)

// CookieSettings carries the deployment-level cookie attributes shared by the
// auth handlers and the session resolver.
type CookieSettings struct {
	SessionName string
	Domain      string
	Secure      bool
}

func (c CookieSettings) sessionName() string {
	if c.SessionName == "" {
		return defaultSessionName
	}
	return c.SessionName
}

// isSecure reports whether the request arrived over TLS, directly or via a
// terminating proxy.
func isSecure(r *http.Request) bool {
	return r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"
}

func (c CookieSettings) secure(r *http.Request) bool {
	return c.Secure || isSecure(r)
}

// sessionCookie builds the session cookie for a freshly issued or renewed
// session. Max-Age tracks the session's absolute expiry.
func (c CookieSettings) sessionCookie(r *http.Request, sess *domainauth.Session) *http.Cookie {
	maxAge := int(time.Until(sess.ExpiresAt).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}
	return &http.Cookie{
		Name:     c.sessionName(),
		Value:    sess.ID,
		Path:     "/",
		Domain:   c.Domain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.secure(r),
		SameSite: http.SameSiteLaxMode,
	}
}

// setOAuthCookies stores the state/nonce pair (and optional post-login
// redirect) for the duration of the IdP round-trip.
func (c CookieSettings) setOAuthCookies(w http.ResponseWriter, r *http.Request, state, nonce, redirect string) {
	secure := c.secure(r)
	set := func(name, value string) {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    value,
			Path:     "/",
			Domain:   c.Domain,
			MaxAge:   oauthCookieMaxAge,
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
	set(oauthStateCookie, state)
	set(oauthNonceCookie, nonce)
	if redirect != "" {
		set(postLoginCookie, redirect)
	}
}

func (c CookieSettings) clearCookie(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   c.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure(r),
		SameSite: http.SameSiteLaxMode,
	})
}

func (c CookieSettings) clearOAuthCookies(w http.ResponseWriter, r *http.Request) {
	c.clearCookie(w, r, oauthStateCookie)
	c.clearCookie(w, r, oauthNonceCookie)
	c.clearCookie(w, r, postLoginCookie)
}

// safeRedirectPath validates a post-login redirect target. Only same-origin
// relative paths are allowed; anything else falls back to "/".
func safeRedirectPath(raw string) string {
	if raw == "" {
		return "/"
	}
	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return "/"
	}
	return u.RequestURI()
}
