package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	domainauth "github.com/aromabase/aromabase/internal/domain/auth"
	"github.com/aromabase/aromabase/internal/domain/model"
	"github.com/aromabase/aromabase/internal/gate"
	"github.com/aromabase/aromabase/internal/ports"
	"github.com/aromabase/aromabase/internal/service"
)

var (
	errStateMismatch = errors.New("oauth state mismatch")
	errNonceMissing  = errors.New("oauth nonce cookie missing")
)

// AuthServiceInterface is the slice of the auth service the handlers consume.
type AuthServiceInterface interface {
	BeginLogin(ctx context.Context, redirectURL string) (*service.BeginLoginResult, error)
	CompleteLogin(ctx context.Context, input service.CompleteLoginInput) (*service.CompleteLoginResult, error)
	ResolveSession(ctx context.Context, sessionID string) (*domainauth.Session, bool, error)
	Logout(ctx context.Context, sessionID string) error
}

// UserProvisioner provisions platform accounts for authenticated subjects.
type UserProvisioner interface {
	Provision(ctx context.Context, req *model.CreateUserRequest) (*model.User, error)
}

// AuthHandlerOptions groups dependencies for AuthHandler.
type AuthHandlerOptions struct {
	Auth        AuthServiceInterface
	Users       UserProvisioner
	Roles       ports.RoleMapper
	Cookies     CookieSettings
	CallbackURL string
	Logger      *slog.Logger
}

// AuthHandler serves the login, callback, logout and status endpoints.
type AuthHandler struct {
	auth        AuthServiceInterface
	users       UserProvisioner
	roles       ports.RoleMapper
	cookies     CookieSettings
	callbackURL string
	logger      *slog.Logger
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(opts AuthHandlerOptions) *AuthHandler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		auth:        opts.Auth,
		users:       opts.Users,
		roles:       opts.Roles,
		cookies:     opts.Cookies,
		callbackURL: opts.CallbackURL,
		logger:      logger,
	}
}

// Login begins the sign-in flow: it stashes state/nonce (and the post-login
// destination) in short-lived cookies and forwards to the identity provider.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	result, err := h.auth.BeginLogin(r.Context(), h.callbackURL)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "begin login failed", slog.Any("error", err))
		WriteError(w, ErrorParams{Code: http.StatusBadGateway, ErrCode: "auth_unavailable", Err: err})
		return
	}

	redirect := safeRedirectPath(r.URL.Query().Get("redirect"))
	h.cookies.setOAuthCookies(w, r, result.State, result.Nonce, redirect)
	http.Redirect(w, r, result.AuthURL, http.StatusSeeOther)
}

// Callback completes the sign-in flow: it validates state against the cookie,
// exchanges the code, provisions the platform account on first sign-in, issues
// the session cookie and returns the user to their original destination.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")

	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != state {
		h.cookies.clearOAuthCookies(w, r)
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "state_mismatch", Err: errStateMismatch})
		return
	}
	nonceCookie, err := r.Cookie(oauthNonceCookie)
	if err != nil || nonceCookie.Value == "" {
		h.cookies.clearOAuthCookies(w, r)
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "nonce_missing", Err: errNonceMissing})
		return
	}

	result, err := h.auth.CompleteLogin(r.Context(), service.CompleteLoginInput{
		Code:  code,
		State: state,
		Nonce: nonceCookie.Value,
	})
	if err != nil {
		h.logger.ErrorContext(r.Context(), "complete login failed", slog.Any("error", err))
		h.cookies.clearOAuthCookies(w, r)
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "login_failed", Err: err})
		return
	}

	sess := result.Session
	role := domainauth.RoleContributor
	if mapped, ok := h.roles.Map(sess.Claims); ok {
		role = mapped
	}
	if _, err := h.users.Provision(r.Context(), &model.CreateUserRequest{
		SubjectID:   sess.UserID,
		DisplayName: sess.DisplayName,
		Email:       sess.Email,
		Role:        role,
	}); err != nil {
		// Account provisioning is best-effort at login; the gate decides
		// access from the claims, not the local account row.
		h.logger.WarnContext(r.Context(), "account provisioning failed",
			slog.String("subject", sess.UserID), slog.Any("error", err))
	}

	redirect := "/"
	if c, cookieErr := r.Cookie(postLoginCookie); cookieErr == nil {
		redirect = safeRedirectPath(c.Value)
	}

	http.SetCookie(w, h.cookies.sessionCookie(r, &sess))
	h.cookies.clearOAuthCookies(w, r)
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

// Logout deletes the server-side session and clears the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.cookies.sessionName()); err == nil && cookie.Value != "" {
		if err := h.auth.Logout(r.Context(), cookie.Value); err != nil {
			h.logger.WarnContext(r.Context(), "logout failed", slog.Any("error", err))
		}
	}
	h.cookies.clearCookie(w, r, h.cookies.sessionName())
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Status reports the caller's authentication state and resolved role. The
// auth flow prefix bypasses the gate, so the session is resolved from the
// cookie here rather than read from the request context.
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	sess, ok := gate.SessionFromContext(r.Context())
	if !ok {
		cookie, err := r.Cookie(h.cookies.sessionName())
		if err != nil || cookie.Value == "" {
			WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
			return
		}
		resolved, refreshed, err := h.auth.ResolveSession(r.Context(), cookie.Value)
		if err != nil {
			WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
			return
		}
		if refreshed {
			http.SetCookie(w, h.cookies.sessionCookie(r, resolved))
		}
		sess = resolved
	}

	body := map[string]any{
		"authenticated": true,
		"user_id":       sess.UserID,
		"display_name":  sess.DisplayName,
		"email":         sess.Email,
	}
	if role, resolved := h.roles.Map(sess.Claims); resolved {
		body["role"] = role
	}
	WriteJSON(w, http.StatusOK, body)
}
