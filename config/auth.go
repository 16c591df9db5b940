package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeOAuth uses OAuth/OIDC for authentication.
	AuthModeOAuth AuthMode = "oauth"
	// AuthModeMock uses mock/dev authentication (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oauth", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oauth, mock)", v)
	}
}

// OAuthConfig contains OAuth/OIDC configuration.
type OAuthConfig struct {
	ClientID     string `env:"CLIENT_ID"     envDefault:"aromabase"`
	ClientSecret string `env:"CLIENT_SECRET" envDefault:"aromabase"`
	RedirectURL  string `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/auth/callback"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
	LogoutURL    string `env:"LOGOUT_URL"`
}

// DevAuthConfig controls mock/dev authentication identity.
// Used when AUTH_MODE=mock for development and testing.
type DevAuthConfig struct {
	UserID      string `env:"USER_ID"      envDefault:"dev-user"`
	Email       string `env:"EMAIL"        envDefault:"dev@example.com"`
	DisplayName string `env:"DISPLAY_NAME" envDefault:"Dev User"`
	Role        string `env:"ROLE"         envDefault:"super_admin"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which authentication provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"oauth"`

	// OAuth configuration (used when Mode=oauth).
	OAuth OAuthConfig `envPrefix:"OAUTH_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// SessionTTL is the sliding session window. Sessions are renewed on
	// access once less than half the window remains.
	SessionTTL time.Duration `env:"AUTH_SESSION_TTL" envDefault:"8h"`

	// SessionCookieName is the name of the session cookie.
	SessionCookieName string `env:"AUTH_SESSION_COOKIE_NAME" envDefault:"session_id"`

	// RoleClaimPaths is the ordered list of claim locations consulted when
	// resolving a user's role. The first location holding a non-empty value
	// wins. Expressed as JMESPath expressions against the claims document.
	RoleClaimPaths []string `env:"AUTH_ROLE_CLAIM_PATHS" envDefault:"user_metadata.role,app_metadata.role,role" envSeparator:","`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.SessionTTL < time.Minute {
		a.SessionTTL = time.Minute
	}
	if strings.TrimSpace(a.SessionCookieName) == "" {
		a.SessionCookieName = "session_id"
	}
	paths := a.RoleClaimPaths[:0]
	for _, p := range a.RoleClaimPaths {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	a.RoleClaimPaths = paths
	if len(a.RoleClaimPaths) == 0 {
		a.RoleClaimPaths = []string{"user_metadata.role", "app_metadata.role", "role"}
	}
}
