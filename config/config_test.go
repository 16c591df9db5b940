package config

import (
	"reflect"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"

	domainauth "github.com/aromabase/aromabase/internal/domain/auth"
	"github.com/aromabase/aromabase/internal/gate"
)

func TestParsePermissionRules(t *testing.T) {
	tests := []struct {
		name        string
		input       []string
		expected    gate.PermissionTable
		expectError bool
	}{
		{
			name:  "single rule single role",
			input: []string{"/admin/users=super_admin"},
			expected: gate.PermissionTable{
				{Prefix: "/admin/users", Roles: []domainauth.Role{domainauth.RoleSuperAdmin}},
			},
		},
		{
			name:  "multiple roles pipe separated",
			input: []string{"/admin=team_member|super_admin"},
			expected: gate.PermissionTable{
				{Prefix: "/admin", Roles: []domainauth.Role{domainauth.RoleTeamMember, domainauth.RoleSuperAdmin}},
			},
		},
		{
			name:  "declaration order preserved",
			input: []string{"/admin=team_member", "/admin/users=super_admin"},
			expected: gate.PermissionTable{
				{Prefix: "/admin", Roles: []domainauth.Role{domainauth.RoleTeamMember}},
				{Prefix: "/admin/users", Roles: []domainauth.Role{domainauth.RoleSuperAdmin}},
			},
		},
		{
			name:  "entries with spaces",
			input: []string{" /admin = team_member | super_admin "},
			expected: gate.PermissionTable{
				{Prefix: "/admin", Roles: []domainauth.Role{domainauth.RoleTeamMember, domainauth.RoleSuperAdmin}},
			},
		},
		{
			name:     "empty entries skipped",
			input:    []string{"", "  "},
			expected: nil,
		},
		{
			name:        "missing separator",
			input:       []string{"/admin"},
			expectError: true,
		},
		{
			name:        "prefix without leading slash",
			input:       []string{"admin=team_member"},
			expectError: true,
		},
		{
			name:        "unknown role",
			input:       []string{"/admin=owner"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parsePermissionRules(tt.input)

			if tt.expectError {
				if err == nil {
					t.Errorf("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("unexpected table:\nexpected: %#v\ngot:      %#v", tt.expected, result)
			}
		})
	}
}

func TestParseDashboardRoutes(t *testing.T) {
	tests := []struct {
		name        string
		input       []string
		expected    gate.DashboardTable
		expectError bool
	}{
		{
			name:  "full table",
			input: []string{"contributor=/contribute/dashboard", "team_member=/admin/dashboard", "super_admin=/admin/dashboard"},
			expected: gate.DashboardTable{
				domainauth.RoleContributor: "/contribute/dashboard",
				domainauth.RoleTeamMember:  "/admin/dashboard",
				domainauth.RoleSuperAdmin:  "/admin/dashboard",
			},
		},
		{
			name:  "entries with spaces",
			input: []string{" contributor = /contribute/dashboard "},
			expected: gate.DashboardTable{
				domainauth.RoleContributor: "/contribute/dashboard",
			},
		},
		{
			name:        "unknown role",
			input:       []string{"auditor=/audit"},
			expectError: true,
		},
		{
			name:        "path without leading slash",
			input:       []string{"contributor=dashboard"},
			expectError: true,
		},
		{
			name:        "missing separator",
			input:       []string{"contributor"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseDashboardRoutes(tt.input)

			if tt.expectError {
				if err == nil {
					t.Errorf("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("unexpected table:\nexpected: %#v\ngot:      %#v", tt.expected, result)
			}
		})
	}
}

func TestGateConfig_BuildDefaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}

	built, err := cfg.Gate.Build()
	if err != nil {
		t.Fatalf("build gate config: %v", err)
	}

	if built.LoginPath != "/login" {
		t.Errorf("expected default login path /login, got %q", built.LoginPath)
	}
	if built.RedirectParam != "redirect" {
		t.Errorf("expected default redirect param, got %q", built.RedirectParam)
	}
	if len(built.Permissions) != 4 {
		t.Errorf("expected 4 default permission rules, got %d", len(built.Permissions))
	}
	if built.Permissions[0].Prefix != "/admin" {
		t.Errorf("expected first rule prefix /admin, got %q", built.Permissions[0].Prefix)
	}
	if built.Dashboards[domainauth.RoleContributor] != "/contribute/dashboard" {
		t.Errorf("unexpected contributor dashboard: %q", built.Dashboards[domainauth.RoleContributor])
	}

	// Health endpoint must stay reachable for probes.
	found := false
	for _, p := range built.SkipExact {
		if p == "/healthz" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected /healthz in default skip list, got %v", built.SkipExact)
	}

	// The sign-in flow itself must bypass the gate or login is impossible.
	g := gate.New(built)
	if !g.ShouldSkip("/auth/login") {
		t.Errorf("expected /auth/login to be a skip path with default prefixes %v", built.SkipPrefixes)
	}
	if !g.ShouldSkip("/auth/callback") {
		t.Errorf("expected /auth/callback to be a skip path with default prefixes %v", built.SkipPrefixes)
	}
}

func TestAppConfig_ParseAuthEnv(t *testing.T) {
	t.Setenv("AUTH_MODE", "oauth")
	t.Setenv("AUTH_SESSION_TTL", "12h")
	t.Setenv("AUTH_SESSION_COOKIE_NAME", "ab_session")
	t.Setenv("AUTH_ROLE_CLAIM_PATHS", "user_metadata.role,app_metadata.role,role")
	t.Setenv("OAUTH_CLIENT_ID", "app-client")
	t.Setenv("OAUTH_CLIENT_SECRET", "super-secret")
	t.Setenv("OAUTH_REDIRECT_URL", "https://app.example.com/auth/callback")
	t.Setenv("OAUTH_DISCOVERY_URL", "https://login.example.com/.well-known/openid-configuration")
	t.Setenv("OAUTH_SCOPE", "openid profile email")
	t.Setenv("DEV_AUTH_USER_ID", "dev-user")
	t.Setenv("DEV_AUTH_EMAIL", "dev@example.com")
	t.Setenv("DEV_AUTH_ROLE", "team_member")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}

	expected := AuthConfig{
		Mode: AuthModeOAuth,
		OAuth: OAuthConfig{
			ClientID:     "app-client",
			ClientSecret: "super-secret",
			RedirectURL:  "https://app.example.com/auth/callback",
			Scope:        "openid profile email",
			DiscoveryURL: "https://login.example.com/.well-known/openid-configuration",
		},
		DevAuth: DevAuthConfig{
			UserID:      "dev-user",
			Email:       "dev@example.com",
			DisplayName: "Dev User",
			Role:        "team_member",
		},
		SessionTTL:        12 * time.Hour,
		SessionCookieName: "ab_session",
		RoleClaimPaths:    []string{"user_metadata.role", "app_metadata.role", "role"},
	}

	if !reflect.DeepEqual(cfg.Auth, expected) {
		t.Fatalf("unexpected auth configuration:\nexpected: %#v\ngot:      %#v", expected, cfg.Auth)
	}
}

func TestAuthMode_UnmarshalText(t *testing.T) {
	tests := []struct {
		input       string
		expected    AuthMode
		expectError bool
	}{
		{input: "oauth", expected: AuthModeOAuth},
		{input: "OAuth", expected: AuthModeOAuth},
		{input: "mock", expected: AuthModeMock},
		{input: "saml", expectError: true},
		{input: "", expectError: true},
	}
	for _, tt := range tests {
		var m AuthMode
		err := m.UnmarshalText([]byte(tt.input))
		if tt.expectError {
			if err == nil {
				t.Errorf("input %q: expected error but got none", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("input %q: unexpected error: %v", tt.input, err)
			continue
		}
		if m != tt.expected {
			t.Errorf("input %q: expected %q, got %q", tt.input, tt.expected, m)
		}
	}
}

func TestAuthConfig_Sanitize(t *testing.T) {
	cfg := AuthConfig{
		SessionTTL:        time.Second,
		SessionCookieName: "  ",
		RoleClaimPaths:    []string{" ", ""},
	}

	cfg.Sanitize()

	if cfg.SessionTTL != time.Minute {
		t.Errorf("expected session TTL floor of 1m, got %v", cfg.SessionTTL)
	}
	if cfg.SessionCookieName != "session_id" {
		t.Errorf("expected cookie name fallback, got %q", cfg.SessionCookieName)
	}
	if len(cfg.RoleClaimPaths) != 3 || cfg.RoleClaimPaths[0] != "user_metadata.role" {
		t.Errorf("expected default claim paths, got %v", cfg.RoleClaimPaths)
	}
}

func TestAppConfig_SanitizeDevMode(t *testing.T) {
	cfg := AppConfig{IsDev: true}
	cfg.HTTP.CookieSecure = true

	cfg.Sanitize()

	if cfg.HTTP.CookieSecure {
		t.Fatal("expected secure cookies to be disabled in dev mode")
	}
}

func TestAppConfig_DetectDevModeFromNodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	cfg := AppConfig{}
	cfg.Sanitize()

	if !cfg.IsDev {
		t.Fatal("expected NODE_ENV=development to enable dev mode")
	}
}

func TestGateConfig_Sanitize(t *testing.T) {
	cfg := GateConfig{LoginPath: " ", RedirectParam: ""}
	cfg.Sanitize()

	if cfg.LoginPath != "/login" {
		t.Errorf("expected login path fallback, got %q", cfg.LoginPath)
	}
	if cfg.RedirectParam != "redirect" {
		t.Errorf("expected redirect param fallback, got %q", cfg.RedirectParam)
	}
}
