package config

import (
	"fmt"
	"strings"

	domainauth "github.com/aromabase/aromabase/internal/domain/auth"
	"github.com/aromabase/aromabase/internal/gate"
)

// GateConfig contains access gate configuration. The defaults encode the
// platform's routing policy; overrides exist so operators can stage new
// sections without a rebuild.
//
// PermissionRules entries take the form "prefix=role|role"; declaration order
// breaks ties between equal-length prefixes. DashboardRoutes entries take the
// form "role=path".
type GateConfig struct {
	LoginPath     string `env:"GATE_LOGIN_PATH"     envDefault:"/login"`
	RedirectParam string `env:"GATE_REDIRECT_PARAM" envDefault:"redirect"`

	// The /auth/ prefix covers the whole sign-in flow (login, callback,
	// logout, status); those handlers manage identity themselves and must
	// stay reachable without a session.
	SkipPrefixes []string `env:"GATE_SKIP_PREFIXES" envDefault:"/_next/,/static/,/auth/" envSeparator:","`
	SkipExact    []string `env:"GATE_SKIP_EXACT"    envDefault:"/favicon.ico,/sitemap.xml,/robots.txt,/healthz" envSeparator:","`

	PublicPrefixes []string `env:"GATE_PUBLIC_PREFIXES" envDefault:"/login,/register,/forgot-password,/reset-password" envSeparator:","`

	PermissionRules []string `env:"GATE_PERMISSION_RULES" envDefault:"/admin=team_member|super_admin,/admin/users=super_admin,/admin/settings=super_admin,/contribute=contributor|team_member|super_admin" envSeparator:","`

	DashboardRoutes []string `env:"GATE_DASHBOARD_ROUTES" envDefault:"contributor=/contribute/dashboard,team_member=/admin/dashboard,super_admin=/admin/dashboard" envSeparator:","`
}

// Sanitize applies guardrails to gate configuration values.
func (g *GateConfig) Sanitize() {
	if strings.TrimSpace(g.LoginPath) == "" {
		g.LoginPath = "/login"
	}
	if strings.TrimSpace(g.RedirectParam) == "" {
		g.RedirectParam = "redirect"
	}
}

// Build parses the configured policy lists into a gate.Config.
func (g *GateConfig) Build() (gate.Config, error) {
	perms, err := parsePermissionRules(g.PermissionRules)
	if err != nil {
		return gate.Config{}, err
	}
	dashboards, err := parseDashboardRoutes(g.DashboardRoutes)
	if err != nil {
		return gate.Config{}, err
	}
	return gate.Config{
		LoginPath:      g.LoginPath,
		RedirectParam:  g.RedirectParam,
		SkipPrefixes:   trimEach(g.SkipPrefixes),
		SkipExact:      trimEach(g.SkipExact),
		PublicPrefixes: trimEach(g.PublicPrefixes),
		Permissions:    perms,
		Dashboards:     dashboards,
	}, nil
}

func parsePermissionRules(entries []string) (gate.PermissionTable, error) {
	var table gate.PermissionTable
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		prefix, rolesStr, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("invalid permission rule %q (want prefix=role|role)", entry)
		}
		prefix = strings.TrimSpace(prefix)
		if !strings.HasPrefix(prefix, "/") {
			return nil, fmt.Errorf("permission rule prefix %q must start with /", prefix)
		}
		var roles []domainauth.Role
		for _, r := range strings.Split(rolesStr, "|") {
			role, valid := domainauth.ParseRole(r)
			if !valid {
				return nil, fmt.Errorf("permission rule %q: unknown role %q", entry, r)
			}
			roles = append(roles, role)
		}
		if len(roles) == 0 {
			return nil, fmt.Errorf("permission rule %q has no roles", entry)
		}
		table = append(table, gate.PermissionRule{Prefix: prefix, Roles: roles})
	}
	return table, nil
}

func parseDashboardRoutes(entries []string) (gate.DashboardTable, error) {
	table := make(gate.DashboardTable)
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		roleStr, path, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("invalid dashboard route %q (want role=path)", entry)
		}
		role, valid := domainauth.ParseRole(roleStr)
		if !valid {
			return nil, fmt.Errorf("dashboard route %q: unknown role %q", entry, roleStr)
		}
		path = strings.TrimSpace(path)
		if !strings.HasPrefix(path, "/") {
			return nil, fmt.Errorf("dashboard route path %q must start with /", path)
		}
		table[role] = path
	}
	return table, nil
}

func trimEach(vals []string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
