package gate

import (
	"path"
	"strings"

	domainauth "github.com/aromabase/aromabase/internal/domain/auth"
)

// PermissionRule maps a path prefix to the set of roles allowed under it.
// Rules are not mutually exclusive; resolution picks the longest matching
// prefix, with declaration order breaking ties between equal-length prefixes.
type PermissionRule struct {
	Prefix string
	Roles  []domainauth.Role
}

// Allows reports whether the rule's allowed set contains the role.
func (r PermissionRule) Allows(role domainauth.Role) bool {
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// PermissionTable is an ordered list of permission rules. Order matters only
// for equal-length prefixes: the first declared rule wins.
type PermissionTable []PermissionRule

// Match returns the most specific (longest-prefix) rule covering p, or false
// when no rule matches. A path with no matching rule is implicitly accessible
// to any authenticated principal; callers own that default-allow decision.
func (t PermissionTable) Match(p string) (PermissionRule, bool) {
	var best PermissionRule
	found := false
	for _, rule := range t {
		if !prefixMatches(p, rule.Prefix) {
			continue
		}
		// Strictly longer wins; equal length keeps the earlier declaration.
		if !found || len(rule.Prefix) > len(best.Prefix) {
			best = rule
			found = true
		}
	}
	return best, found
}

// prefixMatches reports whether p falls under prefix using path-segment
// semantics: "/admin" covers "/admin" and "/admin/users" but not "/administer".
func prefixMatches(p, prefix string) bool {
	if prefix == "" {
		return false
	}
	if prefix == "/" {
		return true
	}
	prefix = strings.TrimSuffix(prefix, "/")
	if p == prefix {
		return true
	}
	return strings.HasPrefix(p, prefix+"/")
}

// DashboardTable maps each role to its default landing page.
// Every role has exactly one entry; unrecognized roles fall back to the
// contributor default.
type DashboardTable map[domainauth.Role]string

// For returns the default landing page for role, falling back to the
// contributor entry when the role has no mapping of its own.
func (d DashboardTable) For(role domainauth.Role) string {
	if p, ok := d[role]; ok && p != "" {
		return p
	}
	return d[domainauth.RoleContributor]
}

// hasNonHTMLExtension reports whether p names a file with an extension other
// than .html. Such paths are static assets and bypass auth evaluation.
func hasNonHTMLExtension(p string) bool {
	ext := path.Ext(p)
	if ext == "" {
		return false
	}
	return !strings.EqualFold(ext, ".html")
}
