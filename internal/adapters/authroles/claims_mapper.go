package authroles

// Package authroles maps IdP claims documents to application roles.

import (
	"fmt"

	jmespath "github.com/jmespath-community/go-jmespath"

	domainauth "github.com/aromabase/aromabase/internal/domain/auth"
)

// Default claim locations, in priority order: role chosen at signup time,
// then the server-assigned claim, then the legacy flat claim kept for
// sessions issued before the metadata split.
var defaultClaimPaths = []string{
	"user_metadata.role",
	"app_metadata.role",
	"role",
}

// ClaimsRoleMapper extracts a role from a claims document by evaluating an
// ordered list of JMESPath expressions and taking the first non-empty string
// result. A value outside the closed role set resolves to "no role": the
// mapper fails closed rather than granting a default.
type ClaimsRoleMapper struct {
	paths []jmespath.JMESPath
}

// NewClaimsRoleMapper compiles the given claim-location expressions. With no
// arguments the default locations are used. Compilation errors surface at
// construction so a bad expression cannot silently drop a claim location.
func NewClaimsRoleMapper(claimPaths ...string) (*ClaimsRoleMapper, error) {
	if len(claimPaths) == 0 {
		claimPaths = defaultClaimPaths
	}
	compiled := make([]jmespath.JMESPath, 0, len(claimPaths))
	for _, p := range claimPaths {
		expr, err := jmespath.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compile claim path %q: %w", p, err)
		}
		compiled = append(compiled, expr)
	}
	return &ClaimsRoleMapper{paths: compiled}, nil
}

// Map evaluates the claim locations in order and short-circuits at the first
// non-empty value found. That value must parse into the closed role set;
// anything else (absent everywhere, or present but unrecognized) yields
// ok=false so the caller fails closed.
func (m *ClaimsRoleMapper) Map(claims map[string]any) (domainauth.Role, bool) {
	if len(claims) == 0 {
		return "", false
	}
	for _, expr := range m.paths {
		out, err := expr.Search(claims)
		if err != nil {
			continue
		}
		raw, isString := out.(string)
		if !isString || raw == "" {
			continue
		}
		// First non-empty value wins; later locations are never consulted.
		role, valid := domainauth.ParseRole(raw)
		return role, valid
	}
	return "", false
}
