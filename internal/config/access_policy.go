package config

import (
	"strings"

	"agrirent-backend/internal/domain"
)

type AccessLevel int

const (
	AccessPublic  AccessLevel = iota // No session needed
	AccessSession                    // Signed-in user, optionally with a role
	AccessService                    // Service key required
)

// RouteRule binds a path prefix to the access it requires.
type RouteRule struct {
	Prefix string
	Level  AccessLevel
	// Roles, when non-empty, restricts the route to these roles.
	Roles []domain.Role
	// MismatchRedirect is where a signed-in user without the role is sent.
	MismatchRedirect string
	// ProfileOptional admits a valid token whose profile is not readable yet.
	// The handler owns the profile lookup.
	ProfileOptional bool
}

const LoginPath = "/auth/login"

// RouteRules is the single source of truth for route protection.
// Longer prefixes win over shorter ones.
var RouteRules = []RouteRule{
	{Prefix: "/service/health", Level: AccessPublic},
	{Prefix: "/service", Level: AccessService},

	{Prefix: "/dashboard", Level: AccessSession, ProfileOptional: true},
	{Prefix: "/bookings", Level: AccessSession},
	{Prefix: "/booking/checkout", Level: AccessSession},
	{Prefix: "/booking/success", Level: AccessSession},

	{Prefix: "/owner", Level: AccessSession, Roles: []domain.Role{domain.RoleOwner}, MismatchRedirect: LoginPath},
	{Prefix: "/admin", Level: AccessSession, Roles: []domain.Role{domain.RoleAdmin}, MismatchRedirect: LoginPath},
}

// RuleFor returns the rule governing path. Unlisted paths are public.
func RuleFor(path string) RouteRule {
	best := RouteRule{Level: AccessPublic}
	for _, rule := range RouteRules {
		if matchesPrefix(path, rule.Prefix) && len(rule.Prefix) > len(best.Prefix) {
			best = rule
		}
	}
	return best
}

func matchesPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// Allows reports whether role satisfies the rule's role restriction.
func (r RouteRule) Allows(role domain.Role) bool {
	if len(r.Roles) == 0 {
		return true
	}
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// Decision is the outcome of Authorize for a page request.
type Decision struct {
	Allowed bool
	// Redirect is set when the request must be bounced.
	Redirect string
	// PreserveTarget asks the caller to append the original path as ?redirect=.
	PreserveTarget bool
}

// Authorize evaluates a session-level rule. role is empty when there is no session.
// Service-level rules are not decided here.
func Authorize(rule RouteRule, authenticated bool, role domain.Role) Decision {
	if rule.Level != AccessSession {
		return Decision{Allowed: true}
	}
	if !authenticated {
		return Decision{Redirect: LoginPath, PreserveTarget: true}
	}
	if !rule.Allows(role) {
		target := rule.MismatchRedirect
		if target == "" {
			target = LoginPath
		}
		return Decision{Redirect: target}
	}
	return Decision{Allowed: true}
}
