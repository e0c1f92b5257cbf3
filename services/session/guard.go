package session

import (
	"strings"

	"tiffinpro/models"
)

// Client-side route paths served by the SPA.
const (
	RouteLanding        = "/"
	RouteSelectRole     = "/select-role"
	RouteBrowse         = "/browse"
	RouteMyApplications = "/my-applications"
	RouteDashboard      = "/provider/dashboard"
	RouteService        = "/provider/service"
	RouteApplications   = "/provider/applications"
	RouteMenu           = "/provider/menu"
	RouteReviews        = "/provider/reviews"
)

// Decision is the outcome of an authorization check. Exactly one of Allow,
// Wait or a non-empty Redirect applies.
type Decision struct {
	Allow    bool   `json:"allow"`
	Wait     bool   `json:"wait,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

// HomePath is where an identity with the given role lands. Identities
// without a role are sent to role selection.
func HomePath(role models.Role) string {
	switch role {
	case models.RoleCustomer:
		return RouteBrowse
	case models.RoleProvider:
		return RouteDashboard
	default:
		return RouteSelectRole
	}
}

// Authorize decides whether a role may enter a route requiring the given
// role. Pure function: no side effects, the same inputs always yield the
// same decision. While resolution is still loading the answer is Wait, a
// deliberate suspension rather than a redirect. An unauthorized role is sent
// to its own home, never to a denial screen.
func Authorize(state State, role models.Role, required models.Role) Decision {
	if state == StateUninitialized || state == StateLoading {
		return Decision{Wait: true}
	}
	if !role.Valid() {
		return Decision{Redirect: RouteSelectRole}
	}
	if required.Valid() && role != required {
		return Decision{Redirect: HomePath(role)}
	}
	return Decision{Allow: true}
}

// requiredRoleFor maps a client path to the role it requires. The bool
// result distinguishes known routes from the catch-all.
func requiredRoleFor(path string) (models.Role, bool) {
	switch path {
	case RouteBrowse, RouteMyApplications:
		return models.RoleCustomer, true
	case RouteDashboard, RouteService, RouteApplications, RouteMenu, RouteReviews:
		return models.RoleProvider, true
	}
	if strings.HasPrefix(path, "/service/") && len(path) > len("/service/") {
		return models.RoleCustomer, true
	}
	return models.RoleUnset, false
}

// ResolveRoute applies the full route table: landing is public, unknown
// paths fall through to the landing page, role selection bounces already
// resolved roles to their home, and everything else defers to Authorize.
func ResolveRoute(path string, state State, role models.Role) Decision {
	if path == RouteLanding {
		return Decision{Allow: true}
	}

	if path == RouteSelectRole {
		if state == StateUninitialized || state == StateLoading {
			return Decision{Wait: true}
		}
		if role.Valid() {
			return Decision{Redirect: HomePath(role)}
		}
		return Decision{Allow: true}
	}

	required, known := requiredRoleFor(path)
	if !known {
		return Decision{Redirect: RouteLanding}
	}
	return Authorize(state, role, required)
}
