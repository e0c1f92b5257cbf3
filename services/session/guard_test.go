package session

import (
	"testing"

	"tiffinpro/models"

	"github.com/stretchr/testify/assert"
)

func TestHomePath(t *testing.T) {
	assert.Equal(t, RouteBrowse, HomePath(models.RoleCustomer))
	assert.Equal(t, RouteDashboard, HomePath(models.RoleProvider))
	assert.Equal(t, RouteSelectRole, HomePath(models.RoleUnset))
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		role     models.Role
		required models.Role
		want     Decision
	}{
		{"waits while uninitialized", StateUninitialized, models.RoleUnset, models.RoleCustomer, Decision{Wait: true}},
		{"waits while loading", StateLoading, models.RoleUnset, models.RoleCustomer, Decision{Wait: true}},
		{"no role goes to selection", StateUnresolved, models.RoleUnset, models.RoleCustomer, Decision{Redirect: RouteSelectRole}},
		{"customer allowed on customer route", StateResolved, models.RoleCustomer, models.RoleCustomer, Decision{Allow: true}},
		{"provider allowed on provider route", StateResolved, models.RoleProvider, models.RoleProvider, Decision{Allow: true}},
		{"customer sent home from provider route", StateResolved, models.RoleCustomer, models.RoleProvider, Decision{Redirect: RouteBrowse}},
		{"provider sent home from customer route", StateResolved, models.RoleProvider, models.RoleCustomer, Decision{Redirect: RouteDashboard}},
		{"any role allowed when none required", StateResolved, models.RoleProvider, models.RoleUnset, Decision{Allow: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authorize(tt.state, tt.role, tt.required))
		})
	}
}

func TestAuthorizeIsDeterministic(t *testing.T) {
	first := Authorize(StateResolved, models.RoleCustomer, models.RoleProvider)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Authorize(StateResolved, models.RoleCustomer, models.RoleProvider))
	}
}

func TestResolveRoute(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		state State
		role  models.Role
		want  Decision
	}{
		{"landing is public", RouteLanding, StateUninitialized, models.RoleUnset, Decision{Allow: true}},
		{"select-role open without role", RouteSelectRole, StateUnresolved, models.RoleUnset, Decision{Allow: true}},
		{"select-role waits while loading", RouteSelectRole, StateLoading, models.RoleUnset, Decision{Wait: true}},
		{"select-role bounces customer home", RouteSelectRole, StateResolved, models.RoleCustomer, Decision{Redirect: RouteBrowse}},
		{"select-role bounces provider home", RouteSelectRole, StateResolved, models.RoleProvider, Decision{Redirect: RouteDashboard}},
		{"browse requires customer", RouteBrowse, StateResolved, models.RoleProvider, Decision{Redirect: RouteDashboard}},
		{"service detail requires customer", "/service/abc123", StateResolved, models.RoleCustomer, Decision{Allow: true}},
		{"service detail blocks provider", "/service/abc123", StateResolved, models.RoleProvider, Decision{Redirect: RouteDashboard}},
		{"dashboard requires provider", RouteDashboard, StateResolved, models.RoleCustomer, Decision{Redirect: RouteBrowse}},
		{"menu allowed for provider", RouteMenu, StateResolved, models.RoleProvider, Decision{Allow: true}},
		{"unknown path falls through to landing", "/no-such-page", StateResolved, models.RoleCustomer, Decision{Redirect: RouteLanding}},
		{"bare service prefix is unknown", "/service/", StateResolved, models.RoleCustomer, Decision{Redirect: RouteLanding}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveRoute(tt.path, tt.state, tt.role))
		})
	}
}
