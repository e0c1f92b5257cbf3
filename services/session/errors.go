package session

import "errors"

var (
	// ErrNotAuthenticated is returned when an operation requires an
	// identity and the session has none.
	ErrNotAuthenticated = errors.New("session: not authenticated")

	// ErrRoleAlreadySet is returned when a resolved session attempts to
	// select a different role. Roles are fixed after initial selection.
	ErrRoleAlreadySet = errors.New("session: role already set")

	// ErrInvalidRole is returned for roles other than customer or provider.
	ErrInvalidRole = errors.New("session: invalid role")
)
