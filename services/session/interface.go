package session

import (
	"context"

	userRepo "tiffinpro/database/repository/user"
	"tiffinpro/models"
)

// SetRoleInput carries the extra profile fields collected at role selection.
type SetRoleInput struct {
	Phone    string          `json:"phone"`
	Location models.Location `json:"location"`
}

// RoleService defines the role resolution lifecycle for authenticated
// identities. It is the authority every authorization decision derives from.
type RoleService interface {
	// Resolve moves the session from loading to resolved or unresolved by
	// looking up the identity's stored profile. A store failure leaves the
	// session unresolved (treated as signed-out for routing) and is
	// returned to the caller.
	Resolve(ctx context.Context, sess *Session, identity *models.Identity) error
	// SetRole merge-writes the identity's profile with the selected role.
	// The role is set at most once: selecting a different role later fails
	// with ErrRoleAlreadySet, while repeating the identical selection is
	// idempotent. On store failure the session keeps its prior state.
	SetRole(ctx context.Context, sess *Session, role models.Role, extra SetRoleInput) (*models.UserProfile, error)
	// Teardown clears the session on sign-out.
	Teardown(sess *Session)
}

// DefaultRoleService is the production implementation.
type DefaultRoleService struct {
	Repo userRepo.UserRepository
}
