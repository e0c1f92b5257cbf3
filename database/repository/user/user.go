package userRepo

import (
	"context"

	"tiffinpro/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines persistence operations for user profiles. Profiles
// are keyed by the identity provider's uid and are never deleted.
type UserRepository interface {
	// GetByUID retrieves a profile by identity uid. Returns (nil, nil) when
	// no record exists.
	GetByUID(ctx context.Context, uid string) (*models.UserProfile, error)
	// Merge writes the given fields into the profile record with
	// insert-or-update semantics: existing records are updated field by
	// field, a missing record is created.
	Merge(ctx context.Context, uid string, fields bson.M) error
}
