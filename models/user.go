package models

import "time"

// Role is fixed per identity after initial selection.
type Role string

const (
	RoleUnset    Role = ""
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
)

// Valid reports whether r is one of the two selectable roles.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleProvider
}

// Location is a coarse city/area pair attached to users and services.
type Location struct {
	City string `bson:"city" json:"city"`
	Area string `bson:"area,omitempty" json:"area,omitempty"`
}

// UserProfile is the stored profile for an authenticated identity.
// The document id is the identity provider's uid; the record is created on
// first role selection and the role is never re-selected afterwards.
type UserProfile struct {
	UID       string    `bson:"uid" json:"uid"`
	Email     string    `bson:"email" json:"email"`
	Name      string    `bson:"name" json:"name"`
	Role      Role      `bson:"role" json:"role"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Location  Location  `bson:"location,omitempty" json:"location,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Identity is what the identity provider vouches for: a stable uid plus
// profile claims. It carries no role; that lives in the users collection.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
