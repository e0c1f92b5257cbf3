package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tiffinpro/models"
	"tiffinpro/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// State is the role resolution state of a session.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateResolved
	StateUnresolved
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateResolved:
		return "resolved"
	case StateUnresolved:
		return "unresolved"
	default:
		return "unknown"
	}
}

// Session holds one identity's resolved role and profile. Role and profile
// swap together under the mutex; readers never observe a half-updated pair.
type Session struct {
	mu       sync.RWMutex
	state    State
	identity *models.Identity
	role     models.Role
	profile  *models.UserProfile
}

// NewSession returns a session in the uninitialized state.
func NewSession() *Session {
	return &Session{state: StateUninitialized}
}

// Snapshot returns the state, role and profile as one consistent view.
func (s *Session) Snapshot() (State, models.Role, *models.UserProfile) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, s.role, s.profile
}

// Identity returns the authenticated identity, or nil when signed out.
func (s *Session) Identity() *models.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

func (s *Session) set(state State, identity *models.Identity, role models.Role, profile *models.UserProfile) {
	s.mu.Lock()
	s.state = state
	s.identity = identity
	s.role = role
	s.profile = profile
	s.mu.Unlock()
}

// Resolve looks up the stored profile for the identity and settles the
// session. A nil identity means signed-out: role and profile are cleared.
func (svc *DefaultRoleService) Resolve(ctx context.Context, sess *Session, identity *models.Identity) error {
	logger := utils.GetLogger()
	sess.set(StateLoading, identity, models.RoleUnset, nil)

	if identity == nil {
		sess.set(StateUnresolved, nil, models.RoleUnset, nil)
		return nil
	}

	profile, err := svc.Repo.GetByUID(ctx, identity.UID)
	if err != nil {
		// Store unreachable: log, leave unresolved. The caller routes the
		// user as if signed out but still sees the error.
		logger.Error("Failed to fetch user role", zap.String("uid", identity.UID), zap.Error(err))
		sess.set(StateUnresolved, identity, models.RoleUnset, nil)
		return fmt.Errorf("failed to resolve role: %w", err)
	}
	if profile == nil {
		// New user, no role selected yet.
		sess.set(StateUnresolved, identity, models.RoleUnset, nil)
		return nil
	}

	sess.set(StateResolved, identity, profile.Role, profile)
	return nil
}

// SetRole merge-writes the profile record and resolves the session.
func (svc *DefaultRoleService) SetRole(ctx context.Context, sess *Session, role models.Role, extra SetRoleInput) (*models.UserProfile, error) {
	logger := utils.GetLogger()

	identity := sess.Identity()
	if identity == nil {
		return nil, ErrNotAuthenticated
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	_, currentRole, currentProfile := sess.Snapshot()
	if currentRole.Valid() && currentRole != role {
		return nil, ErrRoleAlreadySet
	}

	now := time.Now()
	profile := &models.UserProfile{CreatedAt: now}
	if currentProfile != nil {
		copied := *currentProfile
		profile = &copied
	}
	profile.UID = identity.UID
	profile.Email = identity.Email
	profile.Name = identity.Name
	profile.Role = role
	profile.UpdatedAt = now

	fields := bson.M{
		"uid":       profile.UID,
		"email":     profile.Email,
		"name":      profile.Name,
		"role":      profile.Role,
		"createdAt": profile.CreatedAt,
	}
	// Fields absent from the write are preserved on an existing record.
	if extra.Phone != "" {
		profile.Phone = extra.Phone
		fields["phone"] = extra.Phone
	}
	if extra.Location.City != "" || extra.Location.Area != "" {
		profile.Location = extra.Location
		fields["location"] = extra.Location
	}

	if err := svc.Repo.Merge(ctx, identity.UID, fields); err != nil {
		// Prior state retained; the error is the caller's to surface.
		logger.Error("Failed to set user role", zap.String("uid", identity.UID), zap.Error(err))
		return nil, fmt.Errorf("failed to set role: %w", err)
	}

	sess.set(StateResolved, identity, role, profile)
	return profile, nil
}

// Teardown clears the session on sign-out.
func (svc *DefaultRoleService) Teardown(sess *Session) {
	sess.set(StateUnresolved, nil, models.RoleUnset, nil)
}
