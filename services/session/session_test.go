package session

import (
	"context"
	"errors"
	"testing"

	"tiffinpro/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// fakeUserRepo keeps profiles in a map and merges writes field by field,
// mirroring the upsert semantics of the real store.
type fakeUserRepo struct {
	profiles map[string]*models.UserProfile
	getErr   error
	mergeErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{profiles: make(map[string]*models.UserProfile)}
}

func (r *fakeUserRepo) GetByUID(ctx context.Context, uid string) (*models.UserProfile, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	p, ok := r.profiles[uid]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (r *fakeUserRepo) Merge(ctx context.Context, uid string, fields bson.M) error {
	if r.mergeErr != nil {
		return r.mergeErr
	}
	p, ok := r.profiles[uid]
	if !ok {
		p = &models.UserProfile{UID: uid}
		r.profiles[uid] = p
	}
	for k, v := range fields {
		switch k {
		case "email":
			p.Email = v.(string)
		case "name":
			p.Name = v.(string)
		case "role":
			p.Role = v.(models.Role)
		case "phone":
			p.Phone = v.(string)
		case "location":
			p.Location = v.(models.Location)
		}
	}
	return nil
}

func testIdentity() *models.Identity {
	return &models.Identity{UID: "uid-1", Email: "asha@example.com", Name: "Asha"}
}

func TestResolveSignedOut(t *testing.T) {
	svc := &DefaultRoleService{Repo: newFakeUserRepo()}
	sess := NewSession()

	err := svc.Resolve(context.Background(), sess, nil)
	require.NoError(t, err)

	state, role, profile := sess.Snapshot()
	assert.Equal(t, StateUnresolved, state)
	assert.Equal(t, models.RoleUnset, role)
	assert.Nil(t, profile)
}

func TestResolveNewUser(t *testing.T) {
	svc := &DefaultRoleService{Repo: newFakeUserRepo()}
	sess := NewSession()

	err := svc.Resolve(context.Background(), sess, testIdentity())
	require.NoError(t, err)

	state, role, profile := sess.Snapshot()
	assert.Equal(t, StateUnresolved, state)
	assert.Equal(t, models.RoleUnset, role)
	assert.Nil(t, profile)
	assert.NotNil(t, sess.Identity())
}

func TestResolveExistingUser(t *testing.T) {
	repo := newFakeUserRepo()
	repo.profiles["uid-1"] = &models.UserProfile{
		UID:   "uid-1",
		Email: "asha@example.com",
		Name:  "Asha",
		Role:  models.RoleProvider,
	}
	svc := &DefaultRoleService{Repo: repo}
	sess := NewSession()

	err := svc.Resolve(context.Background(), sess, testIdentity())
	require.NoError(t, err)

	state, role, profile := sess.Snapshot()
	assert.Equal(t, StateResolved, state)
	assert.Equal(t, models.RoleProvider, role)
	require.NotNil(t, profile)
	assert.Equal(t, "Asha", profile.Name)
}

func TestResolveStoreFailure(t *testing.T) {
	repo := newFakeUserRepo()
	repo.getErr = errors.New("store down")
	svc := &DefaultRoleService{Repo: repo}
	sess := NewSession()

	err := svc.Resolve(context.Background(), sess, testIdentity())
	require.Error(t, err)

	// The session settles unresolved so routing treats the user as
	// signed out, but the error still reaches the caller.
	state, role, _ := sess.Snapshot()
	assert.Equal(t, StateUnresolved, state)
	assert.Equal(t, models.RoleUnset, role)
}

func TestSetRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc := &DefaultRoleService{Repo: repo}
	sess := NewSession()
	require.NoError(t, svc.Resolve(context.Background(), sess, testIdentity()))

	profile, err := svc.SetRole(context.Background(), sess, models.RoleCustomer, SetRoleInput{
		Phone:    "9876543210",
		Location: models.Location{City: "Pune", Area: "Kothrud"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, profile.Role)
	assert.Equal(t, "9876543210", profile.Phone)

	state, role, _ := sess.Snapshot()
	assert.Equal(t, StateResolved, state)
	assert.Equal(t, models.RoleCustomer, role)

	stored := repo.profiles["uid-1"]
	require.NotNil(t, stored)
	assert.Equal(t, models.RoleCustomer, stored.Role)
	assert.Equal(t, "Pune", stored.Location.City)
}

func TestSetRoleRequiresIdentity(t *testing.T) {
	svc := &DefaultRoleService{Repo: newFakeUserRepo()}
	sess := NewSession()

	_, err := svc.SetRole(context.Background(), sess, models.RoleCustomer, SetRoleInput{})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestSetRoleRejectsInvalidRole(t *testing.T) {
	svc := &DefaultRoleService{Repo: newFakeUserRepo()}
	sess := NewSession()
	require.NoError(t, svc.Resolve(context.Background(), sess, testIdentity()))

	_, err := svc.SetRole(context.Background(), sess, models.Role("admin"), SetRoleInput{})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestSetRoleIsSingleShot(t *testing.T) {
	svc := &DefaultRoleService{Repo: newFakeUserRepo()}
	sess := NewSession()
	require.NoError(t, svc.Resolve(context.Background(), sess, testIdentity()))

	_, err := svc.SetRole(context.Background(), sess, models.RoleCustomer, SetRoleInput{})
	require.NoError(t, err)

	// Same role again is idempotent.
	_, err = svc.SetRole(context.Background(), sess, models.RoleCustomer, SetRoleInput{})
	assert.NoError(t, err)

	// A different role is refused.
	_, err = svc.SetRole(context.Background(), sess, models.RoleProvider, SetRoleInput{})
	assert.ErrorIs(t, err, ErrRoleAlreadySet)
}

func TestSetRolePreservesUnspecifiedFields(t *testing.T) {
	repo := newFakeUserRepo()
	repo.profiles["uid-1"] = &models.UserProfile{
		UID:      "uid-1",
		Email:    "asha@example.com",
		Name:     "Asha",
		Phone:    "9876543210",
		Location: models.Location{City: "Pune", Area: "Kothrud"},
	}
	svc := &DefaultRoleService{Repo: repo}
	sess := NewSession()
	require.NoError(t, svc.Resolve(context.Background(), sess, testIdentity()))

	// Role selection without phone or location must not clear them.
	profile, err := svc.SetRole(context.Background(), sess, models.RoleProvider, SetRoleInput{})
	require.NoError(t, err)
	assert.Equal(t, "9876543210", profile.Phone)
	assert.Equal(t, "Pune", profile.Location.City)

	stored := repo.profiles["uid-1"]
	assert.Equal(t, "9876543210", stored.Phone)
	assert.Equal(t, "Kothrud", stored.Location.Area)
}

func TestSetRoleStoreFailureKeepsPriorState(t *testing.T) {
	repo := newFakeUserRepo()
	repo.mergeErr = errors.New("write failed")
	svc := &DefaultRoleService{Repo: repo}
	sess := NewSession()
	require.NoError(t, svc.Resolve(context.Background(), sess, testIdentity()))

	stateBefore, roleBefore, _ := sess.Snapshot()
	_, err := svc.SetRole(context.Background(), sess, models.RoleCustomer, SetRoleInput{})
	require.Error(t, err)

	state, role, _ := sess.Snapshot()
	assert.Equal(t, stateBefore, state)
	assert.Equal(t, roleBefore, role)
}

func TestTeardown(t *testing.T) {
	repo := newFakeUserRepo()
	repo.profiles["uid-1"] = &models.UserProfile{UID: "uid-1", Role: models.RoleCustomer}
	svc := &DefaultRoleService{Repo: repo}
	sess := NewSession()
	require.NoError(t, svc.Resolve(context.Background(), sess, testIdentity()))

	svc.Teardown(sess)

	state, role, profile := sess.Snapshot()
	assert.Equal(t, StateUnresolved, state)
	assert.Equal(t, models.RoleUnset, role)
	assert.Nil(t, profile)
	assert.Nil(t, sess.Identity())
}
