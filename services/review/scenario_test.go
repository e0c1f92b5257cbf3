package review

import (
	"context"
	"testing"

	"tiffinpro/models"
	"tiffinpro/services/application"
	"tiffinpro/services/catalog"
	"tiffinpro/services/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type scenarioUserRepo struct {
	profiles map[string]*models.UserProfile
}

func (r *scenarioUserRepo) GetByUID(ctx context.Context, uid string) (*models.UserProfile, error) {
	p, ok := r.profiles[uid]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (r *scenarioUserRepo) Merge(ctx context.Context, uid string, fields bson.M) error {
	p, ok := r.profiles[uid]
	if !ok {
		p = &models.UserProfile{UID: uid}
		r.profiles[uid] = p
	}
	if v, ok := fields["email"]; ok {
		p.Email = v.(string)
	}
	if v, ok := fields["name"]; ok {
		p.Name = v.(string)
	}
	if v, ok := fields["role"]; ok {
		p.Role = v.(models.Role)
	}
	if v, ok := fields["phone"]; ok {
		p.Phone = v.(string)
	}
	return nil
}

// Walks the full marketplace flow over shared in-memory stores: a provider
// publishes a listing, a customer picks a role, applies, gets accepted, and
// reviews, and the listing's rating aggregate reflects it.
func TestMarketplaceFlow(t *testing.T) {
	ctx := context.Background()

	userRepo := &scenarioUserRepo{profiles: make(map[string]*models.UserProfile)}
	svcRepo := &fakeServiceRepo{}
	appRepo := &fakeApplicationRepo{}
	revRepo := &fakeReviewRepo{services: svcRepo}

	roleSvc := &session.DefaultRoleService{Repo: userRepo}
	catalogSvc := &catalog.DefaultCatalogService{Repo: svcRepo}
	applicationSvc := &application.DefaultApplicationService{Repo: appRepo, Services: svcRepo, Reviews: revRepo}
	reviewSvc := &DefaultReviewService{Repo: revRepo, Services: svcRepo, Applications: appRepo}

	// Provider signs in, picks the provider role and publishes a listing.
	provSess := session.NewSession()
	require.NoError(t, roleSvc.Resolve(ctx, provSess, &models.Identity{UID: "prov-1", Email: "meera@example.com", Name: "Meera"}))
	provProfile, err := roleSvc.SetRole(ctx, provSess, models.RoleProvider, session.SetRoleInput{Phone: "9000000001"})
	require.NoError(t, err)
	assert.Equal(t, session.RouteDashboard, session.HomePath(provProfile.Role))

	listing, err := catalogSvc.SaveService(ctx, provProfile.UID, catalog.ServiceInput{
		ServiceName: "Meera's Kitchen",
		Description: "Gujarati thali, dine in or parcel",
		Location:    models.Location{City: "Ahmedabad"},
		ServiceType: []string{models.ServiceTypeDineIn, models.ServiceTypeParcel},
		Pricing:     models.ServicePricing{OneTimeDay: 90, OneTimeNight: 100, TwoTimesPerMonth: 1800},
		IsActive:    true,
	})
	require.NoError(t, err)

	// Customer signs in and picks the customer role.
	custSess := session.NewSession()
	require.NoError(t, roleSvc.Resolve(ctx, custSess, &models.Identity{UID: "cust-1", Email: "ravi@example.com", Name: "Ravi"}))
	custProfile, err := roleSvc.SetRole(ctx, custSess, models.RoleCustomer, session.SetRoleInput{})
	require.NoError(t, err)

	// The customer may not enter provider routes; they bounce home.
	state, role, _ := custSess.Snapshot()
	decision := session.ResolveRoute(session.RouteDashboard, state, role)
	assert.Equal(t, session.RouteBrowse, decision.Redirect)

	// Browse finds the listing.
	found, err := catalogSvc.Browse(ctx, catalog.BrowseFilter{City: "Ahmedabad", MaxPrice: 2000})
	require.NoError(t, err)
	require.Len(t, found, 1)

	// Reviewing before acceptance is refused.
	_, _, err = reviewSvc.Submit(ctx, custProfile, SubmitInput{ServiceID: listing.ID, Rating: 5, Comment: "best thali"})
	assert.ErrorIs(t, err, ErrNotEligible)

	// Apply, then the provider accepts.
	app, err := applicationSvc.Apply(ctx, custProfile, application.ApplyInput{
		ServiceID:     listing.ID,
		PreferredPlan: models.PlanTwoTimes,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationPending, app.Status)

	_, err = applicationSvc.UpdateStatus(ctx, provProfile.UID, app.ID, models.ApplicationAccepted)
	require.NoError(t, err)

	// Now the review goes through and the aggregate updates.
	_, ratings, err := reviewSvc.Submit(ctx, custProfile, SubmitInput{ServiceID: listing.ID, Rating: 5, Comment: "best thali"})
	require.NoError(t, err)
	assert.Equal(t, models.ServiceRatings{Average: 5.0, Count: 1}, ratings)

	stored, err := svcRepo.GetByID(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ServiceRatings{Average: 5.0, Count: 1}, stored.Ratings)

	// The customer's applications screen shows the joined view.
	views, err := applicationSvc.ListMine(ctx, custProfile.UID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, models.ApplicationAccepted, views[0].Status)
	assert.True(t, views[0].HasReviewed)
}
