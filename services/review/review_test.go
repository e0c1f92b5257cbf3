package review

import (
	"context"
	"testing"

	"tiffinpro/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// fakeReviewRepo recomputes the aggregate from its stored reviews on every
// submission, mirroring the transactional behavior of the real store.
type fakeReviewRepo struct {
	reviews  []models.Review
	services *fakeServiceRepo
}

func (r *fakeReviewRepo) Exists(ctx context.Context, serviceID, customerID string) (bool, error) {
	for _, rv := range r.reviews {
		if rv.ServiceID == serviceID && rv.CustomerID == customerID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReviewRepo) ListByService(ctx context.Context, serviceID string) ([]models.Review, error) {
	var out []models.Review
	for _, rv := range r.reviews {
		if rv.ServiceID == serviceID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) aggregate(serviceID string) models.ServiceRatings {
	var sum, count int
	for _, rv := range r.reviews {
		if rv.ServiceID == serviceID {
			sum += rv.Rating
			count++
		}
	}
	if count == 0 {
		return models.ServiceRatings{}
	}
	return models.ServiceRatings{Average: float64(sum) / float64(count), Count: count}
}

func (r *fakeReviewRepo) SubmitAndRecompute(ctx context.Context, review *models.Review) (models.ServiceRatings, error) {
	r.reviews = append(r.reviews, *review)
	ratings := r.aggregate(review.ServiceID)
	if r.services != nil {
		_ = r.services.SetRatings(ctx, review.ServiceID, ratings)
	}
	return ratings, nil
}

func (r *fakeReviewRepo) Recompute(ctx context.Context, serviceID string) (models.ServiceRatings, error) {
	ratings := r.aggregate(serviceID)
	if r.services != nil {
		_ = r.services.SetRatings(ctx, serviceID, ratings)
	}
	return ratings, nil
}

type fakeServiceRepo struct {
	services []models.Service
}

func (r *fakeServiceRepo) GetByID(ctx context.Context, id string) (*models.Service, error) {
	for i := range r.services {
		if r.services[i].ID == id {
			copied := r.services[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeServiceRepo) GetByProvider(ctx context.Context, providerID string) (*models.Service, error) {
	for i := range r.services {
		if r.services[i].ProviderID == providerID {
			copied := r.services[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeServiceRepo) ListActive(ctx context.Context) ([]models.Service, error) {
	var out []models.Service
	for _, svc := range r.services {
		if svc.IsActive {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (r *fakeServiceRepo) ListAll(ctx context.Context) ([]models.Service, error) {
	return append([]models.Service(nil), r.services...), nil
}

func (r *fakeServiceRepo) Create(ctx context.Context, service *models.Service) error {
	r.services = append(r.services, *service)
	return nil
}

func (r *fakeServiceRepo) UpdateFields(ctx context.Context, id string, fields bson.M) error {
	return nil
}

func (r *fakeServiceRepo) SetRatings(ctx context.Context, id string, ratings models.ServiceRatings) error {
	for i := range r.services {
		if r.services[i].ID == id {
			r.services[i].Ratings = ratings
		}
	}
	return nil
}

type fakeApplicationRepo struct {
	apps []models.Application
}

func (r *fakeApplicationRepo) Create(ctx context.Context, app *models.Application) error {
	r.apps = append(r.apps, *app)
	return nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id string) (*models.Application, error) {
	for i := range r.apps {
		if r.apps[i].ID == id {
			copied := r.apps[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeApplicationRepo) ListByCustomer(ctx context.Context, customerID string) ([]models.Application, error) {
	var out []models.Application
	for _, app := range r.apps {
		if app.CustomerID == customerID {
			out = append(out, app)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) ListByService(ctx context.Context, serviceID string) ([]models.Application, error) {
	var out []models.Application
	for _, app := range r.apps {
		if app.ServiceID == serviceID {
			out = append(out, app)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error {
	for i := range r.apps {
		if r.apps[i].ID == id {
			r.apps[i].Status = status
		}
	}
	return nil
}

func newTestService() (*DefaultReviewService, *fakeServiceRepo, *fakeApplicationRepo, *fakeReviewRepo) {
	svcRepo := &fakeServiceRepo{services: []models.Service{
		{ID: "svc-1", ProviderID: "prov-1", ServiceName: "Annapurna Tiffins", IsActive: true},
	}}
	appRepo := &fakeApplicationRepo{}
	revRepo := &fakeReviewRepo{services: svcRepo}
	return &DefaultReviewService{Repo: revRepo, Services: svcRepo, Applications: appRepo}, svcRepo, appRepo, revRepo
}

func acceptedApplication(customerID string) models.Application {
	return models.Application{
		ID:         "app-" + customerID,
		ServiceID:  "svc-1",
		CustomerID: customerID,
		Status:     models.ApplicationAccepted,
	}
}

func reviewer(uid string) *models.UserProfile {
	return &models.UserProfile{UID: uid, Name: "Reviewer " + uid, Role: models.RoleCustomer}
}

func TestSubmitValidatesRating(t *testing.T) {
	svc, _, _, _ := newTestService()

	for _, rating := range []int{0, -1, 6, 100} {
		_, _, err := svc.Submit(context.Background(), reviewer("cust-1"), SubmitInput{
			ServiceID: "svc-1", Rating: rating, Comment: "x",
		})
		assert.ErrorIs(t, err, ErrInvalidRating, "rating %d", rating)
	}
}

func TestSubmitMissingService(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, _, err := svc.Submit(context.Background(), reviewer("cust-1"), SubmitInput{
		ServiceID: "no-such", Rating: 4, Comment: "x",
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestSubmitRequiresAcceptedApplication(t *testing.T) {
	svc, _, appRepo, _ := newTestService()

	// No application at all.
	_, _, err := svc.Submit(context.Background(), reviewer("cust-1"), SubmitInput{
		ServiceID: "svc-1", Rating: 4, Comment: "x",
	})
	assert.ErrorIs(t, err, ErrNotEligible)

	// A pending application is not enough.
	appRepo.apps = append(appRepo.apps, models.Application{
		ID: "app-1", ServiceID: "svc-1", CustomerID: "cust-1", Status: models.ApplicationPending,
	})
	_, _, err = svc.Submit(context.Background(), reviewer("cust-1"), SubmitInput{
		ServiceID: "svc-1", Rating: 4, Comment: "x",
	})
	assert.ErrorIs(t, err, ErrNotEligible)
}

func TestSubmitRejectsSecondReview(t *testing.T) {
	svc, _, appRepo, _ := newTestService()
	appRepo.apps = append(appRepo.apps, acceptedApplication("cust-1"))

	_, _, err := svc.Submit(context.Background(), reviewer("cust-1"), SubmitInput{
		ServiceID: "svc-1", Rating: 5, Comment: "great",
	})
	require.NoError(t, err)

	_, _, err = svc.Submit(context.Background(), reviewer("cust-1"), SubmitInput{
		ServiceID: "svc-1", Rating: 3, Comment: "changed my mind",
	})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestSubmitRecomputesAggregate(t *testing.T) {
	svc, svcRepo, appRepo, _ := newTestService()

	var last models.ServiceRatings
	for i, rating := range []int{5, 3, 4} {
		uid := string(rune('a' + i))
		appRepo.apps = append(appRepo.apps, acceptedApplication(uid))

		_, ratings, err := svc.Submit(context.Background(), reviewer(uid), SubmitInput{
			ServiceID: "svc-1", Rating: rating, Comment: "ok",
		})
		require.NoError(t, err)
		last = ratings
	}

	assert.Equal(t, models.ServiceRatings{Average: 4.0, Count: 3}, last)

	stored, err := svcRepo.GetByID(context.Background(), "svc-1")
	require.NoError(t, err)
	assert.Equal(t, models.ServiceRatings{Average: 4.0, Count: 3}, stored.Ratings)
}

func TestListForProvider(t *testing.T) {
	svc, _, appRepo, revRepo := newTestService()
	appRepo.apps = append(appRepo.apps, acceptedApplication("cust-1"))
	revRepo.reviews = append(revRepo.reviews, models.Review{
		ID: "rev-1", ServiceID: "svc-1", CustomerID: "cust-1", Rating: 5,
	})

	service, reviews, err := svc.ListForProvider(context.Background(), "prov-1")
	require.NoError(t, err)
	require.NotNil(t, service)
	assert.Equal(t, "svc-1", service.ID)
	require.Len(t, reviews, 1)
	assert.Equal(t, "rev-1", reviews[0].ID)

	service, reviews, err = svc.ListForProvider(context.Background(), "prov-none")
	require.NoError(t, err)
	assert.Nil(t, service)
	assert.Nil(t, reviews)
}
