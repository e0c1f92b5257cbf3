package review

import (
	"context"
	"time"

	"tiffinpro/models"
	"tiffinpro/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Submit validates eligibility, then inserts the review and refreshes the
// rating aggregate transactionally.
func (s *DefaultReviewService) Submit(ctx context.Context, customer *models.UserProfile, input SubmitInput) (*models.Review, models.ServiceRatings, error) {
	logger := utils.GetLogger()

	if input.Rating < 1 || input.Rating > 5 {
		return nil, models.ServiceRatings{}, ErrInvalidRating
	}

	svc, err := s.Services.GetByID(ctx, input.ServiceID)
	if err != nil {
		return nil, models.ServiceRatings{}, err
	}
	if svc == nil {
		return nil, models.ServiceRatings{}, ErrServiceNotFound
	}

	apps, err := s.Applications.ListByCustomer(ctx, customer.UID)
	if err != nil {
		return nil, models.ServiceRatings{}, err
	}
	eligible := false
	for _, app := range apps {
		if app.ServiceID == input.ServiceID && app.Status == models.ApplicationAccepted {
			eligible = true
			break
		}
	}
	if !eligible {
		return nil, models.ServiceRatings{}, ErrNotEligible
	}

	// Pre-write query, not a constraint: two concurrent submissions can
	// both pass this check and produce duplicates.
	exists, err := s.Repo.Exists(ctx, input.ServiceID, customer.UID)
	if err != nil {
		return nil, models.ServiceRatings{}, err
	}
	if exists {
		return nil, models.ServiceRatings{}, ErrAlreadyReviewed
	}

	rv := &models.Review{
		ID:           uuid.NewString(),
		ServiceID:    input.ServiceID,
		CustomerID:   customer.UID,
		CustomerName: customer.Name,
		Rating:       input.Rating,
		Comment:      input.Comment,
		CreatedAt:    time.Now(),
	}

	ratings, err := s.Repo.SubmitAndRecompute(ctx, rv)
	if err != nil {
		return nil, models.ServiceRatings{}, err
	}

	logger.Info("Review submitted",
		zap.String("reviewID", rv.ID),
		zap.String("serviceID", rv.ServiceID),
		zap.Float64("average", ratings.Average),
		zap.Int("count", ratings.Count))
	return rv, ratings, nil
}

// ListForService returns a service's reviews.
func (s *DefaultReviewService) ListForService(ctx context.Context, serviceID string) ([]models.Review, error) {
	return s.Repo.ListByService(ctx, serviceID)
}

// ListForProvider returns the provider's service and its reviews.
func (s *DefaultReviewService) ListForProvider(ctx context.Context, providerID string) (*models.Service, []models.Review, error) {
	svc, err := s.Services.GetByProvider(ctx, providerID)
	if err != nil {
		return nil, nil, err
	}
	if svc == nil {
		return nil, nil, nil
	}

	reviews, err := s.Repo.ListByService(ctx, svc.ID)
	if err != nil {
		return nil, nil, err
	}
	return svc, reviews, nil
}
