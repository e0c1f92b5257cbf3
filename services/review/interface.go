package review

import (
	"context"

	applicationRepo "tiffinpro/database/repository/application"
	reviewRepo "tiffinpro/database/repository/review"
	serviceRepo "tiffinpro/database/repository/service"
	"tiffinpro/models"
)

// SubmitInput is a customer's review submission.
type SubmitInput struct {
	ServiceID string `json:"serviceId" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment" binding:"required"`
}

// ReviewService defines review submission and listing.
type ReviewService interface {
	// Submit inserts the review and refreshes the service's rating
	// aggregate in one transaction. Eligibility requires an accepted
	// application; the one-review-per-customer rule is a pre-write query,
	// not a constraint, so two concurrent submissions can slip past it.
	Submit(ctx context.Context, customer *models.UserProfile, input SubmitInput) (*models.Review, models.ServiceRatings, error)
	// ListForService returns a service's reviews, newest first.
	ListForService(ctx context.Context, serviceID string) ([]models.Review, error)
	// ListForProvider returns the provider's service and its reviews.
	ListForProvider(ctx context.Context, providerID string) (*models.Service, []models.Review, error)
}

// DefaultReviewService is the production implementation.
type DefaultReviewService struct {
	Repo         reviewRepo.ReviewRepository
	Services     serviceRepo.ServiceRepository
	Applications applicationRepo.ApplicationRepository
}
