package reviewRepo

import (
	"context"

	"tiffinpro/models"
)

// ReviewRepository defines persistence operations for reviews and the
// materialized rating aggregate on services.
type ReviewRepository interface {
	// Exists reports whether the customer already reviewed the service.
	Exists(ctx context.Context, serviceID, customerID string) (bool, error)
	// ListByService returns the reviews for a service, newest first.
	ListByService(ctx context.Context, serviceID string) ([]models.Review, error)
	// SubmitAndRecompute inserts the review and recomputes the service's
	// rating average and count in a single transaction, so concurrent
	// submissions cannot overwrite each other's aggregate.
	SubmitAndRecompute(ctx context.Context, review *models.Review) (models.ServiceRatings, error)
	// Recompute rebuilds the service's rating aggregate from the reviews
	// collection and writes it back. Used by the reconciliation sweep.
	Recompute(ctx context.Context, serviceID string) (models.ServiceRatings, error)
}
