package review

import "errors"

var (
	// ErrServiceNotFound is returned when the reviewed service is missing.
	ErrServiceNotFound = errors.New("review: service not found")

	// ErrNotEligible is returned when the customer has no accepted
	// application for the service.
	ErrNotEligible = errors.New("review: no accepted application for this service")

	// ErrAlreadyReviewed is returned when the pre-write existence check
	// finds a review by this customer for this service.
	ErrAlreadyReviewed = errors.New("review: already reviewed this service")

	// ErrInvalidRating is returned for ratings outside 1..5.
	ErrInvalidRating = errors.New("review: rating must be between 1 and 5")
)
