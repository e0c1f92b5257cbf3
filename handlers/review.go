package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"tiffinpro/middleware"
	"tiffinpro/services/review"
	"tiffinpro/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReviewHandler serves review submission for customers.
type ReviewHandler struct {
	ReviewSvc review.ReviewService
	Logger    *zap.Logger
}

// NewReviewHandler creates a new ReviewHandler instance.
func NewReviewHandler(reviewSvc review.ReviewService, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{ReviewSvc: reviewSvc, Logger: logger}
}

// SubmitReviewHandler handles POST /api/reviews.
func (h *ReviewHandler) SubmitReviewHandler(c *gin.Context) {
	profile := middleware.ProfileFrom(c)

	var input review.SubmitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	rev, ratings, err := h.ReviewSvc.Submit(c.Request.Context(), profile, input)
	if err != nil {
		switch {
		case errors.Is(err, review.ErrInvalidRating):
			utils.JSONError(c, http.StatusBadRequest, "rating must be between 1 and 5", strconv.Itoa(input.Rating))
		case errors.Is(err, review.ErrServiceNotFound):
			utils.JSONError(c, http.StatusNotFound, "service not found", input.ServiceID)
		case errors.Is(err, review.ErrNotEligible):
			utils.JSONError(c, http.StatusForbidden, "an accepted application is required to review", input.ServiceID)
		case errors.Is(err, review.ErrAlreadyReviewed):
			utils.JSONError(c, http.StatusConflict, "service already reviewed", input.ServiceID)
		default:
			h.Logger.Error("Submit review failed", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to submit review", err.Error())
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"review": rev, "ratings": ratings})
}
