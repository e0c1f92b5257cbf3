package handlers

import (
	"errors"
	"net/http"

	"tiffinpro/middleware"
	"tiffinpro/models"
	"tiffinpro/services/catalog"
	"tiffinpro/services/review"
	"tiffinpro/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler serves browse and service-management endpoints.
type CatalogHandler struct {
	CatalogSvc catalog.CatalogService
	ReviewSvc  review.ReviewService
	Logger     *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler instance.
func NewCatalogHandler(catalogSvc catalog.CatalogService, reviewSvc review.ReviewService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{CatalogSvc: catalogSvc, ReviewSvc: reviewSvc, Logger: logger}
}

// BrowseHandler handles GET /api/services with optional filter params.
func (h *CatalogHandler) BrowseHandler(c *gin.Context) {
	var filter catalog.BrowseFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	services, err := h.CatalogSvc.Browse(c.Request.Context(), filter)
	if err != nil {
		h.Logger.Error("Browse failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch services", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services, "count": len(services)})
}

// GetServiceHandler handles GET /api/services/:id: the service detail view
// with its reviews.
func (h *CatalogHandler) GetServiceHandler(c *gin.Context) {
	id := c.Param("id")

	svc, err := h.CatalogSvc.GetService(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			utils.JSONError(c, http.StatusNotFound, "service not found", id)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch service", err.Error())
		return
	}

	reviews, err := h.ReviewSvc.ListForService(c.Request.Context(), id)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch reviews", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"service": svc, "reviews": reviews})
}

// GetMyServiceHandler handles GET /api/provider/service.
func (h *CatalogHandler) GetMyServiceHandler(c *gin.Context) {
	profile := middleware.ProfileFrom(c)

	svc, err := h.CatalogSvc.GetByProvider(c.Request.Context(), profile.UID)
	if err != nil {
		if errors.Is(err, catalog.ErrNoService) {
			c.JSON(http.StatusOK, gin.H{"service": nil})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch service", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"service": svc})
}

// SaveServiceHandler handles PUT /api/provider/service: create-or-overwrite
// of the listing's editable fields.
func (h *CatalogHandler) SaveServiceHandler(c *gin.Context) {
	profile := middleware.ProfileFrom(c)

	var input catalog.ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if input.Location.City == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", "location.city is required")
		return
	}

	svc, err := h.CatalogSvc.SaveService(c.Request.Context(), profile.UID, input)
	if err != nil {
		h.Logger.Error("SaveService failed", zap.String("providerID", profile.UID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to save service", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"service": svc})
}

// UpdateMenuHandler handles PUT /api/provider/service/menu.
func (h *CatalogHandler) UpdateMenuHandler(c *gin.Context) {
	profile := middleware.ProfileFrom(c)

	var body struct {
		WeeklyMenu map[string]models.MenuDay `json:"weeklyMenu"`
		Holidays   []models.Holiday          `json:"holidays"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.CatalogSvc.UpdateMenu(c.Request.Context(), profile.UID, body.WeeklyMenu, body.Holidays); err != nil {
		if errors.Is(err, catalog.ErrNoService) {
			utils.JSONError(c, http.StatusNotFound, "no service to update", err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to update menu", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "menu updated"})
}

// ProviderReviewsHandler handles GET /api/provider/reviews.
func (h *CatalogHandler) ProviderReviewsHandler(c *gin.Context) {
	profile := middleware.ProfileFrom(c)

	svc, reviews, err := h.ReviewSvc.ListForProvider(c.Request.Context(), profile.UID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch reviews", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"service": svc, "reviews": reviews})
}
