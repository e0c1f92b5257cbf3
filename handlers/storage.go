package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"tiffinpro/middleware"
	"tiffinpro/services/catalog"
	"tiffinpro/services/storage"
	"tiffinpro/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StorageHandler serves the service image upload endpoint.
type StorageHandler struct {
	StorageSvc storage.StorageService
	CatalogSvc catalog.CatalogService
	Logger     *zap.Logger
}

// NewStorageHandler creates a new StorageHandler instance.
func NewStorageHandler(storageSvc storage.StorageService, catalogSvc catalog.CatalogService, logger *zap.Logger) *StorageHandler {
	return &StorageHandler{StorageSvc: storageSvc, CatalogSvc: catalogSvc, Logger: logger}
}

// UploadServiceImageHandler handles POST /api/provider/service/image. The
// file is staged on local disk, pushed to Cloudinary, and the resulting URL
// is written onto the provider's listing.
func (h *StorageHandler) UploadServiceImageHandler(c *gin.Context) {
	profile := middleware.ProfileFrom(c)

	file, err := c.FormFile("image")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "image file is required", err.Error())
		return
	}

	// The client controls the filename; keep only the base name so the
	// staged file cannot escape the temp dir.
	localPath := filepath.Join(os.TempDir(), filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, localPath); err != nil {
		h.Logger.Error("Failed to stage upload", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to stage upload", err.Error())
		return
	}
	defer os.Remove(localPath)

	img, err := h.StorageSvc.UploadImage(c.Request.Context(), localPath, "tiffinpro/services")
	if err != nil {
		h.Logger.Error("Image upload failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to upload image", err.Error())
		return
	}

	replaced, err := h.CatalogSvc.SetImage(c.Request.Context(), profile.UID, img.URL, img.PublicID)
	if err != nil {
		if errors.Is(err, catalog.ErrNoService) {
			utils.JSONError(c, http.StatusNotFound, "no service listing to attach the image to", profile.UID)
			return
		}
		h.Logger.Error("Failed to record image URL", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to record image", err.Error())
		return
	}

	// Best effort: the listing already points at the new image.
	if replaced != "" {
		if err := h.StorageSvc.DeleteImage(c.Request.Context(), replaced); err != nil {
			h.Logger.Warn("Failed to delete replaced image", zap.String("publicID", replaced), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"imageUrl": img.URL})
}
