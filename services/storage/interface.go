package storage

import (
	"context"

	"github.com/cloudinary/cloudinary-go/v2"
)

// UploadedImage identifies a stored image by its delivery URL and the
// public ID needed to delete it later.
type UploadedImage struct {
	URL      string
	PublicID string
}

// StorageService defines the interface for image storage operations.
type StorageService interface {
	// UploadImage uploads a local file into the given folder and returns
	// its public URL and public ID.
	UploadImage(ctx context.Context, localFilePath, destFolder string) (*UploadedImage, error)
	// DeleteImage removes an uploaded image by its public ID.
	DeleteImage(ctx context.Context, publicID string) error
}

// CloudinaryStorageService implements StorageService backed by Cloudinary.
type CloudinaryStorageService struct {
	cld *cloudinary.Cloudinary
}
