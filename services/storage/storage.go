package storage

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// NewStorageService creates a new CloudinaryStorageService instance.
func NewStorageService(cld *cloudinary.Cloudinary) StorageService {
	return &CloudinaryStorageService{cld: cld}
}

// UploadImage uploads a file to Cloudinary and returns its delivery URL
// and public ID.
func (s *CloudinaryStorageService) UploadImage(ctx context.Context, localFilePath, destFolder string) (*UploadedImage, error) {
	result, err := s.cld.Upload.Upload(ctx, localFilePath, uploader.UploadParams{
		Folder: destFolder,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: failed to upload image: %w", err)
	}
	if result.SecureURL == "" || result.PublicID == "" {
		return nil, fmt.Errorf("storage: incomplete upload result")
	}
	return &UploadedImage{URL: result.SecureURL, PublicID: result.PublicID}, nil
}

// DeleteImage deletes a file from Cloudinary given its public ID.
func (s *CloudinaryStorageService) DeleteImage(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("storage: failed to delete image: %w", err)
	}
	return nil
}
