package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"tiffinpro/models"
	"tiffinpro/services/catalog"
	"tiffinpro/services/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStorageService struct {
	uploadedPath string
	deleted      []string
}

func (s *fakeStorageService) UploadImage(ctx context.Context, localFilePath, destFolder string) (*storage.UploadedImage, error) {
	s.uploadedPath = localFilePath
	return &storage.UploadedImage{
		URL:      "https://img.example/new.jpg",
		PublicID: "services/new",
	}, nil
}

func (s *fakeStorageService) DeleteImage(ctx context.Context, publicID string) error {
	s.deleted = append(s.deleted, publicID)
	return nil
}

type fakeCatalogService struct {
	replacedPublicID string
	imageURL         string
	imagePublicID    string
}

func (s *fakeCatalogService) Browse(ctx context.Context, filter catalog.BrowseFilter) ([]models.Service, error) {
	return nil, nil
}
func (s *fakeCatalogService) GetService(ctx context.Context, id string) (*models.Service, error) {
	return nil, catalog.ErrServiceNotFound
}
func (s *fakeCatalogService) GetByProvider(ctx context.Context, providerID string) (*models.Service, error) {
	return nil, catalog.ErrNoService
}
func (s *fakeCatalogService) SaveService(ctx context.Context, providerID string, input catalog.ServiceInput) (*models.Service, error) {
	return nil, nil
}
func (s *fakeCatalogService) UpdateMenu(ctx context.Context, providerID string, menu map[string]models.MenuDay, holidays []models.Holiday) error {
	return nil
}
func (s *fakeCatalogService) SetImage(ctx context.Context, providerID, imageURL, publicID string) (string, error) {
	s.imageURL = imageURL
	s.imagePublicID = publicID
	return s.replacedPublicID, nil
}

func uploadRequest(t *testing.T, filename string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("not really a jpeg"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/provider/service/image", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func newUploadContext(t *testing.T, filename string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = uploadRequest(t, filename)
	c.Set("profile", &models.UserProfile{UID: "prov-1", Role: models.RoleProvider})
	return c, w
}

func TestUploadServiceImageStagesInsideTempDir(t *testing.T) {
	storageSvc := &fakeStorageService{}
	catalogSvc := &fakeCatalogService{}
	h := NewStorageHandler(storageSvc, catalogSvc, zap.NewNop())

	// A hostile filename must not escape the staging directory.
	c, w := newUploadContext(t, "../../escape.jpg")
	h.UploadServiceImageHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, filepath.Join(os.TempDir(), "escape.jpg"), storageSvc.uploadedPath)
	assert.Equal(t, "https://img.example/new.jpg", catalogSvc.imageURL)
	assert.Equal(t, "services/new", catalogSvc.imagePublicID)
}

func TestUploadServiceImageDeletesReplacedImage(t *testing.T) {
	storageSvc := &fakeStorageService{}
	catalogSvc := &fakeCatalogService{replacedPublicID: "services/old"}
	h := NewStorageHandler(storageSvc, catalogSvc, zap.NewNop())

	c, w := newUploadContext(t, "photo.jpg")
	h.UploadServiceImageHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"services/old"}, storageSvc.deleted)
}

func TestUploadServiceImageKeepsFirstImage(t *testing.T) {
	storageSvc := &fakeStorageService{}
	catalogSvc := &fakeCatalogService{}
	h := NewStorageHandler(storageSvc, catalogSvc, zap.NewNop())

	c, w := newUploadContext(t, "photo.jpg")
	h.UploadServiceImageHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, storageSvc.deleted)
}
