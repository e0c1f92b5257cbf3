package handlers

import (
	sessionSvc "tiffinpro/services/session"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	RoleSvc sessionSvc.RoleService
	Cache   *redis.Client

	// Auth endpoints
	CreateSessionHandler gin.HandlerFunc
	DeleteSessionHandler gin.HandlerFunc

	// Session endpoints
	GetSessionHandler gin.HandlerFunc
	SelectRoleHandler gin.HandlerFunc
	RouteHandler      gin.HandlerFunc

	// Catalog endpoints
	BrowseHandler          gin.HandlerFunc
	GetServiceHandler      gin.HandlerFunc
	GetMyServiceHandler    gin.HandlerFunc
	SaveServiceHandler     gin.HandlerFunc
	UpdateMenuHandler      gin.HandlerFunc
	ProviderReviewsHandler gin.HandlerFunc

	// Application endpoints
	ApplyHandler                gin.HandlerFunc
	MyApplicationsHandler       gin.HandlerFunc
	ProviderApplicationsHandler gin.HandlerFunc
	UpdateStatusHandler         gin.HandlerFunc
	DashboardHandler            gin.HandlerFunc

	// Review endpoints
	SubmitReviewHandler gin.HandlerFunc

	// Storage endpoints
	UploadServiceImageHandler gin.HandlerFunc
}
