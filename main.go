package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tiffinpro/config"
	"tiffinpro/cron"
	"tiffinpro/database"
	applicationRepoPkg "tiffinpro/database/repository/application"
	reviewRepoPkg "tiffinpro/database/repository/review"
	serviceRepoPkg "tiffinpro/database/repository/service"
	userRepoPkg "tiffinpro/database/repository/user"
	"tiffinpro/handlers"
	"tiffinpro/middleware"
	"tiffinpro/routes"
	"tiffinpro/services/application"
	"tiffinpro/services/catalog"
	"tiffinpro/services/review"
	"tiffinpro/services/session"
	"tiffinpro/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()
	utils.FirebaseInit()

	cloudinaryStorageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	serviceRepo := serviceRepoPkg.NewMongoServiceRepo()
	applicationRepo := applicationRepoPkg.NewMongoApplicationRepo()
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo()

	// services.
	roleService := &session.DefaultRoleService{
		Repo: userRepo,
	}
	catalogService := &catalog.DefaultCatalogService{
		Repo: serviceRepo,
	}
	applicationService := &application.DefaultApplicationService{
		Repo:     applicationRepo,
		Services: serviceRepo,
		Reviews:  reviewRepo,
	}
	reviewService := &review.DefaultReviewService{
		Repo:         reviewRepo,
		Services:     serviceRepo,
		Applications: applicationRepo,
	}

	authCache := utils.GetAuthCacheClient()

	authHandler := handlers.NewAuthHandler(roleService, utils.AuthClient, authCache, logger)
	sessionHandler := handlers.NewSessionHandler(roleService, logger)
	catalogHandler := handlers.NewCatalogHandler(catalogService, reviewService, logger)
	applicationHandler := handlers.NewApplicationHandler(applicationService, logger)
	reviewHandler := handlers.NewReviewHandler(reviewService, logger)
	storageHandler := handlers.NewStorageHandler(cloudinaryStorageService, catalogService, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		RoleSvc: roleService,
		Cache:   authCache,

		// Auth endpoints.
		CreateSessionHandler: authHandler.CreateSessionHandler,
		DeleteSessionHandler: authHandler.DeleteSessionHandler,

		// Session endpoints.
		GetSessionHandler: sessionHandler.GetSessionHandler,
		SelectRoleHandler: sessionHandler.SelectRoleHandler,
		RouteHandler:      sessionHandler.RouteHandler,

		// Catalog endpoints.
		BrowseHandler:          catalogHandler.BrowseHandler,
		GetServiceHandler:      catalogHandler.GetServiceHandler,
		GetMyServiceHandler:    catalogHandler.GetMyServiceHandler,
		SaveServiceHandler:     catalogHandler.SaveServiceHandler,
		UpdateMenuHandler:      catalogHandler.UpdateMenuHandler,
		ProviderReviewsHandler: catalogHandler.ProviderReviewsHandler,

		// Application endpoints.
		ApplyHandler:                applicationHandler.ApplyHandler,
		MyApplicationsHandler:       applicationHandler.MyApplicationsHandler,
		ProviderApplicationsHandler: applicationHandler.ProviderApplicationsHandler,
		UpdateStatusHandler:         applicationHandler.UpdateStatusHandler,
		DashboardHandler:            applicationHandler.DashboardHandler,

		// Review endpoints.
		SubmitReviewHandler: reviewHandler.SubmitReviewHandler,

		// Storage endpoints.
		UploadServiceImageHandler: storageHandler.UploadServiceImageHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background workers.
	ratingsWorker := cron.InitRatingsWorker(serviceRepo, reviewRepo)
	utils.StartHealthMonitor(authCache, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ratingsWorker.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
