package router

import (
	"fmt"
	"strconv"

	"github.com/kkh1902/promptsave-sub001/internal/handlers"
	"github.com/kkh1902/promptsave-sub001/internal/media"
	"github.com/kkh1902/promptsave-sub001/internal/middleware"
	"github.com/kkh1902/promptsave-sub001/internal/repositories"
	"github.com/kkh1902/promptsave-sub001/internal/services"
	"github.com/kkh1902/promptsave-sub001/internal/storage"
	"github.com/kkh1902/promptsave-sub001/pkg/config"
	"github.com/kkh1902/promptsave-sub001/pkg/logger"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// FirebaseAuth is the part of the Firebase admin auth client the routes use
type FirebaseAuth interface {
	handlers.IDTokenVerifier
	services.IdentityDeleter
}

// Dependencies are the connections and clients the routes are built from
type Dependencies struct {
	Config   *config.Config
	Postgres *gorm.DB
	Mongo    *mongo.Database
	Auth     FirebaseAuth
	Storage  storage.ObjectStorage
	Log      logger.Logger
}

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, cfg *config.Config, log logger.Logger) {
	e.Pre(middleware.LegacyImageRedirect())

	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			if v.Error != nil {
				log.Warn(v.Method, " ", v.URI, " ", v.Status, " ", v.Latency, ": ", v.Error)
				return nil
			}
			log.Info(v.Method, " ", v.URI, " ", v.Status, " ", v.Latency)
			return nil
		},
	}))
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.Secure())
	e.Use(eMiddleware.CORSWithConfig(eMiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowCredentials: !allowsAnyOrigin(cfg.CORSAllowedOrigins),
	}))
	// Multipart overhead on top of the largest accepted upload
	e.Use(eMiddleware.BodyLimit(strconv.FormatInt(cfg.UploadMaxBytes/1024+1024, 10) + "K"))

	log.Info("Global middleware configured.")
}

// SetupRoutes migrates the relational schema, builds repositories and services and registers all routes
func SetupRoutes(e *echo.Echo, deps Dependencies) error {
	cfg, log := deps.Config, deps.Log

	if err := repositories.AutoMigrate(deps.Postgres); err != nil {
		return fmt.Errorf("failed to auto migrate models: %w", err)
	}
	log.Info("Relational auto-migrations completed for all models.")

	imageHosts, err := media.ParseRemotePatterns(cfg.ImageRemotePatterns)
	if err != nil {
		return err
	}

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	profileRepo := repositories.NewPostgresProfileRepository(deps.Postgres)
	followRepo := repositories.NewPostgresFollowRepository(deps.Postgres)
	commentRepo := repositories.NewPostgresCommentRepository(deps.Postgres)
	probeRepo := repositories.NewPostgresProbeRepository(deps.Postgres)
	accountRepo := repositories.NewPostgresAccountRepository(deps.Postgres)
	galleryRepo := repositories.NewMongoGalleryRepository(deps.Mongo)

	// --- Initialize Services ---
	galleryService := services.NewGalleryService(galleryRepo, log)
	followService := services.NewFollowService(followRepo, log)
	accountService := services.NewAccountService(accountRepo, galleryRepo, deps.Auth, log)

	secureCookie := cfg.IsProduction()

	authHandler := handlers.NewAuthHandler(deps.Auth, profileRepo, cfg.JWTSecret, cfg.SessionTTL, secureCookie, log)
	galleryHandler := handlers.NewGalleryHandler(galleryService, imageHosts, log)
	commentHandler := handlers.NewCommentHandler(commentRepo, galleryRepo, log)
	userHandler := handlers.NewUserHandler(profileRepo, followService, accountService, secureCookie, log)
	followHandler := handlers.NewFollowHandler(followService, profileRepo, log)
	uploadHandler := handlers.NewUploadHandler(deps.Storage, cfg.UploadMaxBytes, log)

	// --- Public routes (session attached when present) ---
	public := e.Group("/api", middleware.OptionalSessionAuth(cfg.JWTSecret))
	authHandler.RegisterAuthRoutes(public)
	galleryHandler.RegisterPublicGalleryRoutes(public)
	commentHandler.RegisterPublicCommentRoutes(public)
	userHandler.RegisterPublicUserRoutes(public)
	followHandler.RegisterPublicFollowRoutes(public)
	log.Info("Public routes configured.")

	imagePages := e.Group("", middleware.OptionalSessionAuth(cfg.JWTSecret))
	galleryHandler.RegisterImageRoutes(imagePages)
	log.Info("Image gallery routes configured.")

	// --- Protected routes (require a session) ---
	api := e.Group("/api", middleware.SessionAuth(cfg.JWTSecret))
	galleryHandler.RegisterGalleryRoutes(api)
	commentHandler.RegisterCommentRoutes(api)
	userHandler.RegisterUserRoutes(api)
	followHandler.RegisterFollowRoutes(api)
	uploadHandler.RegisterUploadRoutes(api)
	log.Info("Protected routes configured.")

	if !cfg.IsProduction() {
		debugHandler := handlers.NewDebugHandler(probeRepo)
		debugHandler.RegisterDebugRoutes(e.Group("/api"))
		log.Info("Debug routes configured.")
	}

	log.Info("All routes configured.")
	return nil
}

func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return len(origins) == 0
}
