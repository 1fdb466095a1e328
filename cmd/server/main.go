package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kkh1902/promptsave-sub001/internal/handlers"
	"github.com/kkh1902/promptsave-sub001/internal/repositories"
	"github.com/kkh1902/promptsave-sub001/internal/router"
	"github.com/kkh1902/promptsave-sub001/internal/storage"
	"github.com/kkh1902/promptsave-sub001/pkg/config"
	"github.com/kkh1902/promptsave-sub001/pkg/firebase"
	"github.com/kkh1902/promptsave-sub001/pkg/logger"
	"github.com/kkh1902/promptsave-sub001/pkg/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	// Initialize database connections
	db, err := config.InitDB(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize databases: ", err)
	}
	defer db.CloseDB(appLogger) // Ensure database connections are closed when main exits

	// Initialize Firebase
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, cfg.FirebaseStorageBucket, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize Firebase: ", err)
	}

	mongoDB := db.Mongo.Database(cfg.MongoDatabase)
	indexCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	if err := repositories.NewMongoGalleryRepository(mongoDB).EnsureIndexes(indexCtx); err != nil {
		appLogger.Warn("Failed to ensure gallery indexes: ", err)
	}
	cancel()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.NewHTTPErrorHandler(appLogger)

	// Setup global middleware
	router.SetupMiddleware(e, cfg, appLogger)

	// Setup routes and dependencies
	err = router.SetupRoutes(e, router.Dependencies{
		Config:   cfg,
		Postgres: db.Postgres,
		Mongo:    mongoDB,
		Auth:     firebaseApp.AuthClient,
		Storage:  storage.NewBucketStorage(firebaseApp.Bucket, firebaseApp.BucketName),
		Log:      appLogger,
	})
	if err != nil {
		appLogger.Fatal("Failed to set up routes: ", err)
	}

	// Start server
	go func() {
		appLogger.Info("Starting server on :", cfg.Port, " (", cfg.Env, ")")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Server stopped: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Graceful shutdown failed: ", err)
	}
	appLogger.Info("Server stopped.")
}
