package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/shelfbridge/backend/internal/application/catalog"
	"github.com/shelfbridge/backend/internal/application/storefront"
	"github.com/shelfbridge/backend/internal/infrastructure/auth"
	"github.com/shelfbridge/backend/internal/infrastructure/config"
	"github.com/shelfbridge/backend/internal/infrastructure/covers"
	"github.com/shelfbridge/backend/internal/infrastructure/logger"
	"github.com/shelfbridge/backend/internal/infrastructure/persistence"
	"github.com/shelfbridge/backend/internal/infrastructure/storage"
	"github.com/shelfbridge/backend/internal/infrastructure/vitalsource"
	"github.com/shelfbridge/backend/internal/interfaces/http/handler"
	"github.com/shelfbridge/backend/internal/interfaces/http/middleware"
	"github.com/shelfbridge/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Shelfbridge Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	optionRepo := persistence.NewGormOptionRepository(db.DB)

	// Build the vendor API client. The API key is read from the settings
	// store on every request; sandbox mode is resolved at startup.
	vsConfig := vitalsource.NewConfig()
	if snapshot, err := optionRepo.Load(context.Background()); err == nil && snapshot.SandboxMode() {
		vsConfig = vitalsource.NewSandboxConfig()
	}
	if cfg.VitalSource.BaseURL != "" {
		vsConfig.APIBaseURL = cfg.VitalSource.BaseURL
	}
	vsConfig.TimeoutSeconds = int(cfg.VitalSource.RequestTimeout.Seconds())
	gateway, err := vitalsource.NewClient(vsConfig, vitalsource.NewSettingsKeySource(optionRepo))
	if err != nil {
		log.Fatal("Failed to build vendor API client", zap.Error(err))
	}

	// Object storage for cover images. Falls back to a local stub when
	// storage is disabled so sync still works in development.
	var objectStorage catalogapp.ObjectStorageService
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage,
			storage.WithLogger(log),
			storage.WithPresignExpiration(cfg.Storage.PresignExpiry),
		)
		if err != nil {
			log.Fatal("Failed to build object storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(context.Background()); err != nil {
			log.Warn("Could not ensure storage bucket", zap.Error(err))
		}
		objectStorage = s3Storage
	} else {
		objectStorage = storage.NewStubObjectStorage()
		log.Info("Object storage disabled, using in-memory stub")
	}

	var coverFetcher catalogapp.CoverFetcher
	if cfg.Sync.CoverFetch {
		coverFetcher = covers.NewHTTPFetcher(cfg.VitalSource.RequestTimeout)
	}

	// Initialize application services
	syncService := catalogapp.NewSyncService(productRepo, optionRepo, gateway, objectStorage, coverFetcher, log)
	accessService := storefront.NewAccessService(orderRepo, gateway, log)
	checkoutService := storefront.NewCheckoutService(orderRepo, optionRepo, gateway, log)

	// Auth services
	jwtService := auth.NewJWTService(cfg.JWT)
	nonceService := auth.NewNonceService(cfg.Sync.NonceSecret, cfg.Sync.NonceTTL)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productRepo, accessService, objectStorage, log)
	syncHandler := handler.NewSyncHandler(syncService, nonceService, log)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, log)
	settingsHandler := handler.NewSettingsHandler(optionRepo, log)
	systemHandler := handler.NewSystemHandler(db.DB, log)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Register custom binding validators
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request id first so everything downstream can
	// correlate, then panic recovery and request logging.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health endpoints outside API versioning
	engine.GET("/health", systemHandler.Health)
	engine.GET("/ready", systemHandler.Ready)

	// Versioned API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	router.NewAPIRouter(r, router.Handlers{
		Products: productHandler,
		Sync:     syncHandler,
		Checkout: checkoutHandler,
		Settings: settingsHandler,
	}, router.Services{
		JWT:    jwtService,
		Nonces: nonceService,
		Logger: log,
	})
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
