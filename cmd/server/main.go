package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	brandapp "github.com/raqueto/backend/internal/application/brand"
	catalogapp "github.com/raqueto/backend/internal/application/catalog"
	collectionapp "github.com/raqueto/backend/internal/application/collection"
	linkapp "github.com/raqueto/backend/internal/application/link"
	newsletterapp "github.com/raqueto/backend/internal/application/newsletter"
	orderapp "github.com/raqueto/backend/internal/application/order"
	paymentapp "github.com/raqueto/backend/internal/application/payment"
	"github.com/raqueto/backend/internal/application/upload"
	"github.com/raqueto/backend/internal/infrastructure/auth"
	"github.com/raqueto/backend/internal/infrastructure/cache"
	"github.com/raqueto/backend/internal/infrastructure/config"
	"github.com/raqueto/backend/internal/infrastructure/event"
	"github.com/raqueto/backend/internal/infrastructure/logger"
	"github.com/raqueto/backend/internal/infrastructure/notification"
	"github.com/raqueto/backend/internal/infrastructure/payment"
	"github.com/raqueto/backend/internal/infrastructure/persistence"
	"github.com/raqueto/backend/internal/infrastructure/storage"
	"github.com/raqueto/backend/internal/infrastructure/storefront"
	"github.com/raqueto/backend/internal/infrastructure/telemetry"
	"github.com/raqueto/backend/internal/interfaces/http/handler"
	"github.com/raqueto/backend/internal/interfaces/http/middleware"
	"github.com/raqueto/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const storefrontTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting Raqueto backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	telemetryCfg := telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}
	tracer, err := telemetry.NewTracerProvider(ctx, telemetryCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	logExport, err := telemetry.NewLoggerProvider(ctx, telemetryCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize log export", zap.Error(err))
	}
	log = logExport.Bridge(log)

	db, err := persistence.NewDatabase(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:        "postgresql",
	}, log)
	if err := dbTracing.Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	log.Info("Database connected successfully")

	brandCache, redisClient, err := cache.NewBrandCacheFactory(cfg.Redis, cfg.Cache.BrandTTL, cache.WithLogger(log)).Create(ctx)
	if err != nil {
		log.Fatal("Failed to initialize brand cache", zap.Error(err))
	}
	var blacklist auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
	if redisClient != nil {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
		defer func() { _ = redisClient.Close() }()
	}

	renderer, err := notification.NewRenderer()
	if err != nil {
		log.Fatal("Failed to parse email templates", zap.Error(err))
	}
	var sender notification.Sender
	if cfg.Resend.APIKey != "" {
		sender = notification.NewResendSender(cfg.Resend.APIKey, cfg.Resend.FromEmail, renderer, log)
	} else {
		log.Warn("RESEND_API_KEY not set, emails are logged instead of sent")
		sender = notification.NewLogSender(renderer, log)
	}

	var files upload.FileStore
	if cfg.S3.Enabled() {
		files, err = storage.NewS3FileStore(ctx, &cfg.S3, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize S3 file store", zap.Error(err))
		}
	} else {
		log.Warn("S3 not configured, uploads are kept in memory")
		files = storage.NewStubFileStore(cfg.S3.FileURL)
	}

	// Repositories
	brandRepo := persistence.NewGormBrandRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	// Event bus and subscribers
	eventBus := event.NewInMemoryEventBus(log)

	revalidation := catalogapp.NewRevalidationHandler(
		storefront.NewClient(cfg.Storefront.URL, cfg.Storefront.RevalidationSecret, &http.Client{Timeout: storefrontTimeout}),
		log,
	)
	eventBus.Subscribe(revalidation, revalidation.EventTypes()...)

	confirmationService := orderapp.NewConfirmationService(orderRepo, sender, cfg.Admin.Email, log)
	orderPlaced := orderapp.NewOrderPlacedHandler(confirmationService, log)
	eventBus.Subscribe(orderPlaced, orderPlaced.EventTypes()...)

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// Application services
	brandService := brandapp.NewBrandService(brandRepo, brandCache, log)
	productService := catalogapp.NewProductService(productRepo, eventBus, log)
	productBrandService := linkapp.NewProductBrandService(
		persistence.NewGormProductBrandRepository(db.DB), brandRepo, productRepo, brandService, log,
	)
	collectionService := collectionapp.NewCollectionService(
		persistence.NewGormCollectionRepository(db.DB),
		persistence.NewGormCollectionImageRepository(db.DB),
		persistence.NewGormCollectionImageLinkRepository(db.DB),
		files,
		log,
	)
	newsletterService := newsletterapp.NewNewsletterService(
		persistence.NewGormNewsletterRepository(db.DB), sender, cfg.Storefront.URL, log,
	)
	webhookService := paymentapp.NewWebhookService(
		payment.NewStripeWebhookVerifier(cfg.Stripe.WebhookSecret), orderRepo, eventBus, log,
	)
	jwtService := auth.NewJWTService(cfg.JWT, cfg.Admin.APIKey)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	newsletterLimiter := middleware.NewRateLimiter(cfg.HTTP.NewsletterRateLimit, cfg.HTTP.NewsletterRateWindow)
	defer newsletterLimiter.Stop()

	engine, err := router.NewEngine(router.EngineConfig{
		HTTP:      cfg.HTTP,
		CORS:      cfg.CORS,
		Telemetry: cfg.Telemetry,
		Auth: middleware.JWTMiddlewareConfig{
			JWTService:     jwtService,
			TokenBlacklist: blacklist,
			Logger:         log,
		},
		Logger:            log,
		NewsletterLimiter: newsletterLimiter,
	}, router.Handlers{
		Health:         handler.NewHealthHandler(db),
		Auth:           handler.NewAuthHandler(jwtService, blacklist),
		Brand:          handler.NewBrandHandler(brandService),
		ProductBrand:   handler.NewProductBrandHandler(productBrandService),
		Product:        handler.NewProductHandler(productService),
		Collection:     handler.NewCollectionHandler(collectionService),
		Upload:         handler.NewUploadHandler(upload.NewService(files, log), cfg.HTTP.MaxUploadFiles, cfg.HTTP.MaxUploadFileSizeMBytes),
		Newsletter:     handler.NewNewsletterHandler(newsletterService),
		Order:          handler.NewOrderHandler(confirmationService),
		PaymentWebhook: handler.NewPaymentWebhookHandler(webhookService),
	})
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop event bus", zap.Error(err))
	}
	if err := tracer.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to flush traces", zap.Error(err))
	}
	if err := logExport.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to flush logs", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
