package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/raqueto/backend/internal/infrastructure/config"
	"github.com/raqueto/backend/internal/infrastructure/logger"
	"github.com/raqueto/backend/internal/interfaces/http/handler"
	"github.com/raqueto/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Paths kept out of request logs and the latency histogram
const (
	healthPath  = "/health"
	metricsPath = "/metrics"
)

// Handlers groups every HTTP handler mounted by NewEngine
type Handlers struct {
	Health         *handler.HealthHandler
	Auth           *handler.AuthHandler
	Brand          *handler.BrandHandler
	ProductBrand   *handler.ProductBrandHandler
	Product        *handler.ProductHandler
	Collection     *handler.CollectionHandler
	Upload         *handler.UploadHandler
	Newsletter     *handler.NewsletterHandler
	Order          *handler.OrderHandler
	PaymentWebhook *handler.PaymentWebhookHandler
}

// EngineConfig carries the settings NewEngine applies to the middleware chain
type EngineConfig struct {
	HTTP      config.HTTPConfig
	CORS      config.CORSConfig
	Telemetry config.TelemetryConfig
	Auth      middleware.JWTMiddlewareConfig
	Logger    *zap.Logger

	// NewsletterLimiter throttles the public newsletter endpoints; nil disables it
	NewsletterLimiter *middleware.RateLimiter
}

// NewEngine builds the gin engine with the global middleware chain and the
// store, admin, auth and hooks surfaces.
func NewEngine(cfg EngineConfig, h Handlers) (*gin.Engine, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Auth.Logger == nil {
		cfg.Auth.Logger = log
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			return nil, err
		}
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log, healthPath, metricsPath),
		logger.Recovery(log),
		middleware.Tracing(cfg.Telemetry.ServiceName, cfg.Telemetry.Enabled),
		middleware.SpanErrorMarker(),
		middleware.SpanAttributes(),
		middleware.HTTPMetrics(healthPath, metricsPath),
		middleware.Secure(),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	engine.GET(healthPath, h.Health.Health)
	engine.GET(metricsPath, gin.WrapH(promhttp.Handler()))

	r := NewRouter(engine)
	r.Register(storeRoutes(cfg, h)).
		Register(adminRoutes(cfg, h)).
		Register(authRoutes(cfg, h)).
		Register(hookRoutes(h))
	r.Setup()

	return engine, nil
}

func storeRoutes(cfg EngineConfig, h Handlers) *DomainGroup {
	store := NewDomainGroup("store", "/store").AllowPreflight().Use(middleware.CORS(cfg.CORS.Store))

	store.GET("/brands", h.Brand.StoreList).
		GET("/brands/:slug", h.Brand.StoreGet).
		GET("/brands/:slug/products", h.ProductBrand.BrandProducts).
		GET("/collections/:id/images", h.Collection.ListImages)

	newsletter := store.Group("newsletter", "/newsletter")
	if cfg.NewsletterLimiter != nil {
		newsletter.Use(middleware.RateLimit(cfg.NewsletterLimiter))
	}
	newsletter.POST("/subscribe", h.Newsletter.Subscribe).
		POST("/unsubscribe", h.Newsletter.Unsubscribe)

	return store
}

func adminRoutes(cfg EngineConfig, h Handlers) *DomainGroup {
	admin := NewDomainGroup("admin", "/admin").AllowPreflight().Use(
		middleware.CORS(cfg.CORS.Admin),
		middleware.AdminAuth(cfg.Auth),
		middleware.SpanAttributes(),
	)

	admin.GET("/brands", h.Brand.List).
		POST("/brands", h.Brand.Create).
		GET("/brands/:id", h.Brand.Get).
		POST("/brands/:id", h.Brand.Update).
		DELETE("/brands/:id", h.Brand.Delete)

	admin.GET("/products", h.Product.List).
		POST("/products", h.Product.Create).
		GET("/products/:id", h.Product.Get).
		DELETE("/products/:id", h.Product.Delete).
		GET("/products/:id/brand", h.ProductBrand.Get).
		POST("/products/:id/brand", h.ProductBrand.Set).
		DELETE("/products/:id/brand", h.ProductBrand.Remove)

	admin.GET("/collections", h.Collection.List).
		POST("/collections", h.Collection.Create).
		GET("/collections/:id", h.Collection.Get).
		DELETE("/collections/:id", h.Collection.Delete).
		POST("/collections/:id/images", h.Collection.CreateImages).
		GET("/collections/:id/images", h.Collection.ListImages).
		DELETE("/collections/:id/images/:image_id", h.Collection.DeleteImage)

	admin.POST("/uploads", h.Upload.Upload)

	admin.GET("/newsletter", h.Newsletter.List).
		POST("/newsletter", h.Newsletter.Create)

	admin.POST("/orders/:id/confirmation", h.Order.Confirm)

	return admin
}

func authRoutes(cfg EngineConfig, h Handlers) *DomainGroup {
	auth := NewDomainGroup("auth", "/auth").AllowPreflight().Use(middleware.CORS(cfg.CORS.Auth))
	auth.POST("/admin/token", h.Auth.IssueAdminToken).
		DELETE("/admin/token", middleware.AdminAuth(cfg.Auth), h.Auth.RevokeAdminToken)
	return auth
}

func hookRoutes(h Handlers) *DomainGroup {
	return NewDomainGroup("hooks", "/hooks").
		POST("/payment/stripe", h.PaymentWebhook.HandleStripe)
}
