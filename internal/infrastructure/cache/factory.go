package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/raqueto/backend/internal/domain/brand"
	"github.com/raqueto/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BrandCacheFactory creates the brand list cache based on configuration
type BrandCacheFactory struct {
	redisConfig           config.RedisConfig
	ttl                   time.Duration
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// BrandCacheFactoryOption is a functional option for configuring the factory
type BrandCacheFactoryOption func(*BrandCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) BrandCacheFactoryOption {
	return func(f *BrandCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory cache when Redis is unavailable.
// Default is true.
func WithInMemoryFallback(allow bool) BrandCacheFactoryOption {
	return func(f *BrandCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewBrandCacheFactory creates a new factory
func NewBrandCacheFactory(cfg config.RedisConfig, ttl time.Duration, opts ...BrandCacheFactoryOption) *BrandCacheFactory {
	f := &BrandCacheFactory{
		redisConfig:           cfg,
		ttl:                   ttl,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Create returns a redis cache when REDIS_URL is set and reachable, else an
// in-memory cache if fallback is allowed. The returned client is nil for the
// in-memory cache; callers close it on shutdown otherwise.
func (f *BrandCacheFactory) Create(ctx context.Context) (brand.ListCache, *redis.Client, error) {
	if f.redisConfig.URL == "" {
		f.logger.Info("REDIS_URL not set, using in-memory brand cache")
		return NewInMemoryBrandCache(f.ttl), nil, nil
	}

	client, err := NewRedisClient(ctx, f.redisConfig)
	if err == nil {
		f.logger.Info("using Redis brand cache")
		return NewRedisBrandCache(client, f.ttl), client, nil
	}

	if !f.allowInMemoryFallback {
		return nil, nil, fmt.Errorf("redis required for brand cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory brand cache", zap.Error(err))
	return NewInMemoryBrandCache(f.ttl), nil, nil
}
