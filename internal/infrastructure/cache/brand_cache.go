package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/raqueto/backend/internal/domain/brand"
	"github.com/raqueto/backend/internal/domain/shared"
	"github.com/redis/go-redis/v9"
)

// activeBrandsKey is the redis key of the storefront brand list
const activeBrandsKey = "brands:active"

// cachedBrand is the JSON shape of a brand stored in redis
type cachedBrand struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Slug        string         `json:"slug"`
	Description *string        `json:"description"`
	LogoURL     *string        `json:"logo_url"`
	WebsiteURL  *string        `json:"website_url"`
	Order       *int           `json:"order"`
	IsActive    bool           `json:"is_active"`
	Sports      []string       `json:"sports"`
	Country     *string        `json:"country"`
	Metadata    map[string]any `json:"metadata"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func toCached(b brand.Brand) cachedBrand {
	return cachedBrand{
		ID:          b.ID,
		Name:        b.Name,
		Slug:        b.Slug,
		Description: b.Description,
		LogoURL:     b.LogoURL,
		WebsiteURL:  b.WebsiteURL,
		Order:       b.Order,
		IsActive:    b.IsActive,
		Sports:      b.Sports,
		Country:     b.Country,
		Metadata:    b.Metadata,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func (c cachedBrand) toDomain() brand.Brand {
	return brand.Brand{
		BaseEntity: shared.BaseEntity{
			ID:        c.ID,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		},
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		LogoURL:     c.LogoURL,
		WebsiteURL:  c.WebsiteURL,
		Order:       c.Order,
		IsActive:    c.IsActive,
		Sports:      c.Sports,
		Country:     c.Country,
		Metadata:    c.Metadata,
	}
}

// RedisBrandCache stores the active brand list in redis as JSON
type RedisBrandCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisBrandCache creates a redis-backed brand list cache
func NewRedisBrandCache(client *redis.Client, ttl time.Duration) *RedisBrandCache {
	return &RedisBrandCache{client: client, ttl: ttl}
}

// GetActive returns the cached list
func (c *RedisBrandCache) GetActive(ctx context.Context) ([]brand.Brand, bool, error) {
	raw, err := c.client.Get(ctx, activeBrandsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read brand cache: %w", err)
	}

	var cached []cachedBrand
	if err := json.Unmarshal(raw, &cached); err != nil {
		// A corrupt entry counts as a miss; the next SetActive overwrites it.
		return nil, false, nil
	}
	brands := make([]brand.Brand, 0, len(cached))
	for _, cb := range cached {
		brands = append(brands, cb.toDomain())
	}
	return brands, true, nil
}

// SetActive stores the list with the configured TTL
func (c *RedisBrandCache) SetActive(ctx context.Context, brands []brand.Brand) error {
	cached := make([]cachedBrand, 0, len(brands))
	for _, b := range brands {
		cached = append(cached, toCached(b))
	}
	raw, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("failed to encode brand cache: %w", err)
	}
	if err := c.client.Set(ctx, activeBrandsKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write brand cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached list
func (c *RedisBrandCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, activeBrandsKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate brand cache: %w", err)
	}
	return nil
}

var _ brand.ListCache = (*RedisBrandCache)(nil)
