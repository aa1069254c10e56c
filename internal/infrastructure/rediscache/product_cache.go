package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	domain "gomart/internal/domain/product"
	"gomart/internal/observability"

	"github.com/redis/go-redis/v9"
)

const componentProductCache = "product_cache"

// ProductCache is a read-through/write-through decorator over a product
// repository. Redis failures degrade to the inner repository; the cache is
// never authoritative for stock checks, it only absorbs read load.
type ProductCache struct {
	inner  domain.Repository
	client *redis.Client
	ttl    time.Duration
	log    observability.Logger
}

func NewProductCache(inner domain.Repository, client *redis.Client, ttl time.Duration, tel observability.Observability) *ProductCache {
	if tel == nil {
		tel = observability.Nop()
	}
	return &ProductCache{
		inner:  inner,
		client: client,
		ttl:    ttl,
		log:    tel.Logger().With(observability.F("component", componentProductCache)),
	}
}

func cacheKey(id string) string { return "product:" + id }

func (c *ProductCache) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	created, err := c.inner.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	c.store(ctx, created)
	return created, nil
}

func (c *ProductCache) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	// Name lookups are rare (registration only); not worth a second index.
	return c.inner.FindByName(ctx, name)
}

func (c *ProductCache) FindAllByID(ctx context.Context, selections []domain.Selection) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(selections))
	var misses []domain.Selection
	seen := make(map[string]bool, len(selections))

	for _, sel := range selections {
		if seen[sel.ID] {
			continue
		}
		seen[sel.ID] = true

		cached, ok := c.lookup(ctx, sel.ID)
		if ok {
			out = append(out, *cached)
			continue
		}
		misses = append(misses, sel)
	}

	if len(misses) == 0 {
		return out, nil
	}

	fetched, err := c.inner.FindAllByID(ctx, misses)
	if err != nil {
		return nil, err
	}
	for i := range fetched {
		c.store(ctx, &fetched[i])
	}
	return append(out, fetched...), nil
}

func (c *ProductCache) UpdateQuantity(ctx context.Context, products []domain.Product) ([]domain.Product, error) {
	updated, err := c.inner.UpdateQuantity(ctx, products)
	if err != nil {
		return nil, err
	}
	for i := range updated {
		c.store(ctx, &updated[i])
	}
	return updated, nil
}

func (c *ProductCache) lookup(ctx context.Context, id string) (*domain.Product, bool) {
	value, err := c.client.Get(ctx, cacheKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.log.Warn("cache_get_failed",
			observability.F("product_id", id),
			observability.F("error", err.Error()),
		)
		return nil, false
	}

	var p domain.Product
	if err := json.Unmarshal([]byte(value), &p); err != nil {
		c.log.Warn("cache_decode_failed", observability.F("product_id", id))
		return nil, false
	}
	return &p, true
}

func (c *ProductCache) store(ctx context.Context, p *domain.Product) {
	payload, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(p.ID), payload, c.ttl).Err(); err != nil {
		c.log.Warn("cache_set_failed",
			observability.F("product_id", p.ID),
			observability.F("error", err.Error()),
		)
	}
}
