package spots

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/FACorreiaa/go-trip-itinerary/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

var _ Source = (*CachedSource)(nil)

// CachedSource memoizes successful, non-empty results of another source.
type CachedSource struct {
	next  Source
	cache *cache.Cache
}

func NewCachedSource(next Source, ttl time.Duration) *CachedSource {
	return &CachedSource{
		next:  next,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *CachedSource) Name() string { return c.next.Name() }

func (c *CachedSource) Search(ctx context.Context, query string) ([]types.Spot, error) {
	key := "spots:" + c.next.Name() + ":" + normalizeQuery(query)
	if cached, found := c.cache.Get(key); found {
		metrics.Get().SpotCacheHitsTotal.Add(ctx, 1,
			metric.WithAttributes(attribute.String("source", c.next.Name())))
		return cloneSpots(cached.([]types.Spot)), nil
	}

	result, err := c.next.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(result) > 0 {
		c.cache.Set(key, cloneSpots(result), cache.DefaultExpiration)
	}
	return result, nil
}
