package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kargopanel/mng-bridge/internal/core/domain"
)

const (
	keyCities         = "geo:cities"
	keyDistrictPrefix = "geo:districts:"

	// The carrier directory changes rarely; a day of staleness is acceptable.
	defaultGeoTTL = 24 * time.Hour
)

// GeoCache caches carrier directory lists as JSON blobs with a TTL.
type GeoCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewGeoCache(client *redis.Client, ttl time.Duration) *GeoCache {
	if ttl <= 0 {
		ttl = defaultGeoTTL
	}
	return &GeoCache{client: client, ttl: ttl}
}

func (c *GeoCache) GetCities(ctx context.Context) ([]domain.GeoEntry, bool, error) {
	return c.get(ctx, keyCities)
}

func (c *GeoCache) SetCities(ctx context.Context, entries []domain.GeoEntry) error {
	return c.set(ctx, keyCities, entries)
}

func (c *GeoCache) GetDistricts(ctx context.Context, cityCode string) ([]domain.GeoEntry, bool, error) {
	return c.get(ctx, keyDistrictPrefix+cityCode)
}

func (c *GeoCache) SetDistricts(ctx context.Context, cityCode string, entries []domain.GeoEntry) error {
	return c.set(ctx, keyDistrictPrefix+cityCode, entries)
}

func (c *GeoCache) get(ctx context.Context, key string) ([]domain.GeoEntry, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var entries []domain.GeoEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false, err
	}
	return entries, true, nil
}

func (c *GeoCache) set(ctx context.Context, key string, entries []domain.GeoEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}
