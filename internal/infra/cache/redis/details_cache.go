package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"staysia/internal/app/dto"
	"staysia/internal/app/policies"
)

type DetailsCache struct {
	client goredis.UniversalClient
	ttl    time.Duration
}

func NewDetailsCache(client goredis.UniversalClient, ttl time.Duration) *DetailsCache {
	return &DetailsCache{client: client, ttl: ttl}
}

func detailsKey(propertyID int64) string {
	return keyPrefix + "details:" + strconv.FormatInt(propertyID, 10)
}

func (c *DetailsCache) Get(ctx context.Context, propertyID int64) (dto.PropertyDetails, bool, error) {
	raw, err := c.client.Get(ctx, detailsKey(propertyID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return dto.PropertyDetails{}, false, nil
		}
		return dto.PropertyDetails{}, false, err
	}
	var details dto.PropertyDetails
	if err := json.Unmarshal(raw, &details); err != nil {
		// A payload from an older layout is treated as a miss.
		return dto.PropertyDetails{}, false, nil
	}
	return details, true, nil
}

func (c *DetailsCache) Set(ctx context.Context, propertyID int64, details dto.PropertyDetails) error {
	raw, err := json.Marshal(details)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, detailsKey(propertyID), raw, c.ttl).Err()
}

func (c *DetailsCache) Invalidate(ctx context.Context, propertyID int64) error {
	return c.client.Del(ctx, detailsKey(propertyID)).Err()
}

var _ policies.DetailsCache = (*DetailsCache)(nil)
