package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"content-planner/domain/model"
	"content-planner/domain/repository"

	"github.com/redis/go-redis/v9"
)

const publicationKeyPrefix = "publications:"

type PublicationCache struct {
	client redis.UniversalClient
}

func NewPublicationCache(client redis.UniversalClient) repository.IPublicationCache {
	return &PublicationCache{client: client}
}

func publicationKey(userID string) string {
	return publicationKeyPrefix + userID
}

// Get reports ok=false on a miss; a nil client always misses.
func (c *PublicationCache) Get(ctx context.Context, userID string) ([]model.RawPublication, bool, error) {
	if c.client == nil {
		return nil, false, nil
	}
	raw, err := c.client.Get(ctx, publicationKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var list []model.RawPublication
	if err := json.Unmarshal(raw, &list); err != nil {
		// drop the corrupt entry so the next read goes to the backend
		_ = c.client.Del(ctx, publicationKey(userID)).Err()
		return nil, false, err
	}
	return list, true, nil
}

func (c *PublicationCache) Set(ctx context.Context, userID string, list []model.RawPublication, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}
	if list == nil {
		list = []model.RawPublication{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, publicationKey(userID), raw, ttl).Err()
}

func (c *PublicationCache) Invalidate(ctx context.Context, userID string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, publicationKey(userID)).Err()
}
