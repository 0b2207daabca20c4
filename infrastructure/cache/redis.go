package cache

import (
	"context"

	"content-planner/infrastructure/logger"

	"github.com/redis/go-redis/v9"
)

// NewCache dials redis and pings it once.
func NewCache(ctx context.Context, addr, username, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.GetLogger().WithField("addr", addr).WithField("error", err).Warn("Redis not reachable")
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
