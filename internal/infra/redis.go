package infra

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedis connects the shared Redis client used for the list caches, the
// job queues, and their dead-letter lists. The startup ping is deliberate:
// workers that silently spin on a dead broker are worse than a failed boot.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}
