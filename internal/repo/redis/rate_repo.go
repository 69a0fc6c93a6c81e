package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RateRepo keeps fixed-window counters. A window starts on its first increment.
type RateRepo struct {
	client *goredis.Client
}

func NewRateRepo(client *goredis.Client) *RateRepo {
	return &RateRepo{client: client}
}

func (r *RateRepo) IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	if r.client == nil {
		return 0, 0, fmt.Errorf("redis client is nil")
	}
	if key == "" || window <= 0 {
		return 0, 0, fmt.Errorf("invalid rate window payload")
	}

	var incr *goredis.IntCmd
	if _, err := r.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		return nil
	}); err != nil {
		return 0, 0, fmt.Errorf("increment rate key %s: %w", key, err)
	}

	count := incr.Val()
	if count == 1 {
		if err := r.client.Expire(ctx, key, window).Err(); err != nil {
			return 0, 0, fmt.Errorf("set rate key ttl: %w", err)
		}
		return count, window, nil
	}

	ttl, err := r.ttl(ctx, key)
	if err != nil {
		return 0, 0, err
	}
	if ttl == 0 {
		// A key left without expiry would block forever.
		if err := r.client.Expire(ctx, key, window).Err(); err != nil {
			return 0, 0, fmt.Errorf("repair rate key ttl: %w", err)
		}
		ttl = window
	}

	return count, ttl, nil
}

func (r *RateRepo) ttl(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := r.client.TTL(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("read rate key ttl: %w", err)
	}
	if ttl < 0 {
		ttl = 0
	}
	return ttl, nil
}
