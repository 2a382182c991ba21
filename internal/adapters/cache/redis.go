package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/viralforge/publish-review-service/internal/domain"
)

const latestKey = "publish_review:latest_submission"

// Connect initializes a Redis client from URL or host:port input.
func Connect(_ context.Context, redisURL string) (*redis.Client, error) {
	if strings.HasPrefix(redisURL, "redis://") {
		opt, parseErr := redis.ParseURL(redisURL)
		if parseErr != nil {
			return nil, fmt.Errorf("parse redis url: %w", parseErr)
		}
		return redis.NewClient(opt), nil
	}
	return redis.NewClient(&redis.Options{Addr: redisURL}), nil
}

type RedisLatestCache struct {
	client *redis.Client
}

func NewRedisLatestCache(client *redis.Client) *RedisLatestCache {
	return &RedisLatestCache{client: client}
}

func (c *RedisLatestCache) Get(ctx context.Context) (domain.Submission, bool, error) {
	raw, err := c.client.Get(ctx, latestKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Submission{}, false, nil
	}
	if err != nil {
		return domain.Submission{}, false, err
	}
	var sub domain.Submission
	if err := json.Unmarshal(raw, &sub); err != nil {
		return domain.Submission{}, false, err
	}
	return sub, true, nil
}

func (c *RedisLatestCache) Set(ctx context.Context, sub domain.Submission, ttl time.Duration) error {
	payload, err := json.Marshal(sub)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, latestKey, payload, ttl).Err()
}

func (c *RedisLatestCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, latestKey).Err()
}
