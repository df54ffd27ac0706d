package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/fintrack/internal/domain"

	"github.com/redis/go-redis/v9"
)

const resultKeyPrefix = "emi:result:"

type redisResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResultCache stores results in Redis, expiring each entry after ttl
func NewResultCache(client *redis.Client, ttl time.Duration) ResultCache {
	return &redisResultCache{
		client: client,
		ttl:    ttl,
	}
}

func resultKey(id uuid.UUID) string {
	return resultKeyPrefix + id.String()
}

func (c *redisResultCache) Get(ctx context.Context, id uuid.UUID) (*domain.EMIResult, error) {
	raw, err := c.client.Get(ctx, resultKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var result domain.EMIResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode cached result %s: %w", id, err)
	}

	return &result, nil
}

func (c *redisResultCache) Set(ctx context.Context, id uuid.UUID, result *domain.EMIResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode result %s: %w", id, err)
	}

	return c.client.Set(ctx, resultKey(id), raw, c.ttl).Err()
}

func (c *redisResultCache) Delete(ctx context.Context, id uuid.UUID) error {
	return c.client.Del(ctx, resultKey(id)).Err()
}
