// Copyright (c) 2026 RateFlix. All rights reserved.
// Author: dev@rateflix.app

package scoring

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rateflix/rateflix/internal/platform/constants"
)

// ScoreCache caches blended public scores keyed by content ID.
//
// The aggregator writes through the cache on every recompute, so reads are
// only stale across out-of-band database edits — bounded by the TTL.
type ScoreCache interface {

	/*
		GetPublicScore returns the cached public score for a content item.

		Parameters:
		  - context: context.Context
		  - contentID: int64

		Returns:
		  - float64: The cached score (zero on miss)
		  - bool: Whether the key was present
		  - error: Transport failures
	*/
	GetPublicScore(context context.Context, contentID int64) (float64, bool, error)

	/*
		SetPublicScore stores the public score for a content item with the
		standard TTL.

		Parameters:
		  - context: context.Context
		  - contentID: int64
		  - score: float64

		Returns:
		  - error: Transport failures
	*/
	SetPublicScore(context context.Context, contentID int64, score float64) error
}

// # Redis Implementation

// RedisScoreCache is the production [ScoreCache] backed by Redis.
type RedisScoreCache struct {
	client *redis.Client
}

// NewRedisScoreCache wraps an established Redis client as a score cache.
func NewRedisScoreCache(client *redis.Client) *RedisScoreCache {
	return &RedisScoreCache{client: client}
}

func (c *RedisScoreCache) key(contentID int64) string {
	return constants.RedisPrefixPublicScore + strconv.FormatInt(contentID, 10)
}

// GetPublicScore implements [ScoreCache].
func (c *RedisScoreCache) GetPublicScore(ctx context.Context, contentID int64) (float64, bool, error) {
	raw, err := c.client.Get(ctx, c.key(contentID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	score, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		// Corrupt entry: treat as a miss, the next recompute overwrites it.
		return 0, false, nil
	}

	return score, true, nil
}

// SetPublicScore implements [ScoreCache].
func (c *RedisScoreCache) SetPublicScore(ctx context.Context, contentID int64, score float64) error {
	value := strconv.FormatFloat(score, 'f', 1, 64)
	return c.client.Set(ctx, c.key(contentID), value, constants.PublicScoreTTL).Err()
}

// # Noop Implementation

// NoopScoreCache is a [ScoreCache] that caches nothing.
//
// Used in tests and in deployments without a Redis instance.
type NoopScoreCache struct{}

// GetPublicScore always misses.
func (NoopScoreCache) GetPublicScore(context.Context, int64) (float64, bool, error) {
	return 0, false, nil
}

// SetPublicScore discards the value.
func (NoopScoreCache) SetPublicScore(context.Context, int64, float64) error {
	return nil
}
