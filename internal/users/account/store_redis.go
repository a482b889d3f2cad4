// Copyright (c) 2026 BoiBritto. All rights reserved.

package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/boibritto/boibritto-api/internal/platform/apperr"
	"github.com/boibritto/boibritto-api/internal/platform/constants"
)

// RedisIdentityCache implements [IdentityCache] using Redis.
//
// It keeps the uid->account mapping hot so the identity middleware does not
// hit PostgreSQL on every authenticated request.
type RedisIdentityCache struct {
	client *redis.Client
}

// NewIdentityCache creates a new Redis-backed [IdentityCache].
func NewIdentityCache(client *redis.Client) *RedisIdentityCache {
	return &RedisIdentityCache{client: client}
}

/*
Get retrieves the cached account UUID for a uid.

Description: Returns apperr.NotFound when the entry is absent or expired.

Parameters:
  - context: context.Context
  - uid: string

Returns:
  - string: Account UUID
  - error: apperr.NotFound or connectivity errors
*/
func (cache *RedisIdentityCache) Get(context context.Context, uid string) (string, error) {
	key := constants.RedisPrefixIdentity + uid

	accountID, err := cache.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Identity mapping")
		}
		return "", fmt.Errorf("redis_identity_get_failed: %w", err)
	}

	return accountID, nil
}

/*
Set stores the uid->account mapping with a TTL.

Parameters:
  - context: context.Context
  - uid: string
  - accountID: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (cache *RedisIdentityCache) Set(context context.Context, uid, accountID string, ttl time.Duration) error {
	key := constants.RedisPrefixIdentity + uid

	if err := cache.client.Set(context, key, accountID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_identity_set_failed: %w", err)
	}

	return nil
}

/*
Invalidate removes the uid->account mapping.

Parameters:
  - context: context.Context
  - uid: string

Returns:
  - error: Deletion failures
*/
func (cache *RedisIdentityCache) Invalidate(context context.Context, uid string) error {
	key := constants.RedisPrefixIdentity + uid

	if err := cache.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_identity_invalidate_failed: %w", err)
	}

	return nil
}
