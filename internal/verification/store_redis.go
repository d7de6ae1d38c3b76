// Copyright (c) 2026 Grota. All rights reserved.
// Author: plataforma@grota.com.br

package verification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/grotaveiculos/gateway/internal/platform/constants"
)

// RedisTokenStore implements [TokenStore] using Redis.
//
// Records are JSON-encoded under a kind-qualified key. The Redis TTL is the
// logical lifetime plus [constants.VerificationRecordGrace], so a token that
// lapsed recently still resolves and reports "expired" instead of "invalid".
type RedisTokenStore struct {
	client *redis.Client
}

// NewRedisTokenStore creates a new Redis-backed [TokenStore].
func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

// key builds the kind-qualified Redis key for a token.
func (store *RedisTokenStore) key(kind Kind, token string) string {
	prefix := constants.RedisPrefixVerifyToken
	if kind == KindPasswordReset {
		prefix = constants.RedisPrefixResetToken
	}
	return fmt.Sprintf("%s%s", prefix, token)
}

/*
Set stores a token record with its retention TTL.

Parameters:
  - ctx: context.Context
  - kind: Kind
  - token: string
  - record: Record

Returns:
  - error: Encoding or execution failures
*/
func (store *RedisTokenStore) Set(ctx context.Context, kind Kind, token string, record Record) error {

	// Encode the record as JSON
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("redis_verification_set_encode_failed: %w", err)
	}

	// Retain past logical expiry so "expired" stays observable
	retention := time.Until(record.ExpiresAt) + constants.VerificationRecordGrace

	if err := store.client.Set(ctx, store.key(kind, token), payload, retention).Err(); err != nil {
		return fmt.Errorf("redis_verification_set_failed: %w", err)
	}

	return nil
}

/*
Get retrieves the record for a (kind, token) pair.

Description: Returns ErrTokenNotFound if the token is absent (unknown,
consumed, or past its retention window).

Parameters:
  - ctx: context.Context
  - kind: Kind
  - token: string

Returns:
  - *Record: Hydrated record
  - error: ErrTokenNotFound or connectivity failures
*/
func (store *RedisTokenStore) Get(ctx context.Context, kind Kind, token string) (*Record, error) {
	payload, err := store.client.Get(ctx, store.key(kind, token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("redis_verification_get_failed: %w", err)
	}

	var record Record
	if err := json.Unmarshal(payload, &record); err != nil {
		// A corrupted record cannot be redeemed; treat like an unknown token.
		return nil, ErrTokenNotFound
	}

	return &record, nil
}

/*
Delete removes the token from Redis after successful use.

Parameters:
  - ctx: context.Context
  - kind: Kind
  - token: string

Returns:
  - error: Execution failures
*/
func (store *RedisTokenStore) Delete(ctx context.Context, kind Kind, token string) error {
	if err := store.client.Del(ctx, store.key(kind, token)).Err(); err != nil {
		return fmt.Errorf("redis_verification_delete_failed: %w", err)
	}
	return nil
}
