package store

import (
	"context"
	"errors"
	"time"

	"cart-engine/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisNonceStore keeps the staging idempotency nonce next to the cart under
// <prefix>:<sessionID>:nonce with the same TTL, so nonce and cart expire
// together. A missing or unreadable nonce is simply reminted.
type RedisNonceStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisNonceStore(client *redis.Client, prefix string, ttl time.Duration) *RedisNonceStore {
	return &RedisNonceStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisNonceStore) Current(ctx context.Context, sessionID uuid.UUID) (uuid.UUID, error) {
	key := s.key(sessionID)

	val, err := s.client.Get(ctx, key).Result()
	if err == nil {
		if nonce, parseErr := uuid.Parse(val); parseErr == nil {
			return nonce, nil
		}
		// Unparseable nonce: remint below.
	} else if !errors.Is(err, redis.Nil) {
		return uuid.Nil, errs.Wrap(err, "redis get nonce failed")
	}

	nonce := uuid.New()
	if err := s.client.Set(ctx, key, nonce.String(), s.ttl).Err(); err != nil {
		return uuid.Nil, errs.Wrap(err, "redis set nonce failed")
	}
	return nonce, nil
}

func (s *RedisNonceStore) Rotate(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return errs.Wrap(err, "redis delete nonce failed")
	}
	return nil
}

func (s *RedisNonceStore) key(sessionID uuid.UUID) string {
	return s.prefix + ":" + sessionID.String() + ":nonce"
}
