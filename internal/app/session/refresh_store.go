// Package session keeps opaque refresh tokens in Redis.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stepik_backend/internal/common"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type RefreshStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRefreshStore(rdb *redis.Client, prefix string, ttl time.Duration) *RefreshStore {
	return &RefreshStore{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (s *RefreshStore) key(token string) string {
	return s.prefix + "refresh:" + token
}

// Issue creates a refresh token bound to userID.
func (s *RefreshStore) Issue(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	if err := s.rdb.Set(ctx, s.key(token), userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("RefreshStore.Issue: %w", err)
	}
	return token, nil
}

// Consume atomically reads and deletes token, returning the bound user id.
// Unknown, expired or already used tokens yield common.ErrUnauthorized.
func (s *RefreshStore) Consume(ctx context.Context, token string) (string, error) {
	userID, err := s.rdb.GetDel(ctx, s.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("refresh token invalid or expired: %w", common.ErrUnauthorized)
		}
		return "", fmt.Errorf("RefreshStore.Consume: %w", err)
	}
	return userID, nil
}

// Revoke deletes token. Revoking an unknown token is not an error.
func (s *RefreshStore) Revoke(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("RefreshStore.Revoke: %w", err)
	}
	return nil
}
