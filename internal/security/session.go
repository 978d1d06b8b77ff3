package security

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/klimenko666/dptmptch/internal/common"
)

const sessionKeyPrefix = "session:"

// SessionStore maps opaque cookie tokens to employer ids in Redis.
// Tokens expire after the configured TTL; logout deletes them eagerly.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Create(ctx context.Context, employerID common.UUID) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := base64.RawURLEncoding.EncodeToString(raw)
	if err := s.client.Set(ctx, sessionKeyPrefix+token, employerID.String(), s.ttl).Err(); err != nil {
		return "", common.NewError(common.CodeUnavailable, "session store unreachable", err)
	}
	return token, nil
}

func (s *SessionStore) Get(ctx context.Context, token string) (common.UUID, error) {
	if token == "" {
		return "", common.NewError(common.CodeUnauthorized, "missing session", nil)
	}
	value, err := s.client.Get(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", common.NewError(common.CodeUnauthorized, "session expired", err)
		}
		return "", common.NewError(common.CodeUnavailable, "session store unreachable", err)
	}
	id, err := common.ParseUUID(value)
	if err != nil {
		return "", common.NewError(common.CodeUnauthorized, "invalid session", err)
	}
	return id, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.client.Del(ctx, sessionKeyPrefix+token).Err()
}
