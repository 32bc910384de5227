package redisstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// SessionStore persists the console session in Redis under two independent
// keys, one for the bearer token and one for the encoded user record.
// Writes go through a transaction pipeline so both keys land in a single
// MULTI/EXEC round trip; clears likewise remove both.
type SessionStore struct {
	client   *redis.Client
	tokenKey string
	userKey  string
}

// NewSessionStore creates a SessionStore using the given key names.
func NewSessionStore(client *redis.Client, tokenKey, userKey string) *SessionStore {
	return &SessionStore{client: client, tokenKey: tokenKey, userKey: userKey}
}

// Load returns whatever is present under the two keys. Missing keys come
// back as zero values, not errors; judging consistency is the session
// manager's job.
func (s *SessionStore) Load(ctx context.Context) (string, []byte, error) {
	vals, err := s.client.MGet(ctx, s.tokenKey, s.userKey).Result()
	if err != nil {
		return "", nil, fmt.Errorf("session load: %w", err)
	}

	var token string
	var userData []byte
	if v, ok := vals[0].(string); ok {
		token = v
	}
	if v, ok := vals[1].(string); ok {
		userData = []byte(v)
	}
	return token, userData, nil
}

// Save writes token and user record together. No TTL: the session lives
// until logout or until the manager purges it as corrupt.
func (s *SessionStore) Save(ctx context.Context, token string, userData []byte) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.tokenKey, token, 0)
	pipe.Set(ctx, s.userKey, userData, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

// Clear removes both keys.
func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.tokenKey, s.userKey).Err(); err != nil {
		return fmt.Errorf("session clear: %w", err)
	}
	return nil
}
