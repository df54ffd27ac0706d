package auth

import (
	"context"
	"errors"
	"time"

	customError "github.com/segyhp/fintrack/pkg/errors"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:"
	revokedKeyPrefix = "revoked:"
)

// TokenVerifier resolves a bearer token to the user it was issued for
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// RevocationStore remembers tokens invalidated by logout
type RevocationStore interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
	Revoke(ctx context.Context, token string, ttl time.Duration) error
}

// SessionLifetime reports how long the session behind a token has left
type SessionLifetime interface {
	TTL(ctx context.Context, token string) (time.Duration, error)
}

// SessionStore keeps token to user mappings in Redis. Sessions are written
// by the login flow, which lives outside this service.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client: client,
		ttl:    ttl,
	}
}

// Issue records that token belongs to userID
func (s *SessionStore) Issue(ctx context.Context, token, userID string) error {
	return s.client.Set(ctx, sessionKeyPrefix+token, userID, s.ttl).Err()
}

// Verify returns the user the token was issued for
func (s *SessionStore) Verify(ctx context.Context, token string) (string, error) {
	userID, err := s.client.Get(ctx, sessionKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", customError.ErrSessionNotFound
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

// TTL returns the remaining lifetime of the session for token. A missing
// session or one without expiry yields a non-positive duration.
func (s *SessionStore) TTL(ctx context.Context, token string) (time.Duration, error) {
	return s.client.TTL(ctx, sessionKeyPrefix+token).Result()
}

type redisRevocationStore struct {
	client *redis.Client
}

// NewRevocationStore stores revoked tokens in Redis. Each entry expires
// with the token it revokes, so the set does not grow without bound.
func NewRevocationStore(client *redis.Client) RevocationStore {
	return &redisRevocationStore{client: client}
}

func (s *redisRevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKeyPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *redisRevocationStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	return s.client.Set(ctx, revokedKeyPrefix+token, 1, ttl).Err()
}
