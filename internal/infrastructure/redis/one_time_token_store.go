package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/talenthub/account-service/internal/application/auth"
	"github.com/talenthub/account-service/internal/domain"
)

var errOTTNotConfigured = errors.New("redis one-time-token store not configured")

// OneTimeTokenStore holds opaque single-use tokens (password reset) under
// ott:<kind>:<token> -> userID with the token's TTL.
type OneTimeTokenStore struct {
	rdb *goredis.Client
}

func NewOneTimeTokenStore(c *Client) *OneTimeTokenStore {
	s := &OneTimeTokenStore{}
	if c != nil {
		s.rdb = c.rdb
	}
	return s
}

func ottKey(kind auth.OneTimeTokenKind, token string) string {
	return "ott:" + string(kind) + ":" + token
}

// Save overwrites any previous token of the same value; each reset request
// mints a fresh token so collisions only happen on purpose.
func (s *OneTimeTokenStore) Save(ctx context.Context, kind auth.OneTimeTokenKind, token string, userID string, ttl time.Duration) error {
	token = strings.TrimSpace(token)
	userID = strings.TrimSpace(userID)
	switch {
	case token == "":
		return domain.ErrMissingField("token")
	case userID == "":
		return domain.ErrMissingField("user_id")
	case ttl <= 0:
		return domain.ErrMissingField("ttl")
	}
	if s.rdb == nil {
		return errOTTNotConfigured
	}
	return s.rdb.Set(ctx, ottKey(kind, token), userID, ttl).Err()
}

// Consume returns the owner and deletes the token in one step.
func (s *OneTimeTokenStore) Consume(ctx context.Context, kind auth.OneTimeTokenKind, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", domain.ErrMissingField("token")
	}
	if s.rdb == nil {
		return "", errOTTNotConfigured
	}

	// Returns "" rather than nil for a missing token: go-redis maps a nil
	// script reply to redis.Nil and we want a plain value either way.
	const takeScript = `
local owner = redis.call("GET", KEYS[1])
if not owner then
  return ""
end
redis.call("DEL", KEYS[1])
return owner
`
	res, err := s.rdb.Eval(ctx, takeScript, []string{ottKey(kind, token)}).Result()
	if err != nil {
		return "", fmt.Errorf("ott consume: %w", err)
	}

	owner, _ := res.(string)
	if strings.TrimSpace(owner) == "" {
		return "", domain.ErrResetTokenNotFound()
	}
	return owner, nil
}

// Peek checks validity without spending the token (the validate endpoint).
func (s *OneTimeTokenStore) Peek(ctx context.Context, kind auth.OneTimeTokenKind, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", domain.ErrMissingField("token")
	}
	if s.rdb == nil {
		return "", errOTTNotConfigured
	}

	owner, err := s.rdb.Get(ctx, ottKey(kind, token)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", domain.ErrResetTokenNotFound()
	}
	if err != nil {
		return "", fmt.Errorf("ott peek: %w", err)
	}
	if strings.TrimSpace(owner) == "" {
		return "", domain.ErrResetTokenNotFound()
	}
	return owner, nil
}
