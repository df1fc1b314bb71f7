package redis

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/talenthub/account-service/internal/domain"
)

var errSessionsNotConfigured = errors.New("redis session store not configured")

const refreshTokenEntropy = 32 // bytes; 256-bit opaque tokens

// SessionStore keeps refresh-token sessions in Redis.
//
// Layout:
//
//	rt:<token>  -> "<uid>:<ver>"  (TTL = refresh lifetime)
//	rtver:<uid> -> current version counter (no TTL)
//
// A token is only valid while its embedded version matches the user's
// counter, so RevokeAll is a single INCR instead of a key scan.
type SessionStore struct {
	rdb *goredis.Client
}

func NewSessionStore(c *Client) *SessionStore {
	s := &SessionStore{}
	if c != nil {
		s.rdb = c.rdb
	}
	return s
}

func refreshKey(token string) string { return "rt:" + token }
func versionKey(userID string) string { return "rtver:" + userID }

func (s *SessionStore) CreateRefreshToken(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", domain.ErrMissingField("user_id")
	}
	if s.rdb == nil {
		return "", errSessionsNotConfigured
	}

	ver, err := s.currentVersion(ctx, userID)
	if err != nil {
		return "", err
	}
	token, err := mintOpaqueToken()
	if err != nil {
		return "", err
	}

	payload := userID + ":" + strconv.FormatInt(ver, 10)
	if err := s.rdb.Set(ctx, refreshKey(token), payload, ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *SessionStore) RotateRefreshToken(ctx context.Context, oldToken string, ttl time.Duration) (string, error) {
	oldToken = strings.TrimSpace(oldToken)
	if oldToken == "" {
		return "", domain.ErrRefreshTokenInvalid()
	}
	if s.rdb == nil {
		return "", errSessionsNotConfigured
	}

	next, err := mintOpaqueToken()
	if err != nil {
		return "", err
	}

	// Move the session payload to the new key in one script so a replayed
	// old token can never race the rotation. A missing key reports "" since
	// go-redis turns a nil script reply into redis.Nil.
	const moveScript = `
local payload = redis.call("GET", KEYS[1])
if not payload then
  return ""
end
redis.call("DEL", KEYS[1])
redis.call("SET", KEYS[2], payload, "PX", ARGV[1])
return payload
`
	ttlms := ttl.Milliseconds()
	if ttlms <= 0 {
		ttlms = (7 * 24 * time.Hour).Milliseconds()
	}

	res, err := s.rdb.Eval(ctx, moveScript,
		[]string{refreshKey(oldToken), refreshKey(next)}, ttlms).Result()
	if err != nil {
		return "", err
	}
	payload, _ := res.(string)
	if payload == "" {
		return "", domain.ErrRefreshTokenInvalid()
	}

	uid, ver, err := parseUIDVer(payload)
	if err != nil {
		return "", domain.ErrRefreshTokenInvalid()
	}

	// A RevokeAll between GET and now makes the rotated copy stale too.
	cur, err := s.currentVersion(ctx, uid)
	if err != nil {
		return "", err
	}
	if ver != cur {
		_ = s.rdb.Del(ctx, refreshKey(next)).Err()
		return "", domain.ErrRefreshTokenInvalid()
	}
	return next, nil
}

// RevokeRefreshToken is idempotent: unknown and blank tokens are no-ops.
func (s *SessionStore) RevokeRefreshToken(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	if s.rdb == nil {
		return errSessionsNotConfigured
	}
	_ = s.rdb.Del(ctx, refreshKey(token)).Err()
	return nil
}

func (s *SessionStore) RevokeAll(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return domain.ErrMissingField("user_id")
	}
	if s.rdb == nil {
		return errSessionsNotConfigured
	}
	return s.rdb.Incr(ctx, versionKey(userID)).Err()
}

func (s *SessionStore) GetUserIDByRefreshToken(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", domain.ErrRefreshTokenInvalid()
	}
	if s.rdb == nil {
		return "", errSessionsNotConfigured
	}

	payload, err := s.rdb.Get(ctx, refreshKey(token)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", domain.ErrRefreshTokenInvalid()
	}
	if err != nil {
		return "", err
	}

	uid, ver, err := parseUIDVer(payload)
	if err != nil {
		return "", domain.ErrRefreshTokenInvalid()
	}

	cur, err := s.currentVersion(ctx, uid)
	if err != nil {
		return "", err
	}
	if ver != cur {
		// Lazily drop tokens stranded by RevokeAll.
		_ = s.rdb.Del(ctx, refreshKey(token)).Err()
		return "", domain.ErrRefreshTokenInvalid()
	}
	return uid, nil
}

func (s *SessionStore) currentVersion(ctx context.Context, userID string) (int64, error) {
	key := versionKey(userID)

	raw, err := s.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		if n, perr := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); perr == nil {
			return n, nil
		}
		// unparseable counter: repair below
	case !errors.Is(err, goredis.Nil):
		return 0, err
	}

	_ = s.rdb.SetNX(ctx, key, "0", 0).Err()
	return 0, nil
}

func parseUIDVer(payload string) (uid string, ver int64, err error) {
	i := strings.LastIndexByte(payload, ':')
	if i <= 0 {
		return "", 0, fmt.Errorf("malformed session payload")
	}
	uid = strings.TrimSpace(payload[:i])
	if uid == "" {
		return "", 0, fmt.Errorf("malformed session payload")
	}
	ver, err = strconv.ParseInt(strings.TrimSpace(payload[i+1:]), 10, 64)
	if err != nil {
		return "", 0, err
	}
	return uid, ver, nil
}

func mintOpaqueToken() (string, error) {
	b := make([]byte, refreshTokenEntropy)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
