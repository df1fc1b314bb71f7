package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/talenthub/account-service/internal/application/signup"
	"github.com/talenthub/account-service/internal/domain"
)

// WizardStore keeps signup drafts in Redis so a half-finished wizard survives
// restarts and load-balanced instances. State is stored as JSON under
// ws:<token> with the signup-session TTL; every save refreshes the TTL.
type WizardStore struct {
	rdb    *goredis.Client
	prefix string // "ws:"
}

func NewWizardStore(c *Client) *WizardStore {
	var rdb *goredis.Client
	if c != nil {
		rdb = c.rdb
	}
	return &WizardStore{
		rdb:    rdb,
		prefix: "ws:",
	}
}

func (s *WizardStore) Save(ctx context.Context, token string, st signup.State, ttl time.Duration) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.ErrMissingField("token")
	}
	if s.rdb == nil {
		return errors.New("redis wizard store not configured")
	}
	if ttl <= 0 {
		return domain.ErrMissingField("ttl")
	}

	b, err := json.Marshal(st)
	if err != nil {
		return domain.ErrInternal(err)
	}
	if err := s.rdb.Set(ctx, s.prefix+token, b, ttl).Err(); err != nil {
		return domain.ErrRedisUnavailable(err)
	}
	return nil
}

func (s *WizardStore) Load(ctx context.Context, token string) (signup.State, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return signup.State{}, domain.ErrSignupSessionNotFound()
	}
	if s.rdb == nil {
		return signup.State{}, errors.New("redis wizard store not configured")
	}

	b, err := s.rdb.Get(ctx, s.prefix+token).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return signup.State{}, domain.ErrSignupSessionNotFound()
		}
		return signup.State{}, domain.ErrRedisUnavailable(err)
	}

	var st signup.State
	if err := json.Unmarshal(b, &st); err != nil {
		// corrupted draft: drop it rather than wedging the session
		_ = s.rdb.Del(ctx, s.prefix+token).Err()
		return signup.State{}, domain.ErrSignupSessionNotFound()
	}
	return st, nil
}

func (s *WizardStore) Delete(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil // idempotent
	}
	if s.rdb == nil {
		return errors.New("redis wizard store not configured")
	}
	_ = s.rdb.Del(ctx, s.prefix+token).Err()
	return nil
}
