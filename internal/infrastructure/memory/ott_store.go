package memory

import (
	"context"
	"sync"
	"time"

	"github.com/talenthub/account-service/internal/application/auth"
	"github.com/talenthub/account-service/internal/domain"
)

type ottEntry struct {
	userID    string
	expiresAt time.Time
}

// OneTimeTokenStore is the in-process stand-in for the redis store. Expiry
// is checked on read; nothing sweeps the map, which is fine for dev and
// tests where the process is short-lived.
type OneTimeTokenStore struct {
	mu   sync.RWMutex
	data map[string]ottEntry // kind|token -> entry
}

func NewOneTimeTokenStore() *OneTimeTokenStore {
	return &OneTimeTokenStore{data: make(map[string]ottEntry)}
}

func ottMapKey(kind auth.OneTimeTokenKind, token string) string {
	return string(kind) + "|" + token
}

func (s *OneTimeTokenStore) Save(ctx context.Context, kind auth.OneTimeTokenKind, token string, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[ottMapKey(kind, token)] = ottEntry{
		userID:    userID,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (s *OneTimeTokenStore) Consume(ctx context.Context, kind auth.OneTimeTokenKind, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := ottMapKey(kind, token)
	entry, ok := s.data[k]
	delete(s.data, k)
	if !ok || time.Now().After(entry.expiresAt) {
		return "", domain.ErrResetTokenNotFound()
	}
	return entry.userID, nil
}

func (s *OneTimeTokenStore) Peek(ctx context.Context, kind auth.OneTimeTokenKind, token string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.data[ottMapKey(kind, token)]
	if !ok || time.Now().After(entry.expiresAt) {
		return "", domain.ErrResetTokenNotFound()
	}
	return entry.userID, nil
}
