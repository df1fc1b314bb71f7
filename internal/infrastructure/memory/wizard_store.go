package memory

import (
	"context"
	"sync"
	"time"

	"github.com/talenthub/account-service/internal/application/signup"
	"github.com/talenthub/account-service/internal/domain"
)

type wizardEntry struct {
	state     signup.State
	expiresAt time.Time
}

// WizardStore keeps signup drafts in memory. Dev fallback when Redis is not
// configured; drafts die with the process.
type WizardStore struct {
	mu   sync.RWMutex
	data map[string]wizardEntry
}

func NewWizardStore() *WizardStore {
	return &WizardStore{data: make(map[string]wizardEntry)}
}

func (s *WizardStore) Save(ctx context.Context, token string, st signup.State, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[token] = wizardEntry{
		state:     st,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (s *WizardStore) Load(ctx context.Context, token string) (signup.State, error) {
	s.mu.RLock()
	e, ok := s.data[token]
	s.mu.RUnlock()

	if !ok {
		return signup.State{}, domain.ErrSignupSessionNotFound()
	}
	if time.Now().After(e.expiresAt) {
		_ = s.Delete(ctx, token)
		return signup.State{}, domain.ErrSignupSessionNotFound()
	}
	return e.state, nil
}

func (s *WizardStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, token)
	return nil
}
