package memory

import (
	"context"
	"sync"

	"github.com/talenthub/account-service/internal/domain"
)

// ProfileStore keeps branch profiles in memory for dev mode.
type ProfileStore struct {
	mu         sync.RWMutex
	candidates map[string]domain.CandidateProfile
	recruiters map[string]domain.RecruiterProfile
}

func NewProfileStore() *ProfileStore {
	return &ProfileStore{
		candidates: make(map[string]domain.CandidateProfile),
		recruiters: make(map[string]domain.RecruiterProfile),
	}
}

func (s *ProfileStore) SaveCandidateProfile(ctx context.Context, p domain.CandidateProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates[p.UserID] = p
	return nil
}

func (s *ProfileStore) SaveRecruiterProfile(ctx context.Context, p domain.RecruiterProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recruiters[p.UserID] = p
	return nil
}

func (s *ProfileStore) GetCandidateProfile(ctx context.Context, userID string) (domain.CandidateProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.candidates[userID]
	if !ok {
		return domain.CandidateProfile{}, domain.ErrUserNotFound()
	}
	return p, nil
}

func (s *ProfileStore) GetRecruiterProfile(ctx context.Context, userID string) (domain.RecruiterProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.recruiters[userID]
	if !ok {
		return domain.RecruiterProfile{}, domain.ErrUserNotFound()
	}
	return p, nil
}
