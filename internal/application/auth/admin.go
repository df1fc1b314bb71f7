package auth

import (
	"context"
	"strings"

	"github.com/talenthub/account-service/internal/domain"
)

// AdminSetRole changes a user's role. Active sessions pick the new role up on
// their next claims refresh; no re-login is required.
func (s *Service) AdminSetRole(ctx context.Context, actorID, targetID, role string) error {
	targetID = strings.TrimSpace(targetID)
	if targetID == "" {
		return domain.ErrMissingField("user_id")
	}
	if actorID == targetID {
		return domain.ErrForbidden()
	}
	if !domain.IsValidRole(role) {
		return domain.ErrInvalidRole(role)
	}

	if _, err := s.users.GetByID(ctx, targetID); err != nil {
		return err
	}
	return s.users.SetRole(ctx, targetID, role)
}

// AdminDeleteUser removes an account. Outstanding access tokens die on their
// next claims refresh because the backing record is gone.
func (s *Service) AdminDeleteUser(ctx context.Context, actorID, targetID string) error {
	targetID = strings.TrimSpace(targetID)
	if targetID == "" {
		return domain.ErrMissingField("user_id")
	}
	if actorID == targetID {
		return domain.ErrForbidden()
	}

	if err := s.users.Delete(ctx, targetID); err != nil {
		return err
	}
	_ = s.sessions.RevokeAll(ctx, targetID)
	return nil
}
