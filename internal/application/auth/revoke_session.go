package auth

import (
	"context"

	"github.com/talenthub/account-service/internal/domain"
)

// SessionsRevoke signs the user out everywhere by revoking every refresh
// token that belongs to them.
func (s *Service) SessionsRevoke(ctx context.Context, userID string) error {
	if userID == "" {
		return domain.ErrMissingField("user_id")
	}
	return s.sessions.RevokeAll(ctx, userID)
}
