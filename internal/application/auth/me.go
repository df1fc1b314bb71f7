package auth

import (
	"context"
	"strings"

	"github.com/talenthub/account-service/internal/domain"
)

// GetUserByID backs the /me endpoint: a fresh read so the response reflects
// role or profile changes made since the access token was issued.
func (s *Service) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.User{}, domain.ErrMissingField("user_id")
	}
	return s.users.GetByID(ctx, userID)
}
