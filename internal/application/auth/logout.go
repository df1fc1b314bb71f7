package auth

import (
	"context"
	"strings"
)

// Logout drops the presented refresh token. A missing token is not an error:
// the client may have already lost its cookie and the outcome is the same.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return nil
	}
	return s.sessions.RevokeRefreshToken(ctx, refreshToken)
}
