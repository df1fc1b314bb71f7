package auth

import (
	"context"

	"github.com/talenthub/account-service/internal/domain"
)

// Refresh exchanges a live refresh token for a fresh pair. The old token
// dies on first successful use. Claims come from the current user record,
// so a role or name edit lands in the next access token; a deleted user
// surfaces as an invalidated session rather than a token error.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (AuthTokens, domain.User, error) {
	fail := func(err error) (AuthTokens, domain.User, error) {
		return AuthTokens{}, domain.User{}, err
	}

	if refreshToken == "" {
		return fail(domain.ErrRefreshTokenInvalid())
	}

	userID, err := s.sessions.GetUserIDByRefreshToken(ctx, refreshToken)
	if err != nil {
		// Expired, revoked, and unknown all collapse into one answer.
		return fail(domain.ErrRefreshTokenInvalid())
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if domain.Is(err, "user_not_found") {
			return fail(domain.ErrSessionInvalidated())
		}
		return fail(err)
	}

	newRefresh, err := s.sessions.RotateRefreshToken(ctx, refreshToken, s.refreshTTL)
	if err != nil {
		return fail(domain.ErrRefreshTokenInvalid())
	}

	access, err := s.signer.SignAccessToken(claimsFromUser(u), s.accessTTL)
	if err != nil {
		return fail(domain.ErrTokenSignFailed(err))
	}

	return AuthTokens{
		AccessToken:  access,
		RefreshToken: newRefresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, u, nil
}
