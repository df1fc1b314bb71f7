package auth

import (
	"context"

	"github.com/talenthub/account-service/internal/domain"
)

func claimsFromUser(u domain.User) TokenClaims {
	return TokenClaims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
		Name:   u.Name,
	}
}

// RefreshClaims re-derives session claims from the persisted user record so
// role/name edits propagate without re-login. The lookup key is the email
// stored in the claims. If the record no longer exists, the session is
// invalidated and the caller must sign the user out.
func (s *Service) RefreshClaims(ctx context.Context, claims TokenClaims) (TokenClaims, error) {
	if claims.Email == "" {
		return TokenClaims{}, domain.ErrSessionInvalidated()
	}

	u, err := s.users.GetByEmail(ctx, claims.Email)
	if err != nil {
		if domain.Is(err, "user_not_found") {
			return TokenClaims{}, domain.ErrSessionInvalidated()
		}
		return TokenClaims{}, err
	}

	fresh := claimsFromUser(u)
	fresh.Exp = claims.Exp
	return fresh, nil
}
