package auth

import (
	"context"
	"strings"

	"github.com/talenthub/account-service/internal/domain"
)

// Login checks the credentials and issues a token pair. Every rejection
// path returns the same generic error: unknown email, an account with no
// password hash (admin imports), and a wrong password must be
// indistinguishable, or the endpoint becomes an email oracle.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil || u.PasswordHash == "" {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}
	if s.hasher.Compare(u.PasswordHash, password) != nil {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	toks, err := s.issueTokens(ctx, u)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{User: u, Tokens: toks}, nil
}
