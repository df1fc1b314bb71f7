package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/talenthub/account-service/internal/domain"
)

// Register creates an account with a hashed password and signs the user in.
// The signup wizard calls this at finalize time with the role derived from
// the chosen branch.
func (s *Service) Register(ctx context.Context, name, email, password, role string) (RegisterResult, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" {
		return RegisterResult{}, domain.ErrMissingField("name")
	}
	if email == "" || password == "" {
		return RegisterResult{}, domain.ErrInvalidField("email/password", "empty")
	}
	if !domain.IsValidRole(role) {
		return RegisterResult{}, domain.ErrInvalidRole(role)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return RegisterResult{}, domain.ErrHashFailed(err)
	}

	u := domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return RegisterResult{}, err
	}

	toks, err := s.issueTokens(ctx, created)
	if err != nil {
		return RegisterResult{}, err
	}

	// Welcome mail is best-effort; registration already succeeded.
	_ = s.pub.PublishUserRegistered(ctx, UserRegisteredEvent{
		UserID: created.ID,
		Name:   created.Name,
		Email:  created.Email,
		Role:   created.Role,
	})

	return RegisterResult{User: created, Tokens: toks}, nil
}
