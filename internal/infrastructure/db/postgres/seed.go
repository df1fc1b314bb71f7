package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/talenthub/account-service/internal/domain"
)

type SeederHasher interface {
	Hash(password string) (string, error)
}

type SeederRepo interface {
	Create(ctx context.Context, u domain.User) (domain.User, error)
}

type devAccount struct {
	name     string
	email    string
	role     string
	password string
	skills   []string
}

// One account per role so every flow is reachable on a fresh dev database.
var devAccounts = []devAccount{
	{name: "Admin", email: "admin@example.com", role: string(domain.RoleAdmin), password: "AdminPassword123!"},
	{name: "Lewis Hamilton", email: "lewis@example.com", role: string(domain.RoleCandidate), password: "CandidatePassword123!",
		skills: []string{"JavaScript", "React", "Node.js"}},
	{name: "Rita Recruiter", email: "rita@example.com", role: string(domain.RoleRecruiter), password: "RecruiterPassword123!"},
}

// SeedUsers inserts the dev accounts. Safe to run on every boot: an insert
// that collides with an existing email is skipped silently.
func SeedUsers(ctx context.Context, repo SeederRepo, hasher SeederHasher) {
	for _, acc := range devAccounts {
		hash, err := hasher.Hash(acc.password)
		if err != nil {
			log.Warn().Err(err).Str("email", acc.email).Msg("[seed] hash failed")
			continue
		}

		_, err = repo.Create(ctx, domain.User{
			ID:           uuid.NewString(),
			Name:         acc.name,
			Email:        acc.email,
			PasswordHash: hash,
			Role:         acc.role,
			Skills:       acc.skills,
		})
		if err != nil {
			continue
		}
	}

	log.Info().Msg("[seed] postgres users seeded")
}
