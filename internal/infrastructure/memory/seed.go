package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/talenthub/account-service/internal/domain"
)

// Hasher is the minimal surface we need for seeding.
type Hasher interface {
	Hash(password string) (string, error)
}

// SeedUsers creates initial users for local development (in-memory only).
// Safe to call multiple times (duplicates ignored).
func SeedUsers(ctx context.Context, users *UserRepo, profiles *ProfileStore, hasher Hasher) {
	adminHash, err := hasher.Hash("AdminPassword123!")
	if err != nil {
		log.Warn().Err(err).Msg("[seed] admin hash failed")
		return
	}
	_, _ = users.Create(ctx, domain.User{
		ID:           uuid.NewString(),
		Name:         "Admin",
		Email:        "admin@example.com",
		PasswordHash: adminHash,
		Role:         string(domain.RoleAdmin),
	})

	candHash, err := hasher.Hash("CandidatePassword123!")
	if err != nil {
		log.Warn().Err(err).Msg("[seed] candidate hash failed")
		return
	}
	cand := domain.User{
		ID:           uuid.NewString(),
		Name:         "Lewis Hamilton",
		Email:        "lewis@example.com",
		PasswordHash: candHash,
		Role:         string(domain.RoleCandidate),
		Skills:       []string{"JavaScript", "React", "Node.js"},
	}
	if _, err := users.Create(ctx, cand); err == nil {
		_ = profiles.SaveCandidateProfile(ctx, domain.CandidateProfile{
			UserID:             cand.ID,
			Skills:             cand.Skills,
			Experience:         "7 years",
			Education:          []domain.Education{{Degree: "BEng", Institution: "Imperial College", Year: "2016", Field: "Software Engineering"}},
			ProfileDescription: "Full-stack engineer focused on building fast, accessible web applications end to end.",
			ProfileDomain:      "frontend",
			Address: domain.Address{
				Street:  "123 Main St",
				City:    "San Francisco",
				State:   "CA",
				ZipCode: "94107",
				Country: "USA",
			},
		})
	}

	log.Info().Msg("[seed] in-memory users seeded")
}
