//go:build integration

package cases

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/talenthub/account-service/internal/application/auth"
	"github.com/talenthub/account-service/internal/application/signup"
	pg "github.com/talenthub/account-service/internal/infrastructure/db/postgres"
	"github.com/talenthub/account-service/internal/infrastructure/memory"
	"github.com/talenthub/account-service/internal/infrastructure/security"
	itinfra "github.com/talenthub/account-service/test/integration/infra"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Deps wires the application services against a real postgres. Sessions,
// one-time tokens and wizard drafts stay in memory: their redis behavior is
// covered by the miniredis suites, and keeping them in-process lets this suite
// need only one container.
type Deps struct {
	DB *sql.DB

	Users    *pg.UserRepo
	Profiles *pg.ProfileRepo

	Auth   *auth.Service
	Signup *signup.Service
}

func MustNewDeps(t *testing.T) *Deps {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := sql.Open("pgx", itinfra.PostgresDSN(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.PingContext(ctx))
	require.NoError(t, itinfra.EnsureAccountSchema(ctx, db))
	require.NoError(t, itinfra.ResetAccountData(ctx, db))

	users := pg.NewUserRepo(db)
	profiles := pg.NewProfileRepo(db)

	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	signer := security.NewJWTSigner("integration-test-secret", "account-service-it")

	authSvc := auth.NewService(
		users,
		hasher,
		signer,
		memory.NewSessionStore(),
		memory.NewOneTimeTokenStore(),
		memory.NewNoopPublisher(),
		auth.Config{
			AccessTTL:             15 * time.Minute,
			RefreshTTL:            24 * time.Hour,
			PasswordResetBaseURL:  "http://example.com/reset?token=",
			PasswordResetTokenTTL: time.Hour,
		},
	)

	signupSvc, err := signup.NewService(signup.Config{
		Store:      memory.NewWizardStore(),
		Handler:    signup.NewRegistrar(authSvc, profiles),
		SessionTTL: time.Hour,
	})
	require.NoError(t, err)

	return &Deps{
		DB:       db,
		Users:    users,
		Profiles: profiles,
		Auth:     authSvc,
		Signup:   signupSvc,
	}
}
