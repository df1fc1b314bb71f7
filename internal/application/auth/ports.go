package auth

import (
	"context"
	"time"

	"github.com/talenthub/account-service/internal/domain"
)

// UserRepo is account persistence as the auth flows see it: postgres in
// production, the memory implementation in tests and redis-less dev.
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)

	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error
	SetRole(ctx context.Context, userID string, role string) error
	Delete(ctx context.Context, userID string) error
}

// PasswordHasher hides the hash scheme so cost tuning (or a future
// algorithm swap) stays out of the flows.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil on match
}

// TokenClaims is the identity an access token carries. It holds the full
// identity (id, email, role, name) so downstream access-control checks
// never need a DB round trip just to read the role; refresh re-derives it
// from the user record so edits propagate.
type TokenClaims struct {
	UserID string
	Email  string
	Role   string
	Name   string
	Exp    time.Time
}

// TokenSigner issues and verifies access tokens. Used by the service and
// the auth middleware.
type TokenSigner interface {
	SignAccessToken(claims TokenClaims, ttl time.Duration) (string, error)
	VerifyAccessToken(token string) (TokenClaims, error)
}

// SessionStore keeps opaque refresh tokens with rotation and bulk
// revocation. Redis in production so revocation is shared across instances.
type SessionStore interface {
	CreateRefreshToken(ctx context.Context, userID string, ttl time.Duration) (token string, err error)
	RotateRefreshToken(ctx context.Context, oldToken string, ttl time.Duration) (newToken string, err error)
	RevokeRefreshToken(ctx context.Context, token string) error
	RevokeAll(ctx context.Context, userID string) error
	GetUserIDByRefreshToken(ctx context.Context, token string) (string, error)
}

// OneTimeTokenKind namespaces single-use tokens per flow.
type OneTimeTokenKind string

const (
	TokenPasswordReset OneTimeTokenKind = "password_reset"
)

// OneTimeTokenStore holds single-use tokens for the password reset flow.
// Nothing outside this service ever stores or reads them.
type OneTimeTokenStore interface {
	Save(ctx context.Context, kind OneTimeTokenKind, token string, userID string, ttl time.Duration) error
	Consume(ctx context.Context, kind OneTimeTokenKind, token string) (userID string, err error)
	Peek(ctx context.Context, kind OneTimeTokenKind, token string) (userID string, err error) // for validate endpoint
}

// EventPublisher emits account events for the mail pipeline. A consumer
// service turns these into the actual emails; we never talk SMTP here.
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, evt UserRegisteredEvent) error
	PublishPasswordReset(ctx context.Context, evt PasswordResetEvent) error
	PublishPasswordChanged(ctx context.Context, evt PasswordChangedEvent) error
}

// Event payloads, one struct per routing key.
type UserRegisteredEvent struct {
	UserID string
	Name   string
	Email  string
	Role   string
}

type PasswordResetEvent struct {
	UserID string
	Email  string
	URL    string
}

type PasswordChangedEvent struct {
	UserID string
	Email  string
	Name   string
}
