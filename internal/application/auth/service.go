package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/talenthub/account-service/internal/domain"
)

// AuthTokens is what every credential-issuing operation hands back. The
// refresh token never appears in a JSON body; handlers move it into an
// HttpOnly cookie.
type AuthTokens struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64  // access token lifetime, seconds
	TokenType    string // always "Bearer"
}

type LoginResult struct {
	User   domain.User
	Tokens AuthTokens
}

type RegisterResult struct {
	User   domain.User
	Tokens AuthTokens
}

type Config struct {
	AccessTTL             time.Duration
	RefreshTTL            time.Duration
	PasswordResetBaseURL  string // reset link prefix, ends in "token="
	PasswordResetTokenTTL time.Duration
}

const defaultPasswordResetTTL = 30 * time.Minute

// Service implements credential auth, identity claims and password flows on
// top of the injected ports. It holds no state of its own.
type Service struct {
	users    UserRepo
	hasher   PasswordHasher
	signer   TokenSigner
	sessions SessionStore
	ott      OneTimeTokenStore
	pub      EventPublisher

	accessTTL  time.Duration
	refreshTTL time.Duration

	passwordResetBaseURL string
	passwordResetTTL     time.Duration
}

func NewService(
	users UserRepo,
	hasher PasswordHasher,
	signer TokenSigner,
	sessions SessionStore,
	ott OneTimeTokenStore,
	pub EventPublisher,
	cfg Config,
) *Service {
	s := &Service{
		users:    users,
		hasher:   hasher,
		signer:   signer,
		sessions: sessions,
		ott:      ott,
		pub:      pub,

		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,

		passwordResetBaseURL: cfg.PasswordResetBaseURL,
		passwordResetTTL:     cfg.PasswordResetTokenTTL,
	}
	if s.passwordResetTTL <= 0 {
		s.passwordResetTTL = defaultPasswordResetTTL
	}
	return s
}

// issueTokens mints the access/refresh pair for a freshly authenticated user.
func (s *Service) issueTokens(ctx context.Context, u domain.User) (AuthTokens, error) {
	access, err := s.signer.SignAccessToken(claimsFromUser(u), s.accessTTL)
	if err != nil {
		return AuthTokens{}, domain.ErrTokenSignFailed(err)
	}

	refresh, err := s.sessions.CreateRefreshToken(ctx, u.ID, s.refreshTTL)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}

// newOpaqueToken mints a URL-safe random token (password reset).
func newOpaqueToken(bytesLen int) (string, error) {
	if bytesLen <= 0 {
		return "", errors.New("invalid token length")
	}
	b := make([]byte, bytesLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
