package auth

import (
	"context"

	"github.com/talenthub/account-service/internal/domain"
)

const minPasswordLen = 8

func checkNewPassword(pw string) error {
	if pw == "" {
		return domain.ErrMissingField("new_password")
	}
	if len(pw) < minPasswordLen {
		return domain.ErrWeakPassword("min length 8")
	}
	return nil
}

// PasswordChange is the self-service variant: the caller must prove they know
// the current password before a new hash is written.
func (s *Service) PasswordChange(ctx context.Context, userID, currentPassword, newPassword string) error {
	if userID == "" {
		return domain.ErrTokenMissing()
	}
	if currentPassword == "" || newPassword == "" {
		return domain.ErrInvalidField("password", "empty")
	}
	if err := checkNewPassword(newPassword); err != nil {
		return err
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if s.hasher.Compare(u.PasswordHash, currentPassword) != nil {
		return domain.ErrInvalidCredentials()
	}

	return s.applyNewPassword(ctx, u, newPassword)
}

// AdminResetPassword skips the current-password proof; route-level RBAC
// decides who may call it.
func (s *Service) AdminResetPassword(ctx context.Context, userID, newPassword string) error {
	if userID == "" {
		return domain.ErrMissingField("user_id")
	}
	if err := checkNewPassword(newPassword); err != nil {
		return err
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	return s.applyNewPassword(ctx, u, newPassword)
}

// applyNewPassword hashes, persists, revokes every session, and notifies.
// The hash swap is a single UPDATE, so a failure never leaves a
// half-applied change.
func (s *Service) applyNewPassword(ctx context.Context, u domain.User, newPassword string) error {
	newHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return domain.ErrHashFailed(err)
	}
	if err := s.users.UpdatePasswordHash(ctx, u.ID, newHash); err != nil {
		return err
	}

	// Anyone holding an old refresh token is signed out now.
	_ = s.sessions.RevokeAll(ctx, u.ID)

	// The notification mail is best-effort.
	_ = s.pub.PublishPasswordChanged(ctx, PasswordChangedEvent{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
	})
	return nil
}

// PasswordResetRequest mints a one-time token and publishes the mail event.
// Unknown emails return nil too; the handler answers 200 either way so the
// endpoint cannot confirm which addresses have accounts.
func (s *Service) PasswordResetRequest(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil
	}

	token, err := newOpaqueToken(32)
	if err != nil {
		return domain.ErrRandomFailed(err)
	}
	if err := s.ott.Save(ctx, TokenPasswordReset, token, u.ID, s.passwordResetTTL); err != nil {
		return err
	}

	return s.pub.PublishPasswordReset(ctx, PasswordResetEvent{
		UserID: u.ID,
		Email:  u.Email,
		URL:    s.passwordResetBaseURL + token,
	})
}

// PasswordResetValidate reports whether a reset token is still usable
// without burning it; reset pages call this before showing the form.
func (s *Service) PasswordResetValidate(ctx context.Context, token string) error {
	if token == "" {
		return domain.ErrMissingField("token")
	}
	_, err := s.ott.Peek(ctx, TokenPasswordReset, token)
	return err
}

// PasswordResetConfirm consumes the token and sets the new password.
func (s *Service) PasswordResetConfirm(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return domain.ErrMissingField("token")
	}
	if err := checkNewPassword(newPassword); err != nil {
		return err
	}

	userID, err := s.ott.Consume(ctx, TokenPasswordReset, token)
	if err != nil {
		return err
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	return s.applyNewPassword(ctx, u, newPassword)
}
