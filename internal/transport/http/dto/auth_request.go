package dto

import (
	"strings"

	"github.com/talenthub/account-service/internal/domain"
)

// Shared field checks. Handlers surface the first failing field, so each
// Validate keeps its checks in the order the API documents them.

func requireField(field, value string) error {
	if value == "" {
		return domain.ErrMissingField(field)
	}
	return nil
}

func requirePassword(field, pw string) error {
	if pw == "" {
		return domain.ErrMissingField(field)
	}
	if len(pw) < 8 {
		return domain.ErrWeakPassword("min length 8")
	}
	return nil
}

func requireEmailShape(email string) error {
	if !strings.Contains(email, "@") {
		return domain.ErrInvalidField("email", "invalid format")
	}
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// -------- Core auth --------

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *RegisterRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	return firstErr(
		requireField("name", r.Name),
		requireField("email", r.Email),
		requirePassword("password", r.Password),
		requireEmailShape(r.Email),
	)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	return firstErr(
		requireField("email", r.Email),
		requireField("password", r.Password),
	)
}

// The refresh token normally travels in an HttpOnly cookie; a body token is
// accepted as a fallback for non-browser clients.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token,omitempty"`
}

func (r *RefreshRequest) Validate() error { return nil }

type LogoutRequest struct{}

// -------- Password reset --------

// Step A: request a reset link. The handler answers 200 no matter what, so
// the endpoint cannot confirm which addresses have accounts.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

func (r *PasswordResetRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	return firstErr(
		requireField("email", r.Email),
		requireEmailShape(r.Email),
	)
}

// Step B: confirm with the emailed token.
type PasswordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func (r *PasswordResetConfirmRequest) Validate() error {
	return firstErr(
		requireField("token", r.Token),
		requirePassword("new_password", r.NewPassword),
	)
}

// Validate reset token (GET /password/reset/validate?token=...)
type PasswordResetValidateQuery struct {
	Token string `json:"-"` // filled from query param, not JSON
}

func (q *PasswordResetValidateQuery) Validate() error {
	return requireField("token", q.Token)
}

// -------- Password change --------

// Self-service variant: requires the current password.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (r *PasswordChangeRequest) Validate() error {
	return firstErr(
		requireField("current_password", r.CurrentPassword),
		requirePassword("new_password", r.NewPassword),
	)
}

// Admin variant: sets a password on someone else's account, no current
// password involved. RBAC on the route decides who may call it.
type AdminResetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

func (r *AdminResetPasswordRequest) Validate() error {
	return requirePassword("new_password", r.NewPassword)
}

// -------- Admin --------

type SetUserRoleRequest struct {
	Role string `json:"role"`
}

func (r *SetUserRoleRequest) Validate() error {
	if err := requireField("role", r.Role); err != nil {
		return err
	}
	if !domain.IsValidRole(r.Role) {
		return domain.ErrInvalidField("role", "invalid role")
	}
	return nil
}

// -------- Sessions --------

type SessionsRevokeRequest struct{}
