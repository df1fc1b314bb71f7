package dto

import "github.com/talenthub/account-service/internal/domain"

// UserView is the standard user payload for account-service responses.
type UserView struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Role   string   `json:"role"`
	Skills []string `json:"skills,omitempty"`
}

func UserViewFrom(u domain.User) UserView {
	return UserView{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
		Skills: u.Skills,
	}
}

// TokensView is the standard access token payload.
// (Refresh token is stored in an HttpOnly cookie, never returned in JSON.)
type TokensView struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"` // "Bearer"
	ExpiresIn   int64  `json:"expires_in"` // seconds
}

// AuthData is returned by register/login.
type AuthData struct {
	User   UserView   `json:"user"`
	Tokens TokensView `json:"tokens"`
}

// RefreshData is returned by refresh.
type RefreshData struct {
	Tokens TokensView `json:"tokens"`
	User   UserView   `json:"user"`
}

// MeData is returned by /me.
type MeData struct {
	User UserView `json:"user"`
}

// ClaimsData is returned by the claims refresh endpoint: the identity the
// service would bake into the next access token.
type ClaimsData struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type StatusResponse struct {
	Status string `json:"status"` // "ok"
}

type PasswordResetValidateResponse struct {
	Valid bool `json:"valid"`
}
