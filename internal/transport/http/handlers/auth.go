package http_handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/talenthub/account-service/internal/application/auth"
	"github.com/talenthub/account-service/internal/domain"
	"github.com/talenthub/account-service/internal/infrastructure/security"
	"github.com/talenthub/account-service/internal/logger"
	"github.com/talenthub/account-service/internal/transport/http/dto"
	"github.com/talenthub/account-service/internal/transport/http/middleware"
	"github.com/talenthub/account-service/internal/transport/http/response"
)

type AuthHandler struct {
	svc           *auth.Service
	refreshTTL    time.Duration
	secureCookies bool
}

func NewAuthHandler(svc *auth.Service, refreshTTL time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		svc:           svc,
		refreshTTL:    refreshTTL,
		secureCookies: secureCookies,
	}
}

// Register creates an account directly, without the wizard. New accounts
// default to the candidate role; recruiters come in through the wizard.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Register(r.Context(), req.Name, req.Email, req.Password, string(domain.RoleCandidate))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", res.User.ID).
		Str("email", res.User.Email).
		Msg("user_registered")

	security.SetRefreshToken(w, res.Tokens.RefreshToken, h.refreshTTL, h.secureCookies)

	response.Created(w, dto.AuthData{
		User:   dto.UserViewFrom(res.User),
		Tokens: tokensView(res.Tokens),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		middleware.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		response.WriteError(w, r, err)
		return
	}
	middleware.LoginAttemptsTotal.WithLabelValues("success").Inc()

	logger.WithCtx(r.Context()).Info().
		Str("user_id", res.User.ID).
		Msg("user_logged_in")

	security.SetRefreshToken(w, res.Tokens.RefreshToken, h.refreshTTL, h.secureCookies)

	response.OK(w, dto.AuthData{
		User:   dto.UserViewFrom(res.User),
		Tokens: tokensView(res.Tokens),
	})
}

// Refresh rotates the refresh token and issues a fresh access token whose
// claims are re-derived from the current user record.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshTok := h.refreshTokenFrom(r)
	if refreshTok == "" {
		response.WriteError(w, r, domain.ErrRefreshTokenInvalid())
		return
	}

	toks, user, err := h.svc.Refresh(r.Context(), refreshTok)
	if err != nil {
		middleware.TokenRefreshTotal.WithLabelValues("failure").Inc()
		response.WriteError(w, r, err)
		return
	}
	middleware.TokenRefreshTotal.WithLabelValues("success").Inc()

	security.SetRefreshToken(w, toks.RefreshToken, h.refreshTTL, h.secureCookies)

	response.OK(w, dto.RefreshData{
		Tokens: tokensView(toks),
		User:   dto.UserViewFrom(user),
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	refreshTok := h.refreshTokenFrom(r)
	if refreshTok != "" {
		_ = h.svc.Logout(r.Context(), refreshTok) // keep idempotent
	}

	security.ClearRefreshToken(w, h.secureCookies)
	response.NoContent(w)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	u, err := h.svc.GetUserByID(r.Context(), userID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.MeData{User: dto.UserViewFrom(u)})
}

// RefreshClaims re-derives the identity claims from the stored user record.
// Session-layer callbacks hit this after profile or role edits so the next
// issued token carries the current identity without forcing a re-login.
func (h *AuthHandler) RefreshClaims(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	fresh, err := h.svc.RefreshClaims(r.Context(), claims)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.ClaimsData{
		UserID: fresh.UserID,
		Name:   fresh.Name,
		Email:  fresh.Email,
		Role:   fresh.Role,
	})
}

// ---- Password reset ----

func (h *AuthHandler) PasswordResetRequest(w http.ResponseWriter, r *http.Request) {
	var req dto.PasswordResetRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.PasswordResetRequest(r.Context(), req.Email); err != nil {
		response.WriteError(w, r, err)
		return
	}

	// Always 204: whether the email exists is not observable here.
	response.NoContent(w)
}

func (h *AuthHandler) PasswordResetValidate(w http.ResponseWriter, r *http.Request) {
	q := dto.PasswordResetValidateQuery{Token: strings.TrimSpace(r.URL.Query().Get("token"))}
	if err := q.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.PasswordResetValidate(r.Context(), q.Token); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.PasswordResetValidateResponse{Valid: true})
}

func (h *AuthHandler) PasswordResetConfirm(w http.ResponseWriter, r *http.Request) {
	var req dto.PasswordResetConfirmRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.PasswordResetConfirm(r.Context(), req.Token, req.NewPassword); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.NoContent(w)
}

// ---- Password change ----

func (h *AuthHandler) PasswordChange(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	var req dto.PasswordChangeRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.PasswordChange(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		response.WriteError(w, r, err)
		return
	}

	// The service revoked all sessions; clearing the cookie signs this
	// browser out immediately too.
	security.ClearRefreshToken(w, h.secureCookies)
	response.NoContent(w)
}

func (h *AuthHandler) AdminResetPassword(w http.ResponseWriter, r *http.Request) {
	targetID := chi.URLParam(r, "id")
	if strings.TrimSpace(targetID) == "" {
		response.WriteError(w, r, domain.ErrMissingField("id"))
		return
	}

	var req dto.AdminResetPasswordRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.AdminResetPassword(r.Context(), targetID, req.NewPassword); err != nil {
		response.WriteError(w, r, err)
		return
	}

	actorID, _ := middleware.UserIDFromContext(r.Context())
	logger.WithCtx(r.Context()).Info().
		Str("actor_id", actorID).
		Str("user_id", targetID).
		Msg("admin_password_reset")

	response.NoContent(w)
}

// ---- Admin ----

func (h *AuthHandler) AdminSetUserRole(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.UserIDFromContext(r.Context())

	targetID := chi.URLParam(r, "id")
	if strings.TrimSpace(targetID) == "" {
		response.WriteError(w, r, domain.ErrMissingField("id"))
		return
	}

	var req dto.SetUserRoleRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.AdminSetRole(r.Context(), actorID, targetID, req.Role); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, map[string]string{
		"status":  "role_updated",
		"user_id": targetID,
		"role":    req.Role,
	})
}

func (h *AuthHandler) AdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.UserIDFromContext(r.Context())

	targetID := chi.URLParam(r, "id")
	if strings.TrimSpace(targetID) == "" {
		response.WriteError(w, r, domain.ErrMissingField("id"))
		return
	}

	if err := h.svc.AdminDeleteUser(r.Context(), actorID, targetID); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.NoContent(w)
}

// ---- Sessions ----

func (h *AuthHandler) SessionsRevoke(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	if err := h.svc.SessionsRevoke(r.Context(), userID); err != nil {
		response.WriteError(w, r, err)
		return
	}

	security.ClearRefreshToken(w, h.secureCookies)
	response.NoContent(w)
}

// refreshTokenFrom reads the refresh token from the cookie, falling back to
// the request body for non-browser clients.
func (h *AuthHandler) refreshTokenFrom(r *http.Request) string {
	if tok, err := security.ReadRefreshToken(r); err == nil && tok != "" {
		return tok
	}

	var req dto.RefreshRequest
	if err := response.DecodeJSON(r, &req); err == nil {
		return strings.TrimSpace(req.RefreshToken)
	}
	return ""
}

func tokensView(t auth.AuthTokens) dto.TokensView {
	return dto.TokensView{
		AccessToken: t.AccessToken,
		TokenType:   t.TokenType,
		ExpiresIn:   t.ExpiresIn,
	}
}
