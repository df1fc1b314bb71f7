package http_handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/talenthub/account-service/internal/application/signup"
	"github.com/talenthub/account-service/internal/domain"
	"github.com/talenthub/account-service/internal/infrastructure/security"
	"github.com/talenthub/account-service/internal/logger"
	"github.com/talenthub/account-service/internal/transport/http/dto"
	"github.com/talenthub/account-service/internal/transport/http/middleware"
	"github.com/talenthub/account-service/internal/transport/http/response"
)

// HeaderSignupSession lets SPA clients carry the wizard token explicitly
// instead of relying on the cookie.
const HeaderSignupSession = "X-Signup-Session"

type SignupHandler struct {
	svc           *signup.Service
	sessionTTL    time.Duration
	refreshTTL    time.Duration
	secureCookies bool
}

func NewSignupHandler(svc *signup.Service, sessionTTL, refreshTTL time.Duration, secureCookies bool) *SignupHandler {
	return &SignupHandler{
		svc:           svc,
		sessionTTL:    sessionTTL,
		refreshTTL:    refreshTTL,
		secureCookies: secureCookies,
	}
}

// Start opens a fresh wizard session at step 1.
func (h *SignupHandler) Start(w http.ResponseWriter, r *http.Request) {
	token, st, err := h.svc.Start(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	security.SetSignupSession(w, token, h.sessionTTL, h.secureCookies)

	response.Created(w, dto.SignupStartData{
		Token: token,
		State: dto.WizardStateViewFrom(st),
	})
}

// State returns the draft so a returning client can restore its forms.
func (h *SignupHandler) State(w http.ResponseWriter, r *http.Request) {
	token, err := h.sessionToken(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	st, err := h.svc.Get(r.Context(), token)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.WizardStateViewFrom(st))
}

// Steps lists the step sequence for the session's current branch.
func (h *SignupHandler) Steps(w http.ResponseWriter, r *http.Request) {
	token, err := h.sessionToken(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	st, err := h.svc.Get(r.Context(), token)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	defs, err := h.svc.Steps(r.Context(), token)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.StepViewsFrom(defs, st))
}

// SubmitStep validates one step's payload and advances the cursor.
func (h *SignupHandler) SubmitStep(w http.ResponseWriter, r *http.Request) {
	token, err := h.sessionToken(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	var req dto.SubmitStepRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	st, err := h.svc.SubmitStep(r.Context(), token, req.Step, req.Data)
	stepLabel := strconv.Itoa(req.Step)
	if err != nil {
		middleware.SignupStepsTotal.WithLabelValues(stepLabel, "rejected").Inc()
		response.WriteError(w, r, err)
		return
	}
	middleware.SignupStepsTotal.WithLabelValues(stepLabel, "success").Inc()

	response.OK(w, dto.WizardStateViewFrom(st))
}

func (h *SignupHandler) GoBack(w http.ResponseWriter, r *http.Request) {
	token, err := h.sessionToken(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	st, err := h.svc.GoBack(r.Context(), token)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.WizardStateViewFrom(st))
}

func (h *SignupHandler) GoToStep(w http.ResponseWriter, r *http.Request) {
	token, err := h.sessionToken(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	var req dto.GoToStepRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	st, err := h.svc.GoToStep(r.Context(), token, req.Step)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.WizardStateViewFrom(st))
}

// ResetBranch drops the branch choice and everything drafted after it.
func (h *SignupHandler) ResetBranch(w http.ResponseWriter, r *http.Request) {
	token, err := h.sessionToken(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	st, err := h.svc.ResetBranch(r.Context(), token)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.WizardStateViewFrom(st))
}

// Finalize turns a completed draft into a real account and signs the new
// user straight in.
func (h *SignupHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	token, err := h.sessionToken(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Finalize(r.Context(), token)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	middleware.SignupCompletedTotal.WithLabelValues(strings.ToLower(res.User.Role)).Inc()

	logger.WithCtx(r.Context()).Info().
		Str("user_id", res.User.ID).
		Str("role", res.User.Role).
		Msg("signup_completed")

	// Draft is gone; the cookie has nothing left to reference.
	security.ClearSignupSession(w, h.secureCookies)
	security.SetRefreshToken(w, res.Tokens.RefreshToken, h.refreshTTL, h.secureCookies)

	response.Created(w, dto.SignupFinalizeData{
		User:   dto.UserViewFrom(res.User),
		Tokens: tokensView(res.Tokens),
	})
}

// Abandon discards the draft explicitly.
func (h *SignupHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	token, err := h.sessionToken(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.Abandon(r.Context(), token); err != nil {
		response.WriteError(w, r, err)
		return
	}

	security.ClearSignupSession(w, h.secureCookies)
	response.NoContent(w)
}

// sessionToken resolves the wizard token: explicit header first, cookie
// second.
func (h *SignupHandler) sessionToken(r *http.Request) (string, error) {
	if tok := strings.TrimSpace(r.Header.Get(HeaderSignupSession)); tok != "" {
		return tok, nil
	}
	if tok, err := security.ReadSignupSession(r); err == nil && tok != "" {
		return tok, nil
	}
	return "", domain.ErrSignupSessionNotFound()
}
