package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/talenthub/account-service/internal/transport/http/middleware"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type AuthHandler interface {
	// Core auth
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	RefreshClaims(w http.ResponseWriter, r *http.Request)

	// Password reset
	PasswordResetRequest(w http.ResponseWriter, r *http.Request)
	PasswordResetConfirm(w http.ResponseWriter, r *http.Request)
	PasswordResetValidate(w http.ResponseWriter, r *http.Request)

	// Password change
	PasswordChange(w http.ResponseWriter, r *http.Request)
	AdminResetPassword(w http.ResponseWriter, r *http.Request)

	// Admin
	AdminSetUserRole(w http.ResponseWriter, r *http.Request)
	AdminDeleteUser(w http.ResponseWriter, r *http.Request)

	// Sessions
	SessionsRevoke(w http.ResponseWriter, r *http.Request)
}

type SignupHandler interface {
	Start(w http.ResponseWriter, r *http.Request)
	State(w http.ResponseWriter, r *http.Request)
	Steps(w http.ResponseWriter, r *http.Request)
	SubmitStep(w http.ResponseWriter, r *http.Request)
	GoBack(w http.ResponseWriter, r *http.Request)
	GoToStep(w http.ResponseWriter, r *http.Request)
	ResetBranch(w http.ResponseWriter, r *http.Request)
	Finalize(w http.ResponseWriter, r *http.Request)
	Abandon(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health HealthHandler
	Auth   AuthHandler
	Signup SignupHandler

	AuthMW  func(http.Handler) http.Handler
	AdminMW func(http.Handler) http.Handler
	CSRFMW  func(http.Handler) http.Handler

	// Per-route rate limits; nil disables the limit.
	LoginLimitMW  func(http.Handler) http.Handler
	ResetLimitMW  func(http.Handler) http.Handler
	SignupLimitMW func(http.Handler) http.Handler
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("nil Auth handler")
	}
	if deps.Signup == nil {
		return nil, fmt.Errorf("nil Signup handler")
	}
	if deps.AuthMW == nil {
		return nil, fmt.Errorf("nil Auth middleware")
	}
	if deps.AdminMW == nil {
		return nil, fmt.Errorf("nil Admin middleware")
	}

	passthrough := func(next http.Handler) http.Handler { return next }
	if deps.CSRFMW == nil {
		deps.CSRFMW = passthrough
	}
	if deps.LoginLimitMW == nil {
		deps.LoginLimitMW = passthrough
	}
	if deps.ResetLimitMW == nil {
		deps.ResetLimitMW = passthrough
	}
	if deps.SignupLimitMW == nil {
		deps.SignupLimitMW = passthrough
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Metrics)

	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/auth/v1", func(r chi.Router) {
		// --- Core auth ---
		r.Post("/register", deps.Auth.Register)
		r.With(deps.LoginLimitMW).Post("/login", deps.Auth.Login)
		r.With(deps.CSRFMW).Post("/refresh", deps.Auth.Refresh)
		r.With(deps.CSRFMW).Post("/logout", deps.Auth.Logout)
		r.With(deps.AuthMW).Get("/me", deps.Auth.Me)
		r.With(deps.AuthMW).Post("/claims/refresh", deps.Auth.RefreshClaims)

		// --- Password reset ---
		r.With(deps.ResetLimitMW).Post("/password/reset/request", deps.Auth.PasswordResetRequest)
		r.Post("/password/reset/confirm", deps.Auth.PasswordResetConfirm)
		r.Get("/password/reset/validate", deps.Auth.PasswordResetValidate) // ?token=...

		// --- Password change / sessions ---
		r.With(deps.AuthMW).Post("/password/change", deps.Auth.PasswordChange)
		r.With(deps.AuthMW).Post("/sessions/revoke", deps.Auth.SessionsRevoke)

		// --- Admin (privileged) ---
		r.Route("/admin", func(r chi.Router) {
			r.Use(deps.AuthMW)
			r.Use(deps.AdminMW)

			r.Post("/users/{id}/password", deps.Auth.AdminResetPassword)
			r.Post("/users/{id}/role", deps.Auth.AdminSetUserRole)
			r.Delete("/users/{id}", deps.Auth.AdminDeleteUser)
		})
	})

	r.Route("/signup/v1", func(r chi.Router) {
		r.Use(deps.CSRFMW)

		r.With(deps.SignupLimitMW).Post("/session", deps.Signup.Start)
		r.Get("/session", deps.Signup.State)
		r.Delete("/session", deps.Signup.Abandon)
		r.Get("/steps", deps.Signup.Steps)
		r.Post("/steps", deps.Signup.SubmitStep)
		r.Post("/back", deps.Signup.GoBack)
		r.Post("/goto", deps.Signup.GoToStep)
		r.Post("/reset-branch", deps.Signup.ResetBranch)
		r.Post("/finalize", deps.Signup.Finalize)
	})

	return r, nil
}
