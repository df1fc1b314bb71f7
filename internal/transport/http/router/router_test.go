package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// ---------- fakes ----------

type fakeHealth struct{}

func (fakeHealth) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (fakeHealth) Readyz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

type fakeAuth struct{}

func (fakeAuth) write(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(msg))
}

func (a fakeAuth) Register(w http.ResponseWriter, r *http.Request) { a.write(w, 200, "register") }
func (a fakeAuth) Login(w http.ResponseWriter, r *http.Request)    { a.write(w, 200, "login") }
func (a fakeAuth) Refresh(w http.ResponseWriter, r *http.Request)  { a.write(w, 200, "refresh") }
func (a fakeAuth) Logout(w http.ResponseWriter, r *http.Request)   { a.write(w, 200, "logout") }
func (a fakeAuth) Me(w http.ResponseWriter, r *http.Request)       { a.write(w, 200, "me") }
func (a fakeAuth) RefreshClaims(w http.ResponseWriter, r *http.Request) {
	a.write(w, 200, "refresh_claims")
}

func (a fakeAuth) PasswordResetRequest(w http.ResponseWriter, r *http.Request) {
	a.write(w, 200, "pw_reset_request")
}
func (a fakeAuth) PasswordResetConfirm(w http.ResponseWriter, r *http.Request) {
	a.write(w, 200, "pw_reset_confirm")
}
func (a fakeAuth) PasswordResetValidate(w http.ResponseWriter, r *http.Request) {
	a.write(w, 200, "pw_reset_validate")
}

func (a fakeAuth) PasswordChange(w http.ResponseWriter, r *http.Request) {
	a.write(w, 200, "pw_change")
}
func (a fakeAuth) AdminResetPassword(w http.ResponseWriter, r *http.Request) {
	a.write(w, 200, "admin_reset_password")
}

func (a fakeAuth) AdminSetUserRole(w http.ResponseWriter, r *http.Request) {
	a.write(w, 200, "set_role")
}
func (a fakeAuth) AdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	a.write(w, 200, "delete_user")
}

func (a fakeAuth) SessionsRevoke(w http.ResponseWriter, r *http.Request) {
	a.write(w, 200, "sessions_revoke")
}

type fakeSignup struct{}

func (fakeSignup) write(w http.ResponseWriter, msg string) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(msg))
}

func (s fakeSignup) Start(w http.ResponseWriter, r *http.Request)       { s.write(w, "start") }
func (s fakeSignup) State(w http.ResponseWriter, r *http.Request)       { s.write(w, "state") }
func (s fakeSignup) Steps(w http.ResponseWriter, r *http.Request)       { s.write(w, "steps") }
func (s fakeSignup) SubmitStep(w http.ResponseWriter, r *http.Request)  { s.write(w, "submit") }
func (s fakeSignup) GoBack(w http.ResponseWriter, r *http.Request)      { s.write(w, "back") }
func (s fakeSignup) GoToStep(w http.ResponseWriter, r *http.Request)    { s.write(w, "goto") }
func (s fakeSignup) ResetBranch(w http.ResponseWriter, r *http.Request) { s.write(w, "reset") }
func (s fakeSignup) Finalize(w http.ResponseWriter, r *http.Request)    { s.write(w, "finalize") }
func (s fakeSignup) Abandon(w http.ResponseWriter, r *http.Request)     { s.write(w, "abandon") }

func noopMW(next http.Handler) http.Handler { return next }

func headerMW(key, val string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(key, val)
			next.ServeHTTP(w, r)
		})
	}
}

func newTestRouter(t *testing.T, deps Deps) http.Handler {
	t.Helper()

	if deps.Health == nil {
		deps.Health = fakeHealth{}
	}
	if deps.Auth == nil {
		deps.Auth = fakeAuth{}
	}
	if deps.Signup == nil {
		deps.Signup = fakeSignup{}
	}
	if deps.AuthMW == nil {
		deps.AuthMW = noopMW
	}
	if deps.AdminMW == nil {
		deps.AdminMW = noopMW
	}

	h, err := New(deps)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return h
}

func do(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, path, nil))
	return rr
}

// ---------- tests ----------

func TestNew_NilDeps_ReturnErrors(t *testing.T) {
	cases := []struct {
		name string
		deps Deps
	}{
		{"nil health", Deps{Auth: fakeAuth{}, Signup: fakeSignup{}, AuthMW: noopMW, AdminMW: noopMW}},
		{"nil auth", Deps{Health: fakeHealth{}, Signup: fakeSignup{}, AuthMW: noopMW, AdminMW: noopMW}},
		{"nil signup", Deps{Health: fakeHealth{}, Auth: fakeAuth{}, AuthMW: noopMW, AdminMW: noopMW}},
		{"nil auth mw", Deps{Health: fakeHealth{}, Auth: fakeAuth{}, Signup: fakeSignup{}, AdminMW: noopMW}},
		{"nil admin mw", Deps{Health: fakeHealth{}, Auth: fakeAuth{}, Signup: fakeSignup{}, AuthMW: noopMW}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.deps); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestRouter_HealthRoutes(t *testing.T) {
	h := newTestRouter(t, Deps{})

	if rr := do(t, h, http.MethodGet, "/healthz"); rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("healthz: %d %q", rr.Code, rr.Body.String())
	}
	if rr := do(t, h, http.MethodGet, "/readyz"); rr.Code != http.StatusOK {
		t.Fatalf("readyz: %d", rr.Code)
	}
}

func TestRouter_MetricsRouteExposed(t *testing.T) {
	h := newTestRouter(t, Deps{})

	if rr := do(t, h, http.MethodGet, "/metrics"); rr.Code != http.StatusOK {
		t.Fatalf("metrics: %d", rr.Code)
	}
}

func TestRouter_SetsRequestIDHeader(t *testing.T) {
	h := newTestRouter(t, Deps{})

	rr := do(t, h, http.MethodPost, "/auth/v1/login")
	if rr.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected X-Request-Id on every response")
	}
}

func TestRouter_AuthRoutesDispatch(t *testing.T) {
	h := newTestRouter(t, Deps{})

	cases := []struct {
		method, path, body string
	}{
		{http.MethodPost, "/auth/v1/register", "register"},
		{http.MethodPost, "/auth/v1/login", "login"},
		{http.MethodPost, "/auth/v1/refresh", "refresh"},
		{http.MethodPost, "/auth/v1/logout", "logout"},
		{http.MethodGet, "/auth/v1/me", "me"},
		{http.MethodPost, "/auth/v1/claims/refresh", "refresh_claims"},
		{http.MethodPost, "/auth/v1/password/reset/request", "pw_reset_request"},
		{http.MethodPost, "/auth/v1/password/reset/confirm", "pw_reset_confirm"},
		{http.MethodGet, "/auth/v1/password/reset/validate", "pw_reset_validate"},
		{http.MethodPost, "/auth/v1/password/change", "pw_change"},
		{http.MethodPost, "/auth/v1/sessions/revoke", "sessions_revoke"},
		{http.MethodPost, "/auth/v1/admin/users/u-1/password", "admin_reset_password"},
		{http.MethodPost, "/auth/v1/admin/users/u-1/role", "set_role"},
		{http.MethodDelete, "/auth/v1/admin/users/u-1", "delete_user"},
	}

	for _, tc := range cases {
		rr := do(t, h, tc.method, tc.path)
		if rr.Code != http.StatusOK || rr.Body.String() != tc.body {
			t.Fatalf("%s %s: %d %q", tc.method, tc.path, rr.Code, rr.Body.String())
		}
	}
}

func TestRouter_SignupRoutesDispatch(t *testing.T) {
	h := newTestRouter(t, Deps{})

	cases := []struct {
		method, path, body string
	}{
		{http.MethodPost, "/signup/v1/session", "start"},
		{http.MethodGet, "/signup/v1/session", "state"},
		{http.MethodDelete, "/signup/v1/session", "abandon"},
		{http.MethodGet, "/signup/v1/steps", "steps"},
		{http.MethodPost, "/signup/v1/steps", "submit"},
		{http.MethodPost, "/signup/v1/back", "back"},
		{http.MethodPost, "/signup/v1/goto", "goto"},
		{http.MethodPost, "/signup/v1/reset-branch", "reset"},
		{http.MethodPost, "/signup/v1/finalize", "finalize"},
	}

	for _, tc := range cases {
		rr := do(t, h, tc.method, tc.path)
		if rr.Code != http.StatusOK || rr.Body.String() != tc.body {
			t.Fatalf("%s %s: %d %q", tc.method, tc.path, rr.Code, rr.Body.String())
		}
	}
}

func TestRouter_MeRoute_UsesAuthMW(t *testing.T) {
	h := newTestRouter(t, Deps{AuthMW: headerMW("X-AuthMW", "1")})

	rr := do(t, h, http.MethodGet, "/auth/v1/me")
	if rr.Header().Get("X-AuthMW") != "1" {
		t.Fatalf("expected AuthMW applied on /me")
	}

	if rr := do(t, h, http.MethodPost, "/auth/v1/login"); rr.Header().Get("X-AuthMW") != "" {
		t.Fatalf("AuthMW must not run on /login")
	}
}

func TestRouter_AdminRoutes_UseBothMiddlewares(t *testing.T) {
	h := newTestRouter(t, Deps{
		AuthMW:  headerMW("X-AuthMW", "1"),
		AdminMW: headerMW("X-AdminMW", "1"),
	})

	rr := do(t, h, http.MethodDelete, "/auth/v1/admin/users/u-1")
	if rr.Header().Get("X-AuthMW") != "1" || rr.Header().Get("X-AdminMW") != "1" {
		t.Fatalf("expected both middlewares on admin routes")
	}
}

func TestRouter_LoginRateLimitApplied(t *testing.T) {
	h := newTestRouter(t, Deps{LoginLimitMW: headerMW("X-RateLimit", "login")})

	if rr := do(t, h, http.MethodPost, "/auth/v1/login"); rr.Header().Get("X-RateLimit") != "login" {
		t.Fatalf("expected login rate limit middleware")
	}
	if rr := do(t, h, http.MethodPost, "/auth/v1/register"); rr.Header().Get("X-RateLimit") != "" {
		t.Fatalf("login limit must not apply to register")
	}
}

func TestRouter_SignupRoutesUseCSRF(t *testing.T) {
	h := newTestRouter(t, Deps{CSRFMW: headerMW("X-CSRF", "1")})

	if rr := do(t, h, http.MethodPost, "/signup/v1/steps"); rr.Header().Get("X-CSRF") != "1" {
		t.Fatalf("expected CSRF middleware on signup routes")
	}
	if rr := do(t, h, http.MethodPost, "/auth/v1/refresh"); rr.Header().Get("X-CSRF") != "1" {
		t.Fatalf("expected CSRF middleware on refresh")
	}
}
