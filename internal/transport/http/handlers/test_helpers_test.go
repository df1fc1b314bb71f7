package http_handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/talenthub/account-service/internal/application/auth"
	"github.com/talenthub/account-service/internal/application/signup"
	"github.com/talenthub/account-service/internal/infrastructure/memory"
	"github.com/talenthub/account-service/internal/infrastructure/security"
	"github.com/talenthub/account-service/internal/transport/http/middleware"
)

// Handlers are tested against real services wired to the in-memory
// infrastructure, so a test exercises the full path below the router.

type testEnv struct {
	authSvc   *auth.Service
	signupSvc *signup.Service
	users     *memory.UserRepo
	profiles  *memory.ProfileStore
	authH     *AuthHandler
	signupH   *SignupHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := memory.NewUserRepo()
	profiles := memory.NewProfileStore()
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	signer := security.NewJWTSigner("test-secret", "account-service-test")

	authSvc := auth.NewService(
		users,
		hasher,
		signer,
		memory.NewSessionStore(),
		memory.NewOneTimeTokenStore(),
		memory.NewNoopPublisher(),
		auth.Config{
			AccessTTL:            15 * time.Minute,
			RefreshTTL:           7 * 24 * time.Hour,
			PasswordResetBaseURL: "http://localhost:3000/reset-password?token=",
		},
	)

	signupSvc, err := signup.NewService(signup.Config{
		Store:   memory.NewWizardStore(),
		Handler: signup.NewRegistrar(authSvc, profiles),
	})
	if err != nil {
		t.Fatalf("signup.NewService: %v", err)
	}

	return &testEnv{
		authSvc:   authSvc,
		signupSvc: signupSvc,
		users:     users,
		profiles:  profiles,
		authH:     NewAuthHandler(authSvc, 7*24*time.Hour, false),
		signupH:   NewSignupHandler(signupSvc, 24*time.Hour, 7*24*time.Hour, false),
	}
}

// mustJSONBody marshals v to JSON and returns an io.Reader for a request body.
func mustJSONBody(t *testing.T, v any) io.Reader {
	t.Helper()

	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json marshal: %v", err)
	}
	return bytes.NewReader(b)
}

// mustReadJSON decodes JSON from r into out, unwrapping a {"data": ...}
// envelope when present.
func mustReadJSON(t *testing.T, r io.Reader, out any) {
	t.Helper()

	raw, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	wrapped := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.Unmarshal(raw, &wrapped); err == nil && len(wrapped.Data) > 0 {
		if err := json.Unmarshal(wrapped.Data, out); err == nil {
			return
		}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		t.Fatalf("decode json failed; body=%s err=%v", string(raw), err)
	}
}

// errCodeFromBody pulls the domain error code out of an error response.
func errCodeFromBody(t *testing.T, r io.Reader) string {
	t.Helper()

	body := struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}{}
	raw, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode error body failed; body=%s err=%v", string(raw), err)
	}
	return body.Error.Code
}

// readCookie finds a cookie by name from response headers.
func readCookie(res *http.Response, name string) *http.Cookie {
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// withClaimsCtx injects identity claims the way the auth middleware would.
func withClaimsCtx(req *http.Request, userID, email, role string) *http.Request {
	ctx := middleware.WithClaims(req.Context(), auth.TokenClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
	})
	return req.WithContext(ctx)
}

// withURLParam injects a chi URL param (e.g. /users/{id}) into the request.
func withURLParam(req *http.Request, key, val string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, val)

	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	return req.WithContext(ctx)
}

func reqCtx() context.Context { return context.Background() }

// registerUser creates a user through the service and returns it.
func registerUser(t *testing.T, env *testEnv, name, email, password, role string) auth.RegisterResult {
	t.Helper()

	res, err := env.authSvc.Register(context.Background(), name, email, password, role)
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return res
}

// ---- wizard step payloads ----

func wizardBasicInfo() signup.BasicInfo {
	return signup.BasicInfo{
		Name:            "Ann",
		Email:           "ann@x.com",
		Password:        "password1",
		ConfirmPassword: "password1",
	}
}

func wizardCandidateProfile() signup.CandidateProfileInput {
	return signup.CandidateProfileInput{
		Skills:     []string{"Go", "SQL"},
		Experience: "3 years",
		Education: []signup.EducationInput{{
			Degree:      "BSc",
			Institution: "State University",
			Year:        "2021",
			Field:       "Computer Science",
		}},
		ProfileDescription: "Backend engineer with several years of experience building services.",
		ProfileDomain:      "backend",
		Address: signup.AddressInput{
			Street:  "123 Main St",
			City:    "Springfield",
			State:   "IL",
			ZipCode: "62704",
			Country: "USA",
		},
	}
}

func wizardRecruiterProfile() signup.RecruiterProfileInput {
	return signup.RecruiterProfileInput{
		CompanyName:        "Acme",
		CompanyEmail:       "talent@acme.com",
		CompanySize:        "51-200",
		Industry:           "Software",
		CompanyDescription: "Acme builds developer tooling for distributed teams around the world.",
		JobTitle:           "Talent Lead",
		Department:         "People",
		CompanyAddress: signup.AddressInput{
			Street:  "1 Acme Way",
			City:    "Metropolis",
			State:   "NY",
			ZipCode: "10001",
			Country: "USA",
		},
	}
}
