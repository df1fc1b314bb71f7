package signup

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/talenthub/account-service/internal/application/auth"
	"github.com/talenthub/account-service/internal/domain"
)

// ---- shared helpers ----

func requireDomainCode(t *testing.T, err error, code string) *domain.Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %q, got nil", code)
	}
	var de *domain.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected *domain.Error, got %T: %v", err, err)
	}
	if de.Code != code {
		t.Fatalf("expected code %q, got %q (%v)", code, de.Code, de)
	}
	return de
}

func newController(t *testing.T) *Controller {
	t.Helper()
	c, err := NewController()
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	return c
}

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return b
}

func mustSubmit(t *testing.T, c *Controller, st State, step int, v any) State {
	t.Helper()
	next, err := c.SubmitStep(st, step, mustJSON(t, v))
	if err != nil {
		t.Fatalf("SubmitStep(%d): %v", step, err)
	}
	return next
}

const longDescription = "Backend engineer with years of experience building and operating distributed systems."

func validBasicInfo() BasicInfo {
	return BasicInfo{
		Name:            "Ann",
		Email:           "ann@x.com",
		Password:        "password1",
		ConfirmPassword: "password1",
	}
}

func validCandidateProfile() CandidateProfileInput {
	return CandidateProfileInput{
		Skills:             []string{"go", "postgres"},
		Experience:         "5 years",
		Education:          []EducationInput{{Degree: "BSc", Institution: "MIT", Year: "2018", Field: "CS"}},
		ProfileDescription: longDescription,
		ProfileDomain:      "backend",
		Address: AddressInput{
			Street:  "1 Main St",
			City:    "Springfield",
			State:   "IL",
			ZipCode: "62701",
			Country: "USA",
		},
	}
}

func validRecruiterProfile() RecruiterProfileInput {
	return RecruiterProfileInput{
		CompanyName:        "Acme",
		CompanyEmail:       "jobs@acme.com",
		CompanySize:        "51-200",
		Industry:           "software",
		CompanyDescription: longDescription,
		JobTitle:           "Tech Recruiter",
		Department:         "People",
		CompanyAddress: AddressInput{
			Street:  "2 Market St",
			City:    "Metropolis",
			State:   "NY",
			ZipCode: "10001",
			Country: "USA",
		},
	}
}

// candidateAtProfileStep walks a fresh state through steps 1 and 2 on the
// candidate branch.
func candidateAtProfileStep(t *testing.T, c *Controller) State {
	t.Helper()
	st := mustSubmit(t, c, NewState(), StepBasicInfo, validBasicInfo())
	return mustSubmit(t, c, st, StepAccountType, AccountType{UserType: "candidate"})
}

// ---- fakes ----

type fakeStateStore struct {
	states  map[string]State
	saveErr error
	loadErr error

	deleted []string
}

func newFakeStateStore() *fakeStateStore {
	return &fakeStateStore{states: map[string]State{}}
}

func (f *fakeStateStore) Save(_ context.Context, token string, st State, _ time.Duration) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.states[token] = st
	return nil
}

func (f *fakeStateStore) Load(_ context.Context, token string) (State, error) {
	if f.loadErr != nil {
		return State{}, f.loadErr
	}
	st, ok := f.states[token]
	if !ok {
		return State{}, domain.ErrSignupSessionNotFound()
	}
	return st, nil
}

func (f *fakeStateStore) Delete(_ context.Context, token string) error {
	delete(f.states, token)
	f.deleted = append(f.deleted, token)
	return nil
}

type fakeHandler struct {
	subs []Submission
	res  auth.RegisterResult
	err  error
}

func (f *fakeHandler) HandleSubmission(_ context.Context, sub Submission) (auth.RegisterResult, error) {
	f.subs = append(f.subs, sub)
	if f.err != nil {
		return auth.RegisterResult{}, f.err
	}
	return f.res, nil
}

type fakeProfileStore struct {
	candidates []domain.CandidateProfile
	recruiters []domain.RecruiterProfile
	err        error
}

func (f *fakeProfileStore) SaveCandidateProfile(_ context.Context, p domain.CandidateProfile) error {
	if f.err != nil {
		return f.err
	}
	f.candidates = append(f.candidates, p)
	return nil
}

func (f *fakeProfileStore) SaveRecruiterProfile(_ context.Context, p domain.RecruiterProfile) error {
	if f.err != nil {
		return f.err
	}
	f.recruiters = append(f.recruiters, p)
	return nil
}

// ---- minimal auth port fakes for registrar tests ----

type stubUserRepo struct {
	created []domain.User
}

func (s *stubUserRepo) GetByEmail(context.Context, string) (domain.User, error) {
	return domain.User{}, domain.ErrUserNotFound()
}

func (s *stubUserRepo) GetByID(context.Context, string) (domain.User, error) {
	return domain.User{}, domain.ErrUserNotFound()
}

func (s *stubUserRepo) Create(_ context.Context, u domain.User) (domain.User, error) {
	s.created = append(s.created, u)
	return u, nil
}

func (s *stubUserRepo) UpdatePasswordHash(context.Context, string, string) error { return nil }
func (s *stubUserRepo) SetRole(context.Context, string, string) error            { return nil }
func (s *stubUserRepo) Delete(context.Context, string) error                     { return nil }

type stubHasher struct{}

func (stubHasher) Hash(pw string) (string, error)  { return "hash:" + pw, nil }
func (stubHasher) Compare(hash, pw string) error   { return nil }

type stubSigner struct{}

func (stubSigner) SignAccessToken(c auth.TokenClaims, _ time.Duration) (string, error) {
	return "access:" + c.UserID, nil
}

func (stubSigner) VerifyAccessToken(string) (auth.TokenClaims, error) {
	return auth.TokenClaims{}, domain.ErrTokenInvalid()
}

type stubSessionStore struct{ n int }

func (s *stubSessionStore) CreateRefreshToken(context.Context, string, time.Duration) (string, error) {
	s.n++
	return "rt", nil
}

func (s *stubSessionStore) RotateRefreshToken(context.Context, string, time.Duration) (string, error) {
	return "rt", nil
}

func (s *stubSessionStore) RevokeRefreshToken(context.Context, string) error { return nil }
func (s *stubSessionStore) RevokeAll(context.Context, string) error          { return nil }

func (s *stubSessionStore) GetUserIDByRefreshToken(context.Context, string) (string, error) {
	return "", domain.ErrRefreshTokenInvalid()
}

type stubOTT struct{}

func (stubOTT) Save(context.Context, auth.OneTimeTokenKind, string, string, time.Duration) error {
	return nil
}

func (stubOTT) Consume(context.Context, auth.OneTimeTokenKind, string) (string, error) {
	return "", domain.ErrResetTokenNotFound()
}

func (stubOTT) Peek(context.Context, auth.OneTimeTokenKind, string) (string, error) {
	return "", domain.ErrResetTokenNotFound()
}

type stubPublisher struct{}

func (stubPublisher) PublishUserRegistered(context.Context, auth.UserRegisteredEvent) error {
	return nil
}

func (stubPublisher) PublishPasswordReset(context.Context, auth.PasswordResetEvent) error { return nil }

func (stubPublisher) PublishPasswordChanged(context.Context, auth.PasswordChangedEvent) error {
	return nil
}

func newAuthServiceForTest(users *stubUserRepo) *auth.Service {
	return auth.NewService(users, stubHasher{}, stubSigner{}, &stubSessionStore{}, stubOTT{}, stubPublisher{}, auth.Config{
		AccessTTL:            15 * time.Minute,
		RefreshTTL:           time.Hour,
		PasswordResetBaseURL: "https://app.test/reset-password?token=",
	})
}
