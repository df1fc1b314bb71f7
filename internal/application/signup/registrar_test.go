package signup

import (
	"context"
	"testing"

	"github.com/talenthub/account-service/internal/domain"
)

func TestRegistrar_CandidateSubmission(t *testing.T) {
	t.Parallel()
	users := &stubUserRepo{}
	profiles := &fakeProfileStore{}
	r := NewRegistrar(newAuthServiceForTest(users), profiles)

	profile := validCandidateProfile()
	res, err := r.HandleSubmission(context.Background(), Submission{
		Name:      "Ann",
		Email:     "ann@x.com",
		Password:  "password1",
		UserType:  BranchCandidate,
		Candidate: &profile,
	})
	if err != nil {
		t.Fatalf("HandleSubmission: %v", err)
	}

	if len(users.created) != 1 {
		t.Fatalf("expected one created user, got %d", len(users.created))
	}
	u := users.created[0]
	if u.Role != string(domain.RoleCandidate) {
		t.Fatalf("candidate branch must map to role %q, got %q", domain.RoleCandidate, u.Role)
	}
	if u.PasswordHash != "hash:password1" {
		t.Fatalf("password must be stored hashed, got %q", u.PasswordHash)
	}

	if len(profiles.candidates) != 1 {
		t.Fatalf("candidate profile not persisted")
	}
	if got := profiles.candidates[0]; got.UserID != u.ID || got.Address.City != "Springfield" {
		t.Fatalf("profile not linked to the new user: %+v", got)
	}

	if res.Tokens.AccessToken == "" || res.Tokens.RefreshToken == "" {
		t.Fatalf("registration must log the user straight in, got %+v", res.Tokens)
	}
}

func TestRegistrar_RecruiterSubmission(t *testing.T) {
	t.Parallel()
	users := &stubUserRepo{}
	profiles := &fakeProfileStore{}
	r := NewRegistrar(newAuthServiceForTest(users), profiles)

	profile := validRecruiterProfile()
	_, err := r.HandleSubmission(context.Background(), Submission{
		Name:      "Rex",
		Email:     "rex@acme.com",
		Password:  "password1",
		UserType:  BranchRecruiter,
		Recruiter: &profile,
	})
	if err != nil {
		t.Fatalf("HandleSubmission: %v", err)
	}

	if users.created[0].Role != string(domain.RoleRecruiter) {
		t.Fatalf("recruiter branch must map to role %q, got %q", domain.RoleRecruiter, users.created[0].Role)
	}
	if len(profiles.recruiters) != 1 || profiles.recruiters[0].CompanyName != "Acme" {
		t.Fatalf("recruiter profile not persisted: %+v", profiles.recruiters)
	}
}

func TestRegistrar_UnsetBranchRejected(t *testing.T) {
	t.Parallel()
	users := &stubUserRepo{}
	r := NewRegistrar(newAuthServiceForTest(users), &fakeProfileStore{})

	_, err := r.HandleSubmission(context.Background(), Submission{
		Name:     "Ann",
		Email:    "ann@x.com",
		Password: "password1",
	})
	requireDomainCode(t, err, "invalid_role")
	if len(users.created) != 0 {
		t.Fatalf("no account may be created without a branch")
	}
}

func TestRegistrar_ProfileFailureSurfaces(t *testing.T) {
	t.Parallel()
	users := &stubUserRepo{}
	profiles := &fakeProfileStore{err: domain.ErrDBUnavailable(nil)}
	r := NewRegistrar(newAuthServiceForTest(users), profiles)

	profile := validCandidateProfile()
	_, err := r.HandleSubmission(context.Background(), Submission{
		Name:      "Ann",
		Email:     "ann@x.com",
		Password:  "password1",
		UserType:  BranchCandidate,
		Candidate: &profile,
	})
	requireDomainCode(t, err, "db_unavailable")
}
