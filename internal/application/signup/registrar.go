package signup

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/talenthub/account-service/internal/application/auth"
	"github.com/talenthub/account-service/internal/domain"
)

// ProfileStore persists the branch-specific profile created at finalize.
type ProfileStore interface {
	SaveCandidateProfile(ctx context.Context, p domain.CandidateProfile) error
	SaveRecruiterProfile(ctx context.Context, p domain.RecruiterProfile) error
}

// Registrar is the default SubmissionHandler: it creates the account through
// the auth service and then persists the branch profile.
type Registrar struct {
	auth     *auth.Service
	profiles ProfileStore
}

func NewRegistrar(authSvc *auth.Service, profiles ProfileStore) *Registrar {
	return &Registrar{auth: authSvc, profiles: profiles}
}

func (r *Registrar) HandleSubmission(ctx context.Context, sub Submission) (auth.RegisterResult, error) {
	role, err := roleFor(sub.UserType)
	if err != nil {
		return auth.RegisterResult{}, err
	}

	res, err := r.auth.Register(ctx, sub.Name, sub.Email, sub.Password, role)
	if err != nil {
		return auth.RegisterResult{}, err
	}

	switch {
	case sub.Candidate != nil:
		err = r.profiles.SaveCandidateProfile(ctx, sub.Candidate.ToDomain(res.User.ID))
	case sub.Recruiter != nil:
		err = r.profiles.SaveRecruiterProfile(ctx, sub.Recruiter.ToDomain(res.User.ID))
	}
	if err != nil {
		// The account exists but its profile did not land. Surface the
		// failure; the user can retry profile completion after login.
		log.Error().Err(err).Str("user_id", res.User.ID).Msg("profile persistence failed after registration")
		return auth.RegisterResult{}, err
	}

	return res, nil
}

func roleFor(b Branch) (string, error) {
	switch b {
	case BranchCandidate:
		return string(domain.RoleCandidate), nil
	case BranchRecruiter:
		return string(domain.RoleRecruiter), nil
	default:
		return "", domain.ErrInvalidRole(string(b))
	}
}
