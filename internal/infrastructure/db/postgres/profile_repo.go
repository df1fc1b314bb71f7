package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/talenthub/account-service/internal/domain"
)

// ProfileRepo persists the branch-specific profile written at the end of the
// signup wizard. Each save runs in one transaction: resolve (or create) the
// address row, then upsert the profile.
type ProfileRepo struct {
	db *sql.DB
}

func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

func (r *ProfileRepo) SaveCandidateProfile(ctx context.Context, p domain.CandidateProfile) error {
	if strings.TrimSpace(p.UserID) == "" {
		return domain.ErrMissingField("user_id")
	}

	skills, err := json.Marshal(p.Skills)
	if err != nil {
		return domain.ErrInternal(err)
	}
	education, err := json.Marshal(p.Education)
	if err != nil {
		return domain.ErrInternal(err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	defer func() { _ = tx.Rollback() }()

	addr, err := findOrCreateAddress(ctx, tx, p.Address)
	if err != nil {
		return err
	}

	const q = `
INSERT INTO candidate_profiles
  (user_id, skills, experience, education, profile_description, profile_domain, address_id, portfolio, linkedin, github)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
ON CONFLICT (user_id) DO UPDATE SET
  skills = EXCLUDED.skills,
  experience = EXCLUDED.experience,
  education = EXCLUDED.education,
  profile_description = EXCLUDED.profile_description,
  profile_domain = EXCLUDED.profile_domain,
  address_id = EXCLUDED.address_id,
  portfolio = EXCLUDED.portfolio,
  linkedin = EXCLUDED.linkedin,
  github = EXCLUDED.github;
`
	if _, err := tx.ExecContext(ctx, q,
		p.UserID, skills, p.Experience, education, p.ProfileDescription, p.ProfileDomain,
		addr.ID, p.Portfolio, p.LinkedIn, p.GitHub,
	); err != nil {
		return domain.ErrDBUnavailable(err)
	}

	// Keep the denormalized skills + address on the user row in sync.
	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET skills = $2, address_id = $3 WHERE id = $1;`,
		p.UserID, skills, addr.ID,
	); err != nil {
		return domain.ErrDBUnavailable(err)
	}

	if err := tx.Commit(); err != nil {
		return domain.ErrDBUnavailable(err)
	}
	return nil
}

func (r *ProfileRepo) SaveRecruiterProfile(ctx context.Context, p domain.RecruiterProfile) error {
	if strings.TrimSpace(p.UserID) == "" {
		return domain.ErrMissingField("user_id")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	defer func() { _ = tx.Rollback() }()

	addr, err := findOrCreateAddress(ctx, tx, p.CompanyAddress)
	if err != nil {
		return err
	}

	const q = `
INSERT INTO recruiter_profiles
  (user_id, company_name, company_email, company_size, industry, company_website, company_description, job_title, department, company_address_id, linkedin)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
ON CONFLICT (user_id) DO UPDATE SET
  company_name = EXCLUDED.company_name,
  company_email = EXCLUDED.company_email,
  company_size = EXCLUDED.company_size,
  industry = EXCLUDED.industry,
  company_website = EXCLUDED.company_website,
  company_description = EXCLUDED.company_description,
  job_title = EXCLUDED.job_title,
  department = EXCLUDED.department,
  company_address_id = EXCLUDED.company_address_id,
  linkedin = EXCLUDED.linkedin;
`
	if _, err := tx.ExecContext(ctx, q,
		p.UserID, p.CompanyName, p.CompanyEmail, p.CompanySize, p.Industry, p.CompanyWebsite,
		p.CompanyDescription, p.JobTitle, p.Department, addr.ID, p.LinkedIn,
	); err != nil {
		return domain.ErrDBUnavailable(err)
	}

	if err := tx.Commit(); err != nil {
		return domain.ErrDBUnavailable(err)
	}
	return nil
}
