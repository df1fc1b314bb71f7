//go:build integration

package infra

import (
	"context"
	"database/sql"
)

// EnsureAccountSchema creates the tables the repos expect. Idempotent, so a
// shared database (IT_PG_DSN) and a fresh container both work.
func EnsureAccountSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`
CREATE TABLE IF NOT EXISTS addresses (
  id       TEXT PRIMARY KEY,
  street   TEXT NOT NULL DEFAULT '',
  city     TEXT NOT NULL DEFAULT '',
  state    TEXT NOT NULL DEFAULT '',
  zip_code TEXT NOT NULL DEFAULT '',
  country  TEXT NOT NULL DEFAULT ''
);`,
		`
CREATE TABLE IF NOT EXISTS users (
  id                  TEXT PRIMARY KEY,
  name                TEXT NOT NULL,
  email               TEXT NOT NULL UNIQUE,
  password_hash       TEXT NOT NULL,
  role                TEXT NOT NULL DEFAULT 'CANDIDATE',
  skills              JSONB NOT NULL DEFAULT '[]',
  address_id          TEXT NULL REFERENCES addresses(id),
  password_changed_at TIMESTAMPTZ NULL,
  created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`,
		`
CREATE TABLE IF NOT EXISTS candidate_profiles (
  user_id             TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
  skills              JSONB NOT NULL DEFAULT '[]',
  experience          TEXT NOT NULL DEFAULT '',
  education           JSONB NOT NULL DEFAULT '[]',
  profile_description TEXT NOT NULL DEFAULT '',
  profile_domain      TEXT NOT NULL DEFAULT '',
  address_id          TEXT NULL REFERENCES addresses(id),
  portfolio           TEXT NOT NULL DEFAULT '',
  linkedin            TEXT NOT NULL DEFAULT '',
  github              TEXT NOT NULL DEFAULT ''
);`,
		`
CREATE TABLE IF NOT EXISTS recruiter_profiles (
  user_id             TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
  company_name        TEXT NOT NULL DEFAULT '',
  company_email       TEXT NOT NULL DEFAULT '',
  company_size        TEXT NOT NULL DEFAULT '',
  industry            TEXT NOT NULL DEFAULT '',
  company_website     TEXT NOT NULL DEFAULT '',
  company_description TEXT NOT NULL DEFAULT '',
  job_title           TEXT NOT NULL DEFAULT '',
  department          TEXT NOT NULL DEFAULT '',
  company_address_id  TEXT NULL REFERENCES addresses(id),
  linkedin            TEXT NOT NULL DEFAULT ''
);`,
	}

	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// ResetAccountData wipes every table so each test starts clean.
func ResetAccountData(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx,
		`TRUNCATE candidate_profiles, recruiter_profiles, users, addresses CASCADE;`)
	return err
}
