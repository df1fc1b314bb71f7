package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/talenthub/account-service/internal/domain"
)

const userColumns = `id, name, email, password_hash, role, skills, address_id, password_changed_at, created_at`

// UserRepo stores accounts in the users table. Skills travel as jsonb so
// the column survives schema-free additions to the list.
type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}
	return r.fetchOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1 LIMIT 1;`, email)
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}
	return r.fetchOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 LIMIT 1;`, id)
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	u.Email = normalizeEmail(u.Email)

	required := []struct{ field, value string }{
		{"id", u.ID},
		{"name", u.Name},
		{"email", u.Email},
		{"password_hash", u.PasswordHash},
	}
	for _, req := range required {
		if req.value == "" {
			return domain.User{}, domain.ErrMissingField(req.field)
		}
	}
	if u.Role == "" {
		u.Role = string(domain.RoleCandidate)
	}

	skills, err := json.Marshal(u.Skills)
	if err != nil {
		return domain.User{}, domain.ErrInternal(err)
	}
	var addressID any
	if u.AddressID != "" {
		addressID = u.AddressID
	}

	const q = `
INSERT INTO users (id, name, email, password_hash, role, skills, address_id)
VALUES ($1,$2,$3,$4,$5,$6,$7)
RETURNING ` + userColumns + `;
`
	ur, err := scanUserRow(r.db.QueryRowContext(ctx, q,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role, skills, addressID,
	))
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return domain.User{}, domain.ErrEmailAlreadyExists()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return ur.toDomain(), nil
}

func (r *UserRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.ErrMissingField("user_id")
	}
	if newHash == "" {
		return domain.ErrMissingField("password_hash")
	}

	const q = `
UPDATE users
SET password_hash = $2,
    password_changed_at = NOW()
WHERE id = $1;
`
	return r.execOnUser(ctx, q, userID, newHash)
}

func (r *UserRepo) SetRole(ctx context.Context, userID string, role string) error {
	userID = strings.TrimSpace(userID)
	role = strings.TrimSpace(role)

	if userID == "" {
		return domain.ErrMissingField("user_id")
	}
	if !domain.IsValidRole(role) {
		return domain.ErrInvalidRole(role)
	}

	return r.execOnUser(ctx, `UPDATE users SET role = $2 WHERE id = $1;`, userID, role)
}

func (r *UserRepo) Delete(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.ErrMissingField("user_id")
	}

	// Profile rows reference users with ON DELETE CASCADE.
	return r.execOnUser(ctx, `DELETE FROM users WHERE id = $1;`, userID)
}

func (r *UserRepo) CountByRole(ctx context.Context, role string) (int, error) {
	role = strings.TrimSpace(role)
	if role == "" {
		return 0, domain.ErrMissingField("role")
	}
	if !domain.IsValidRole(role) {
		return 0, domain.ErrInvalidRole(role)
	}

	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM users WHERE role = $1;`, role).Scan(&n); err != nil {
		return 0, domain.ErrDBUnavailable(err)
	}
	return n, nil
}

// fetchOne runs a single-row select and maps the usual failure modes.
func (r *UserRepo) fetchOne(ctx context.Context, q string, arg any) (domain.User, error) {
	ur, err := scanUserRow(r.db.QueryRowContext(ctx, q, arg))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return domain.User{}, domain.ErrUserNotFound()
	case err != nil:
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return ur.toDomain(), nil
}

// execOnUser runs a statement keyed by user id and turns "no rows touched"
// into user_not_found.
func (r *UserRepo) execOnUser(ctx context.Context, q string, args ...any) error {
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrUserNotFound()
	}
	return nil
}

func scanUserRow(row *sql.Row) (userRow, error) {
	var ur userRow
	err := row.Scan(
		&ur.ID,
		&ur.Name,
		&ur.Email,
		&ur.PasswordHash,
		&ur.Role,
		&ur.Skills,
		&ur.AddressID,
		&ur.PasswordChangedAt,
		&ur.CreatedAt,
	)
	return ur, err
}
