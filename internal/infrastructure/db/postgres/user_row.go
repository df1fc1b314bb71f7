package postgres

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/talenthub/account-service/internal/domain"
)

// userRow mirrors the users table one column per field.
type userRow struct {
	ID                string
	Name              string
	Email             string
	PasswordHash      string
	Role              string
	Skills            []byte // jsonb
	AddressID         sql.NullString
	PasswordChangedAt *time.Time
	CreatedAt         time.Time
}

func (ur userRow) toDomain() domain.User {
	var skills []string
	if len(ur.Skills) > 0 {
		_ = json.Unmarshal(ur.Skills, &skills)
	}
	return domain.User{
		ID:           ur.ID,
		Name:         ur.Name,
		Email:        ur.Email,
		PasswordHash: ur.PasswordHash,
		Role:         ur.Role,
		Skills:       skills,
		AddressID:    ur.AddressID.String,
	}
}
