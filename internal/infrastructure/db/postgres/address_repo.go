package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/talenthub/account-service/internal/domain"
)

type AddressRepo struct {
	db *sql.DB
}

func NewAddressRepo(db *sql.DB) *AddressRepo {
	return &AddressRepo{db: db}
}

// FindOrCreate returns the existing address matching every field, creating it
// when absent. Addresses are shared rows, so identical inputs from different
// signups collapse into one record.
func (r *AddressRepo) FindOrCreate(ctx context.Context, a domain.Address) (domain.Address, error) {
	return findOrCreateAddress(ctx, r.db, a)
}

// querier lets the same lookup run on *sql.DB or inside a *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func findOrCreateAddress(ctx context.Context, q querier, a domain.Address) (domain.Address, error) {
	const sel = `
SELECT id
FROM addresses
WHERE street = $1 AND city = $2 AND state = $3 AND zip_code = $4 AND country = $5
LIMIT 1;
`
	err := q.QueryRowContext(ctx, sel, a.Street, a.City, a.State, a.ZipCode, a.Country).Scan(&a.ID)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return domain.Address{}, domain.ErrDBUnavailable(err)
	}

	a.ID = uuid.NewString()
	const ins = `
INSERT INTO addresses (id, street, city, state, zip_code, country)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING id;
`
	if err := q.QueryRowContext(ctx, ins, a.ID, a.Street, a.City, a.State, a.ZipCode, a.Country).Scan(&a.ID); err != nil {
		return domain.Address{}, domain.ErrDBUnavailable(err)
	}
	return a, nil
}
