package security

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/talenthub/account-service/internal/domain"
)

// BcryptHasher implements auth.PasswordHasher. Cost is fixed at construction;
// tests pass bcrypt.MinCost to keep suites fast.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	h := &BcryptHasher{cost: cost}
	if h.cost <= 0 {
		h.cost = bcrypt.DefaultCost
	}
	return h
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", domain.ErrHashFailed(err)
	}
	return string(hashed), nil
}

// Compare returns bcrypt's error untouched; callers translate a mismatch into
// their own credential error so timing and wording stay uniform.
func (h *BcryptHasher) Compare(hash string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
