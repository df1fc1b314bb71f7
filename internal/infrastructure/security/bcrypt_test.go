package security

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/talenthub/account-service/internal/domain"
)

func TestNewBcryptHasher_CostNormalization(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   int
		want int
	}{
		{"zero falls back to default", 0, bcrypt.DefaultCost},
		{"negative falls back to default", -3, bcrypt.DefaultCost},
		{"explicit cost kept", bcrypt.MinCost, bcrypt.MinCost},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewBcryptHasher(tc.in)
			if h.cost != tc.want {
				t.Fatalf("cost = %d, want %d", h.cost, tc.want)
			}
		})
	}
}

func TestBcryptHasher_RoundTrip(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)

	const pw = "sup3r-secret"
	hash, err := h.Hash(pw)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "" || hash == pw {
		t.Fatalf("want an opaque hash, got %q", hash)
	}

	if err := h.Compare(hash, pw); err != nil {
		t.Fatalf("Compare with the right password: %v", err)
	}
	if err := h.Compare(hash, "not-the-password"); err == nil {
		t.Fatalf("Compare with the wrong password succeeded")
	}
}

func TestBcryptHasher_Hash_CostOutOfRange(t *testing.T) {
	t.Parallel()

	// The constructor only repairs non-positive costs, so a hand-built
	// hasher can still carry one bcrypt rejects.
	h := &BcryptHasher{cost: bcrypt.MaxCost + 1}

	if _, err := h.Hash("whatever"); !domain.Is(err, "hash_failed") {
		t.Fatalf("want hash_failed, got %v", err)
	}
}
