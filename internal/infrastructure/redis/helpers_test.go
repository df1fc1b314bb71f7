package redis

import (
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/talenthub/account-service/internal/domain"
)

func isMissingField(err error, field string) bool {
	var de *domain.Error
	if errors.As(err, &de) {
		return de.Code == "missing_field" && de.Meta != nil && de.Meta["field"] == field
	}
	return false
}

// newTestClient spins up an in-process redis and returns a client wired to it.
func newTestClient(t *testing.T) (*miniredis.Miniredis, *Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return mr, c
}
