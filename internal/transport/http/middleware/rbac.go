package middleware

import (
	"net/http"

	"github.com/talenthub/account-service/internal/domain"
)

// RequireAtLeast gates a route by role rank (admin outranks recruiter and
// candidate). It must run after Auth; absent claims mean the chain is
// misordered, which we report as an invalid token rather than a panic.
func RequireAtLeast(minRole string, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := RoleFromContext(r.Context())
			if !ok {
				writeErr(w, r, domain.ErrTokenInvalid())
				return
			}

			switch {
			case !domain.IsValidRole(role) || !domain.IsValidRole(minRole):
				writeErr(w, r, domain.ErrForbidden())
			case domain.RoleRank(role) < domain.RoleRank(minRole):
				writeErr(w, r, domain.ErrInsufficientRole(minRole))
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}
