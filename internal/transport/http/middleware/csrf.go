package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/talenthub/account-service/internal/domain"
)

// CSRFProtection rejects state-changing requests whose Origin (or Referer,
// when Origin is absent) does not resolve to an allowed host. It guards the
// endpoints authenticated by cookie alone, refresh, logout, and the signup
// wizard, where a cross-site form post could ride the cookie.
func CSRFProtection(allowedOrigins []string, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if u, err := url.Parse(origin); err == nil && u.Host != "" {
			allowed[strings.ToLower(u.Host)] = struct{}{}
		}
	}

	safeMethod := func(m string) bool {
		return m == http.MethodGet || m == http.MethodHead || m == http.MethodOptions
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if safeMethod(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			host, ok := requestOriginHost(r)
			if !ok {
				writeErr(w, r, domain.ErrForbidden())
				return
			}
			if _, ok := allowed[host]; !ok {
				writeErr(w, r, domain.ErrForbidden())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// DefaultAllowedOrigins covers the hosts a local frontend dev setup uses.
func DefaultAllowedOrigins() []string {
	return []string{
		"http://localhost:3000",
		"http://localhost:8080",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:8080",
	}
}

// requestOriginHost extracts the lowercased host the browser claims the
// request came from. Absent or unparseable headers report not-ok, which
// callers treat as a rejection.
func requestOriginHost(r *http.Request) (string, bool) {
	origin := r.Header.Get("Origin")
	if origin == "" {
		origin = r.Header.Get("Referer")
	}
	if origin == "" {
		return "", false
	}

	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return "", false
	}
	return strings.ToLower(u.Host), true
}
