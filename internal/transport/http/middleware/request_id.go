package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	appctx "github.com/talenthub/account-service/internal/pkg/context"
)

const HeaderXRequestID = "X-Request-Id"

// RequestID threads a correlation id through the request: reuse the caller's
// X-Request-Id when present, mint one otherwise. The id is echoed on the
// response and stashed in the context for logs and error bodies.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(HeaderXRequestID))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderXRequestID, id)

		next.ServeHTTP(w, r.WithContext(appctx.WithRequestID(r.Context(), id)))
	})
}
