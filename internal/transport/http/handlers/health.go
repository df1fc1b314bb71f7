package http_handlers

import (
	"context"
	"net/http"

	"github.com/talenthub/account-service/internal/domain"
	"github.com/talenthub/account-service/internal/transport/http/response"
)

// Pinger is the slice of *sql.DB that readiness checks need.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler serves liveness and readiness. Liveness always succeeds;
// readiness pings the database when one is wired, so a dev process running
// on the in-memory fallbacks still reports ready.
type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{"status": "ok"})
}

func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.PingContext(r.Context()); err != nil {
			response.WriteError(w, r, domain.ErrDBUnavailable(err))
			return
		}
	}
	response.OK(w, map[string]string{"status": "ready"})
}
