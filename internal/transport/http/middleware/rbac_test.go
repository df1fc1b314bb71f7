package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/talenthub/account-service/internal/application/auth"
	"github.com/talenthub/account-service/internal/domain"
)

func runRBAC(t *testing.T, minRole, ctxRole string) (*writeErrRecorder, *nextRecorder) {
	t.Helper()

	rr := httptest.NewRecorder()
	we := &writeErrRecorder{}
	nx := &nextRecorder{}

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if ctxRole != "" {
		ctx := WithClaims(req.Context(), auth.TokenClaims{UserID: "u-1", Role: ctxRole})
		req = req.WithContext(ctx)
	}

	h := RequireAtLeast(minRole, we.fn)(nx)
	h.ServeHTTP(rr, req)

	return we, nx
}

func TestRequireAtLeast_NoClaimsInContext_ReturnsTokenInvalid(t *testing.T) {
	we, nx := runRBAC(t, string(domain.RoleAdmin), "")

	if nx.calls != 0 {
		t.Fatalf("expected next not called")
	}
	if !domain.Is(we.last, "token_invalid") {
		t.Fatalf("expected token_invalid, got %v", we.last)
	}
}

func TestRequireAtLeast_UnknownRole_ReturnsForbidden(t *testing.T) {
	we, nx := runRBAC(t, string(domain.RoleAdmin), "SUPERUSER")

	if nx.calls != 0 {
		t.Fatalf("expected next not called")
	}
	if !domain.Is(we.last, "forbidden") {
		t.Fatalf("expected forbidden, got %v", we.last)
	}
}

func TestRequireAtLeast_CandidateBelowAdmin_ReturnsInsufficientRole(t *testing.T) {
	we, nx := runRBAC(t, string(domain.RoleAdmin), string(domain.RoleCandidate))

	if nx.calls != 0 {
		t.Fatalf("expected next not called")
	}
	if !domain.Is(we.last, "insufficient_role") {
		t.Fatalf("expected insufficient_role, got %v", we.last)
	}
}

func TestRequireAtLeast_RecruiterBelowAdmin_ReturnsInsufficientRole(t *testing.T) {
	we, nx := runRBAC(t, string(domain.RoleAdmin), string(domain.RoleRecruiter))

	if nx.calls != 0 {
		t.Fatalf("expected next not called")
	}
	if !domain.Is(we.last, "insufficient_role") {
		t.Fatalf("expected insufficient_role, got %v", we.last)
	}
}

func TestRequireAtLeast_AdminPasses(t *testing.T) {
	we, nx := runRBAC(t, string(domain.RoleAdmin), string(domain.RoleAdmin))

	if we.calls != 0 {
		t.Fatalf("expected writeErr not called, got %v", we.last)
	}
	if nx.calls != 1 {
		t.Fatalf("expected next called once, got %d", nx.calls)
	}
}

func TestRequireAtLeast_CandidateMeetsCandidateFloor(t *testing.T) {
	we, nx := runRBAC(t, string(domain.RoleCandidate), string(domain.RoleCandidate))

	if we.calls != 0 {
		t.Fatalf("expected writeErr not called, got %v", we.last)
	}
	if nx.calls != 1 {
		t.Fatalf("expected next called once, got %d", nx.calls)
	}
}
