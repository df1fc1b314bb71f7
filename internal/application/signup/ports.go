package signup

import (
	"context"
	"time"

	"github.com/talenthub/account-service/internal/application/auth"
)

// StateStore persists wizard drafts between requests, keyed by the opaque
// signup-session token handed to the client.
type StateStore interface {
	Save(ctx context.Context, token string, st State, ttl time.Duration) error
	Load(ctx context.Context, token string) (State, error)
	Delete(ctx context.Context, token string) error
}

// SubmissionHandler turns a finalized wizard submission into a real account.
// The default implementation is Registrar; tests substitute their own.
type SubmissionHandler interface {
	HandleSubmission(ctx context.Context, sub Submission) (auth.RegisterResult, error)
}
