package signup

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/talenthub/account-service/internal/application/auth"
	"github.com/talenthub/account-service/internal/domain"
)

// Service binds the pure Controller to a StateStore and a SubmissionHandler.
// Every operation loads the session's state, runs the controller, and saves
// the next state back under the same token.
type Service struct {
	ctrl    *Controller
	store   StateStore
	handler SubmissionHandler
	ttl     time.Duration
}

type Config struct {
	Store      StateStore
	Handler    SubmissionHandler
	SessionTTL time.Duration
}

func NewService(cfg Config) (*Service, error) {
	ctrl, err := NewController()
	if err != nil {
		return nil, err
	}
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{
		ctrl:    ctrl,
		store:   cfg.Store,
		handler: cfg.Handler,
		ttl:     ttl,
	}, nil
}

// Start opens a fresh wizard session and returns its opaque token together
// with the initial state.
func (s *Service) Start(ctx context.Context) (string, State, error) {
	token, err := newSessionToken()
	if err != nil {
		return "", State{}, domain.ErrRandomFailed(err)
	}
	st := NewState()
	if err := s.store.Save(ctx, token, st, s.ttl); err != nil {
		return "", State{}, err
	}
	return token, st, nil
}

// Get returns the current state of a session.
func (s *Service) Get(ctx context.Context, token string) (State, error) {
	return s.store.Load(ctx, token)
}

// Steps lists the step sequence visible to a session, which grows once a
// branch is chosen.
func (s *Service) Steps(ctx context.Context, token string) ([]StepDefinition, error) {
	st, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, err
	}
	return Steps(st.Branch), nil
}

func (s *Service) SubmitStep(ctx context.Context, token string, step int, payload json.RawMessage) (State, error) {
	st, err := s.store.Load(ctx, token)
	if err != nil {
		return State{}, err
	}
	next, err := s.ctrl.SubmitStep(st, step, payload)
	if err != nil {
		return st, err
	}
	if err := s.store.Save(ctx, token, next, s.ttl); err != nil {
		return st, err
	}
	return next, nil
}

func (s *Service) GoBack(ctx context.Context, token string) (State, error) {
	st, err := s.store.Load(ctx, token)
	if err != nil {
		return State{}, err
	}
	next := s.ctrl.GoBack(st)
	if err := s.store.Save(ctx, token, next, s.ttl); err != nil {
		return st, err
	}
	return next, nil
}

func (s *Service) GoToStep(ctx context.Context, token string, step int) (State, error) {
	st, err := s.store.Load(ctx, token)
	if err != nil {
		return State{}, err
	}
	next, err := s.ctrl.GoToStep(st, step)
	if err != nil {
		return st, err
	}
	if err := s.store.Save(ctx, token, next, s.ttl); err != nil {
		return st, err
	}
	return next, nil
}

func (s *Service) ResetBranch(ctx context.Context, token string) (State, error) {
	st, err := s.store.Load(ctx, token)
	if err != nil {
		return State{}, err
	}
	next := s.ctrl.ResetBranch(st)
	if err := s.store.Save(ctx, token, next, s.ttl); err != nil {
		return st, err
	}
	return next, nil
}

// Finalize hands the assembled submission to the handler and, on success,
// discards the draft so the token cannot be replayed into a second account.
func (s *Service) Finalize(ctx context.Context, token string) (auth.RegisterResult, error) {
	st, err := s.store.Load(ctx, token)
	if err != nil {
		return auth.RegisterResult{}, err
	}
	sub, err := s.ctrl.Finalize(st)
	if err != nil {
		return auth.RegisterResult{}, err
	}
	res, err := s.handler.HandleSubmission(ctx, sub)
	if err != nil {
		return auth.RegisterResult{}, err
	}
	_ = s.store.Delete(ctx, token)
	return res, nil
}

// Abandon discards a draft on request. Loading first keeps the unknown-token
// error consistent with the other operations.
func (s *Service) Abandon(ctx context.Context, token string) error {
	if _, err := s.store.Load(ctx, token); err != nil {
		return err
	}
	return s.store.Delete(ctx, token)
}

func newSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
