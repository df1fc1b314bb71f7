package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/talenthub/account-service/internal/domain"
)

// Hand-written fakes for the service ports. Each records calls and lets a
// test inject one failure per method.

type fakeUserRepo struct {
	mu sync.Mutex

	byID    map[string]domain.User
	byEmail map[string]domain.User

	// injected errors (if set, method returns error)
	getByIDErr    error
	getByEmailErr error
	createErr     error
	setRoleErr    error
	updatePwdErr  error
	deleteErr     error

	// record calls
	setRoles   []struct{ id, role string }
	updatedPwd []struct{ id, hash string }
	deletedIDs []string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    map[string]domain.User{},
		byEmail: map[string]domain.User{},
	}
}

func (f *fakeUserRepo) put(u domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByEmailErr != nil {
		return domain.User{}, f.getByEmailErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByIDErr != nil {
		return domain.User{}, f.getByIDErr
	}
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return domain.User{}, f.createErr
	}
	if _, exists := f.byEmail[u.Email]; exists {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	}
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUserRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updatePwdErr != nil {
		return f.updatePwdErr
	}
	u, ok := f.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.PasswordHash = newHash
	f.byID[userID] = u
	f.byEmail[u.Email] = u
	f.updatedPwd = append(f.updatedPwd, struct{ id, hash string }{userID, newHash})
	return nil
}

func (f *fakeUserRepo) SetRole(ctx context.Context, userID string, role string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.setRoleErr != nil {
		return f.setRoleErr
	}
	u, ok := f.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.Role = role
	f.byID[userID] = u
	f.byEmail[u.Email] = u
	f.setRoles = append(f.setRoles, struct{ id, role string }{userID, role})
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.deleteErr != nil {
		return f.deleteErr
	}
	u, ok := f.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	delete(f.byID, userID)
	delete(f.byEmail, u.Email)
	f.deletedIDs = append(f.deletedIDs, userID)
	return nil
}

type fakeHasher struct {
	hashFn    func(pw string) (string, error)
	compareFn func(hash, pw string) error
}

func (f *fakeHasher) Hash(pw string) (string, error) {
	if f.hashFn != nil {
		return f.hashFn(pw)
	}
	return "hash:" + pw, nil
}

func (f *fakeHasher) Compare(hash, pw string) error {
	if f.compareFn != nil {
		return f.compareFn(hash, pw)
	}
	if hash != "hash:"+pw {
		return errors.New("mismatch")
	}
	return nil
}

type fakeSigner struct {
	signErr error
	signed  []TokenClaims
}

func (f *fakeSigner) SignAccessToken(claims TokenClaims, ttl time.Duration) (string, error) {
	if f.signErr != nil {
		return "", f.signErr
	}
	f.signed = append(f.signed, claims)
	return fmt.Sprintf("access:%s:%s", claims.UserID, claims.Role), nil
}

func (f *fakeSigner) VerifyAccessToken(token string) (TokenClaims, error) {
	parts := strings.SplitN(token, ":", 3)
	if len(parts) != 3 || parts[0] != "access" {
		return TokenClaims{}, domain.ErrTokenInvalid()
	}
	return TokenClaims{UserID: parts[1], Role: parts[2]}, nil
}

type fakeSessionStore struct {
	mu sync.Mutex

	byToken map[string]string // token -> userID
	counter int

	createErr error
	rotateErr error
	revoked   []string
	revokedAll []string
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{byToken: map[string]string{}}
}

func (f *fakeSessionStore) CreateRefreshToken(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return "", f.createErr
	}
	f.counter++
	tok := fmt.Sprintf("rt-%d", f.counter)
	f.byToken[tok] = userID
	return tok, nil
}

func (f *fakeSessionStore) RotateRefreshToken(ctx context.Context, oldToken string, ttl time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.rotateErr != nil {
		return "", f.rotateErr
	}
	uid, ok := f.byToken[oldToken]
	if !ok {
		return "", domain.ErrRefreshTokenInvalid()
	}
	delete(f.byToken, oldToken)
	f.counter++
	tok := fmt.Sprintf("rt-%d", f.counter)
	f.byToken[tok] = uid
	return tok, nil
}

func (f *fakeSessionStore) RevokeRefreshToken(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.byToken, token)
	f.revoked = append(f.revoked, token)
	return nil
}

func (f *fakeSessionStore) RevokeAll(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for tok, uid := range f.byToken {
		if uid == userID {
			delete(f.byToken, tok)
		}
	}
	f.revokedAll = append(f.revokedAll, userID)
	return nil
}

func (f *fakeSessionStore) GetUserIDByRefreshToken(ctx context.Context, token string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	uid, ok := f.byToken[token]
	if !ok {
		return "", domain.ErrRefreshTokenInvalid()
	}
	return uid, nil
}

type fakeOTTStore struct {
	mu sync.Mutex

	byKey map[string]string // kind+token -> userID

	saveErr    error
	consumeErr error
}

func newFakeOTTStore() *fakeOTTStore {
	return &fakeOTTStore{byKey: map[string]string{}}
}

func (f *fakeOTTStore) key(kind OneTimeTokenKind, token string) string {
	return string(kind) + ":" + token
}

func (f *fakeOTTStore) Save(ctx context.Context, kind OneTimeTokenKind, token, userID string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.saveErr != nil {
		return f.saveErr
	}
	f.byKey[f.key(kind, token)] = userID
	return nil
}

func (f *fakeOTTStore) Consume(ctx context.Context, kind OneTimeTokenKind, token string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.consumeErr != nil {
		return "", f.consumeErr
	}
	uid, ok := f.byKey[f.key(kind, token)]
	if !ok {
		return "", domain.ErrTokenInvalid()
	}
	delete(f.byKey, f.key(kind, token))
	return uid, nil
}

func (f *fakeOTTStore) Peek(ctx context.Context, kind OneTimeTokenKind, token string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	uid, ok := f.byKey[f.key(kind, token)]
	if !ok {
		return "", domain.ErrTokenInvalid()
	}
	return uid, nil
}

type fakePublisher struct {
	mu sync.Mutex

	registered []UserRegisteredEvent
	resets     []PasswordResetEvent
	changed    []PasswordChangedEvent

	resetErr error
}

func (f *fakePublisher) PublishUserRegistered(ctx context.Context, evt UserRegisteredEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registered = append(f.registered, evt)
	return nil
}

func (f *fakePublisher) PublishPasswordReset(ctx context.Context, evt PasswordResetEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.resetErr != nil {
		return f.resetErr
	}
	f.resets = append(f.resets, evt)
	return nil
}

func (f *fakePublisher) PublishPasswordChanged(ctx context.Context, evt PasswordChangedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.changed = append(f.changed, evt)
	return nil
}

// Shared constructors.

func newSvcForTest(t *testing.T) (*Service, *fakeUserRepo, *fakeHasher, *fakeSigner, *fakeSessionStore, *fakeOTTStore, *fakePublisher) {
	t.Helper()

	users := newFakeUserRepo()
	hasher := &fakeHasher{}
	signer := &fakeSigner{}
	sessions := newFakeSessionStore()
	ott := newFakeOTTStore()
	pub := &fakePublisher{}

	svc := NewService(users, hasher, signer, sessions, ott, pub, Config{
		AccessTTL:             15 * time.Minute,
		RefreshTTL:            24 * time.Hour,
		PasswordResetBaseURL:  "https://app.test/reset-password?token=",
		PasswordResetTokenTTL: 30 * time.Minute,
	})

	return svc, users, hasher, signer, sessions, ott, pub
}

func requireDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	if !domain.Is(err, code) {
		t.Fatalf("expected domain code %q, got %v", code, err)
	}
}
