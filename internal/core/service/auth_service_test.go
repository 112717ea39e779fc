package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cinevault/movies-api/internal/core/domain"
	"github.com/cinevault/movies-api/internal/core/ports"
	"github.com/cinevault/movies-api/internal/infrastructure/security"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int64
	err    error // if set, every call returns this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = r.nextID
	r.users[created.Username] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

type stubThrottle struct {
	failures map[string]int
	limit    int
}

func (t *stubThrottle) Blocked(_ context.Context, username string) (bool, error) {
	return t.failures[username] >= t.limit, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, username string) error {
	t.failures[username]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, username string) error {
	delete(t.failures, username)
	return nil
}

type stubAudit struct {
	events []ports.AuditEvent
	err    error
}

func (a *stubAudit) Record(_ context.Context, e ports.AuditEvent) error {
	a.events = append(a.events, e)
	return a.err
}

func newTestAuthService(repo ports.UserRepository, opts ...AuthOption) *AuthService {
	hasher := security.NewBcryptHasher(bcrypt.MinCost, nil)
	tokens := security.NewJWTManager("secret", time.Hour)
	return NewAuthService(repo, hasher, tokens, zerolog.Nop(), opts...)
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	user, err := svc.Register(context.Background(), ports.RegisterInput{Username: "alice", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == 0 || user.Username != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default role %q, got %q", domain.RoleUser, user.Role)
	}
	if user.PasswordHash == "secret1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	cases := []ports.RegisterInput{
		{Username: "", Password: "secret1"},
		{Username: "   ", Password: "secret1"},
		{Username: "bob", Password: ""},
		{Username: "bob", Password: "12345"},
		{Username: "bob", Password: strings.Repeat("x", 73)},
		{Username: "bob", Password: "secret1", Role: "superuser"},
	}
	for _, in := range cases {
		if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%+v: expected ErrValidation, got %v", in, err)
		}
	}
}

func TestAuthService_Register_DuplicateIgnoresCase(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "Bob", Password: "secret1"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := svc.Register(context.Background(), ports.RegisterInput{Username: "bob", Password: "secret2"})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_StoresFoldedUsername(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	user, err := svc.Register(context.Background(), ports.RegisterInput{Username: "  ALICE ", Password: "secret1"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("expected folded username, got %q", user.Username)
	}
	if _, ok := repo.users["alice"]; !ok {
		t.Fatalf("repo did not receive folded username")
	}
}

func TestAuthService_Register_AdminElevation(t *testing.T) {
	t.Run("refused without configured key", func(t *testing.T) {
		svc := newTestAuthService(newStubUserRepo())
		_, err := svc.Register(context.Background(), ports.RegisterInput{Username: "root", Password: "secret1", Role: domain.RoleAdmin})
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("refused with wrong key", func(t *testing.T) {
		svc := newTestAuthService(newStubUserRepo(), WithAdminRegistrationKey("letmein"))
		_, err := svc.Register(context.Background(), ports.RegisterInput{Username: "root", Password: "secret1", Role: domain.RoleAdmin, AdminKey: "guess"})
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("granted with key", func(t *testing.T) {
		svc := newTestAuthService(newStubUserRepo(), WithAdminRegistrationKey("letmein"))
		user, err := svc.Register(context.Background(), ports.RegisterInput{Username: "root", Password: "secret1", Role: domain.RoleAdmin, AdminKey: "letmein"})
		if err != nil {
			t.Fatalf("register failed: %v", err)
		}
		if user.Role != domain.RoleAdmin {
			t.Fatalf("expected admin, got %q", user.Role)
		}
	})
}

func TestAuthService_Register_RepoFailureIsWrapped(t *testing.T) {
	repo := newStubUserRepo()
	repo.err = errors.New("disk full")
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), ports.RegisterInput{Username: "alice", Password: "secret1"})
	if err == nil || errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected wrapped infrastructure error, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "carol", Password: "s3cret!"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	res, err := svc.Login(context.Background(), "CAROL", "s3cret!")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if res.User.Username != "carol" {
		t.Fatalf("unexpected user: %+v", res.User)
	}

	claims, err := security.NewJWTManager("secret", time.Hour).Verify(res.Token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.Username != "carol" || claims.Role != domain.RoleUser || claims.UserID != res.User.ID {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if !claims.ExpiresAt.Equal(res.ExpiresAt) {
		t.Fatalf("expires_at mismatch: %v vs %v", claims.ExpiresAt, res.ExpiresAt)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	_, _ = svc.Register(context.Background(), ports.RegisterInput{Username: "dave", Password: "goodpass"})
	if _, err := svc.Login(context.Background(), "dave", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_RejectsBytesPastBcryptLimit(t *testing.T) {
	throttle := &stubThrottle{failures: map[string]int{}, limit: 10}
	svc := newTestAuthService(newStubUserRepo(), WithLoginThrottle(throttle))

	password := strings.Repeat("a", maxPasswordBytes)
	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "bob", Password: password}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.Login(context.Background(), "bob", password+"EXTRA-GARBAGE"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if throttle.failures["bob"] != 1 {
		t.Fatalf("oversized password must count as a failure, got %d", throttle.failures["bob"])
	}
	if _, err := svc.Login(context.Background(), "bob", password); err != nil {
		t.Fatalf("exact password must still log in: %v", err)
	}
}

func TestAuthService_Login_UnknownUserLooksLikeBadPassword(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	if _, err := svc.Login(context.Background(), "ghost", "whatever"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	if _, err := svc.Login(context.Background(), "", "pw"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "bob", ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAuthService_Login_MalformedStoredHash(t *testing.T) {
	repo := newStubUserRepo()
	repo.users["eve"] = &domain.User{ID: 1, Username: "eve", PasswordHash: "garbage", Role: domain.RoleUser}
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), "eve", "secret1")
	if err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("malformed hash must be an internal error, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	throttle := &stubThrottle{failures: map[string]int{}, limit: 2}
	audit := &stubAudit{}
	svc := newTestAuthService(newStubUserRepo(), WithLoginThrottle(throttle), WithAuditRecorder(audit))

	_, _ = svc.Register(context.Background(), ports.RegisterInput{Username: "frank", Password: "secret1"})

	for i := 0; i < 2; i++ {
		if _, err := svc.Login(context.Background(), "frank", "nope-nope"); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i, err)
		}
	}
	if _, err := svc.Login(context.Background(), "frank", "secret1"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}

	_ = throttle.Reset(context.Background(), "frank")
	if _, err := svc.Login(context.Background(), "frank", "secret1"); err != nil {
		t.Fatalf("login after reset failed: %v", err)
	}
	if throttle.failures["frank"] != 0 {
		t.Fatalf("successful login must clear failures")
	}

	want := []string{ports.AuditRegister, ports.AuditLoginFailure, ports.AuditLoginFailure, ports.AuditLoginLocked, ports.AuditLoginSuccess}
	if len(audit.events) != len(want) {
		t.Fatalf("expected %d audit events, got %d", len(want), len(audit.events))
	}
	for i, action := range want {
		if audit.events[i].Action != action {
			t.Fatalf("event %d: expected %s, got %s", i, action, audit.events[i].Action)
		}
	}
}

func TestAuthService_AuditFailureIsNonFatal(t *testing.T) {
	audit := &stubAudit{err: errors.New("mongo down")}
	svc := newTestAuthService(newStubUserRepo(), WithAuditRecorder(audit))

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "gina", Password: "secret1"}); err != nil {
		t.Fatalf("register must succeed when audit fails: %v", err)
	}
	if _, err := svc.Login(context.Background(), "gina", "secret1"); err != nil {
		t.Fatalf("login must succeed when audit fails: %v", err)
	}
}

func TestAuthService_AuditCarriesRequestID(t *testing.T) {
	audit := &stubAudit{}
	svc := newTestAuthService(newStubUserRepo(), WithAuditRecorder(audit))

	ctx := ContextWithRequestID(context.Background(), "req-42")
	if _, err := svc.Register(ctx, ports.RegisterInput{Username: "hank", Password: "secret1"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if len(audit.events) != 1 || audit.events[0].RequestID != "req-42" {
		t.Fatalf("unexpected audit events: %+v", audit.events)
	}
}
