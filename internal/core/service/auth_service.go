package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/cinevault/movies-api/internal/core/domain"
	"github.com/cinevault/movies-api/internal/core/ports"
)

// maxPasswordBytes is bcrypt's input limit.
const maxPasswordBytes = 72

// AuthService implements registration and login.
type AuthService struct {
	repo     ports.UserRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenIssuer
	throttle ports.LoginThrottle
	audit    ports.AuditRecorder
	adminKey string
	log      zerolog.Logger

	dummyOnce sync.Once
	dummyHash string
}

type AuthOption func(*AuthService)

// WithLoginThrottle enables lockout after repeated failed logins.
func WithLoginThrottle(t ports.LoginThrottle) AuthOption {
	return func(s *AuthService) { s.throttle = t }
}

// WithAuditRecorder records registration and login outcomes.
func WithAuditRecorder(a ports.AuditRecorder) AuthOption {
	return func(s *AuthService) { s.audit = a }
}

// WithAdminRegistrationKey allows registering admins that present key.
// Without it, admin elevation at registration is refused.
func WithAdminRegistrationKey(key string) AuthOption {
	return func(s *AuthService) { s.adminKey = key }
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, log zerolog.Logger, opts ...AuthOption) *AuthService {
	s := &AuthService{repo: repo, hasher: hasher, tokens: tokens, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	username := domain.NormalizeUsername(in.Username)
	if username == "" || in.Password == "" {
		return nil, domain.NewValidationError("username and password are required")
	}
	if utf8.RuneCountInString(in.Password) < domain.MinPasswordLength {
		return nil, domain.NewValidationError(fmt.Sprintf("password must be at least %d characters", domain.MinPasswordLength))
	}
	if len(in.Password) > maxPasswordBytes {
		return nil, domain.NewValidationError(fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes))
	}

	role, err := s.resolveRole(in.Role, in.AdminKey)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(ctx, in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if !errors.Is(err, domain.ErrUserExists) {
			err = fmt.Errorf("register: %w", err)
		}
		return nil, err
	}

	s.log.Info().Int64("user_id", created.ID).Str("username", created.Username).Str("role", created.Role).Msg("user registered")
	s.record(ctx, ports.AuditRegister, created.Username, created.ID)

	return created, nil
}

func (s *AuthService) resolveRole(requested, key string) (string, error) {
	switch requested {
	case "", domain.RoleUser:
		return domain.RoleUser, nil
	case domain.RoleAdmin:
		if s.adminKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(s.adminKey)) != 1 {
			return "", fmt.Errorf("%w: admin registration requires a valid admin key", domain.ErrForbidden)
		}
		return domain.RoleAdmin, nil
	default:
		return "", domain.NewValidationError("role must be one of: user admin")
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	username = domain.NormalizeUsername(username)
	if username == "" || password == "" {
		return nil, domain.NewValidationError("username and password are required")
	}

	if s.throttle != nil {
		blocked, err := s.throttle.Blocked(ctx, username)
		if err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("login throttle check failed, continuing")
		} else if blocked {
			s.record(ctx, ports.AuditLoginLocked, username, 0)
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("login: %w", err)
	}

	// bcrypt ignores everything past 72 bytes, so a longer password could
	// match a stored hash of its prefix. No stored password is that long.
	if user == nil || len(password) > maxPasswordBytes {
		// Spend the same bcrypt time as a real comparison so response
		// latency does not reveal which usernames exist.
		if _, verr := s.hasher.Verify(ctx, password, s.placeholderHash(ctx)); verr != nil {
			s.log.Debug().Err(verr).Msg("placeholder hash comparison failed")
		}
		s.failed(ctx, username)
		return nil, domain.ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if !ok {
		s.failed(ctx, username)
		return nil, domain.ErrInvalidCredentials
	}

	token, exp, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("failed to reset login throttle")
		}
	}
	s.record(ctx, ports.AuditLoginSuccess, user.Username, user.ID)

	return &ports.LoginResult{Token: token, ExpiresAt: exp, User: user}, nil
}

func (s *AuthService) failed(ctx context.Context, username string) {
	if s.throttle != nil {
		if err := s.throttle.RecordFailure(ctx, username); err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("failed to record login failure")
		}
	}
	s.record(ctx, ports.AuditLoginFailure, username, 0)
}

func (s *AuthService) record(ctx context.Context, action, username string, userID int64) {
	if s.audit == nil {
		return
	}
	event := ports.AuditEvent{
		Action:    action,
		Username:  username,
		UserID:    userID,
		RequestID: RequestIDFromContext(ctx),
		At:        time.Now().UTC(),
	}
	if err := s.audit.Record(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("action", action).Msg("failed to record audit event")
	}
}

func (s *AuthService) placeholderHash(ctx context.Context) string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash(context.WithoutCancel(ctx), "placeholder-password")
		if err != nil {
			s.log.Warn().Err(err).Msg("could not prepare placeholder hash")
			return
		}
		s.dummyHash = h
	})
	return s.dummyHash
}
