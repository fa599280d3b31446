package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"goldcosmetics/internal/auth"
	apperrors "goldcosmetics/internal/errors"
	"goldcosmetics/internal/metrics"
	"goldcosmetics/internal/model"
	"goldcosmetics/internal/repository"
	"goldcosmetics/pkg/logger"
)

// Principal is the authenticated identity handed to the authorization layer:
// the account's credentials plus its single granted authority.
type Principal struct {
	UserID       uint
	Username     string
	PasswordHash string
	Role         model.Role
	Authority    string
}

// AuthService authenticates accounts and manages their sessions.
type AuthService interface {
	// LoadForLogin resolves a login identifier (username first, then email)
	// to a principal. Unknown identifiers and inactive accounts both fail
	// with ErrUserNotFound; callers cannot distinguish a deactivated account
	// from a missing one.
	LoadForLogin(ctx context.Context, identifier string) (*Principal, error)
	Login(ctx context.Context, identifier, password string) (token string, user *model.User, err error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	repo     repository.UserRepository
	jwt      *auth.JWTService
	sessions auth.SessionStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(repo repository.UserRepository, jwt *auth.JWTService, sessions auth.SessionStoreInterface) AuthService {
	return &authService{repo: repo, jwt: jwt, sessions: sessions}
}

func (s *authService) LoadForLogin(ctx context.Context, identifier string) (*Principal, error) {
	user, err := s.findByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		lg := logger.Get()
		lg.Warn().Str("username", user.Username).Msg("login attempt on deactivated account")
		return nil, apperrors.ErrUserNotFound
	}

	return &Principal{
		UserID:       user.ID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		Authority:    user.Role.Authority(),
	}, nil
}

// Login verifies the credentials and establishes a session. Each account
// holds at most one session: storing the new session id replaces any
// previous one, which invalidates the older login.
func (s *authService) Login(ctx context.Context, identifier, password string) (string, *model.User, error) {
	user, err := s.findByIdentifier(ctx, identifier)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, err
	}
	if !user.IsActive {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, apperrors.ErrUserNotFound
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, apperrors.ErrInvalidCredentials
	}

	sessionID := uuid.New().String()
	if err := s.sessions.Put(ctx, user.ID, sessionID, s.jwt.TTL()); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}

	token, err := s.jwt.GenerateSessionToken(user, sessionID)
	if err != nil {
		return "", nil, fmt.Errorf("generate session token: %w", err)
	}

	now := time.Now()
	if err := s.repo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		lg := logger.Get()
		lg.Error().Err(err).Str("username", user.Username).Msg("update last login")
	}
	user.LastLoginAt = &now

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	lg := logger.Get()
	lg.Info().
		Str("username", user.Username).
		Str("authority", user.Role.Authority()).
		Msg("login successful")

	return token, user, nil
}

// Logout tears down the session named by the token. An invalid token is not
// an error; there is simply nothing to tear down.
func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return nil
	}

	// Only the live session may end itself; a token from an already
	// replaced session must not kill the newer one.
	current, err := s.sessions.Current(ctx, claims.UserID)
	if err != nil || current != claims.ID {
		return nil
	}
	return s.sessions.Delete(ctx, claims.UserID)
}

func (s *authService) findByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	user, err := s.repo.FindByUsername(ctx, identifier)
	if err == nil {
		return user, nil
	}
	if err != apperrors.ErrUserNotFound {
		return nil, err
	}
	return s.repo.FindByEmail(ctx, identifier)
}
