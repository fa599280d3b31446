package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"goldcosmetics/internal/auth"
	apperrors "goldcosmetics/internal/errors"
	"goldcosmetics/internal/model"
)

// MockSessionStore is a mock implementation of auth.SessionStoreInterface.
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Put(ctx context.Context, userID uint, sessionID string, ttl time.Duration) error {
	args := m.Called(ctx, userID, sessionID, ttl)
	return args.Error(0)
}

func (m *MockSessionStore) Current(ctx context.Context, userID uint) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockSessionStore) Delete(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func activeUser(password string) *model.User {
	hash, _ := auth.HashPassword(password)
	return &model.User{
		ID:           1,
		Username:     "amina",
		Email:        "amina@x.com",
		PasswordHash: hash,
		Role:         model.RoleCustomer,
		IsActive:     true,
	}
}

func TestAuthService_LoadForLogin(t *testing.T) {
	tests := []struct {
		name          string
		identifier    string
		setupMock     func(*MockUserRepository)
		expectedError error
		expectedAuth  string
	}{
		{
			name:       "found by username",
			identifier: "amina",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "amina").Return(activeUser("secret1"), nil)
			},
			expectedAuth: "ROLE_CUSTOMER",
		},
		{
			name:       "falls back to email",
			identifier: "amina@x.com",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "amina@x.com").Return(nil, apperrors.ErrUserNotFound)
				m.On("FindByEmail", mock.Anything, "amina@x.com").Return(activeUser("secret1"), nil)
			},
			expectedAuth: "ROLE_CUSTOMER",
		},
		{
			name:       "unknown identifier",
			identifier: "ghost",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "ghost").Return(nil, apperrors.ErrUserNotFound)
				m.On("FindByEmail", mock.Anything, "ghost").Return(nil, apperrors.ErrUserNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
		{
			name:       "deactivated account looks like a missing one",
			identifier: "amina",
			setupMock: func(m *MockUserRepository) {
				u := activeUser("secret1")
				u.IsActive = false
				m.On("FindByUsername", mock.Anything, "amina").Return(u, nil)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewAuthService(mockRepo, auth.NewJWTService("test-secret", time.Hour), new(MockSessionStore))
			principal, err := svc.LoadForLogin(context.Background(), tt.identifier)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, principal)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "amina", principal.Username)
				assert.Equal(t, tt.expectedAuth, principal.Authority)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)

	t.Run("success stores a session and signs a matching token", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockSessions := new(MockSessionStore)
		mockRepo.On("FindByUsername", mock.Anything, "amina").Return(activeUser("secret1"), nil)
		mockRepo.On("UpdateLastLogin", mock.Anything, uint(1), mock.AnythingOfType("time.Time")).Return(nil)

		var storedSession string
		mockSessions.On("Put", mock.Anything, uint(1), mock.AnythingOfType("string"), time.Hour).
			Run(func(args mock.Arguments) { storedSession = args.String(2) }).
			Return(nil)

		svc := NewAuthService(mockRepo, jwtSvc, mockSessions)
		token, user, err := svc.Login(context.Background(), "amina", "secret1")

		assert.NoError(t, err)
		assert.Equal(t, "amina", user.Username)
		assert.NotNil(t, user.LastLoginAt)

		claims, err := jwtSvc.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, uint(1), claims.UserID)
		assert.Equal(t, storedSession, claims.ID)

		mockRepo.AssertExpectations(t)
		mockSessions.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockSessions := new(MockSessionStore)
		mockRepo.On("FindByUsername", mock.Anything, "amina").Return(activeUser("secret1"), nil)

		svc := NewAuthService(mockRepo, jwtSvc, mockSessions)
		token, user, err := svc.Login(context.Background(), "amina", "nope")

		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
		assert.Empty(t, token)
		assert.Nil(t, user)
		mockSessions.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("deactivated account", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockSessions := new(MockSessionStore)
		u := activeUser("secret1")
		u.IsActive = false
		mockRepo.On("FindByUsername", mock.Anything, "amina").Return(u, nil)

		svc := NewAuthService(mockRepo, jwtSvc, mockSessions)
		_, _, err := svc.Login(context.Background(), "amina", "secret1")

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
		mockSessions.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("second login replaces the first session", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockSessions := new(MockSessionStore)
		mockRepo.On("FindByUsername", mock.Anything, "amina").Return(activeUser("secret1"), nil).Twice()
		mockRepo.On("UpdateLastLogin", mock.Anything, uint(1), mock.AnythingOfType("time.Time")).Return(nil).Twice()

		var sessions []string
		mockSessions.On("Put", mock.Anything, uint(1), mock.AnythingOfType("string"), time.Hour).
			Run(func(args mock.Arguments) { sessions = append(sessions, args.String(2)) }).
			Return(nil).Twice()

		svc := NewAuthService(mockRepo, jwtSvc, mockSessions)
		first, _, err := svc.Login(context.Background(), "amina", "secret1")
		assert.NoError(t, err)
		second, _, err := svc.Login(context.Background(), "amina", "secret1")
		assert.NoError(t, err)

		assert.Len(t, sessions, 2)
		assert.NotEqual(t, sessions[0], sessions[1])

		firstClaims, _ := jwtSvc.ValidateToken(first)
		secondClaims, _ := jwtSvc.ValidateToken(second)
		assert.Equal(t, sessions[0], firstClaims.ID)
		assert.Equal(t, sessions[1], secondClaims.ID)
	})
}

func TestAuthService_Logout(t *testing.T) {
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	user := activeUser("secret1")

	t.Run("live session is deleted", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockSessions := new(MockSessionStore)
		token, _ := jwtSvc.GenerateSessionToken(user, "session-a")
		mockSessions.On("Current", mock.Anything, uint(1)).Return("session-a", nil)
		mockSessions.On("Delete", mock.Anything, uint(1)).Return(nil)

		svc := NewAuthService(mockRepo, jwtSvc, mockSessions)
		assert.NoError(t, svc.Logout(context.Background(), token))
		mockSessions.AssertExpectations(t)
	})

	t.Run("stale token cannot end the newer session", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockSessions := new(MockSessionStore)
		token, _ := jwtSvc.GenerateSessionToken(user, "session-a")
		mockSessions.On("Current", mock.Anything, uint(1)).Return("session-b", nil)

		svc := NewAuthService(mockRepo, jwtSvc, mockSessions)
		assert.NoError(t, svc.Logout(context.Background(), token))
		mockSessions.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("garbage token is a no-op", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockSessions := new(MockSessionStore)

		svc := NewAuthService(mockRepo, jwtSvc, mockSessions)
		assert.NoError(t, svc.Logout(context.Background(), "not-a-token"))
		mockSessions.AssertNotCalled(t, "Current", mock.Anything, mock.Anything)
	})
}
