package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"goldcosmetics/internal/auth"
	apperrors "goldcosmetics/internal/errors"
	"goldcosmetics/internal/model"
	"goldcosmetics/internal/service"
)

// stubAuthService implements service.AuthService via function fields.
type stubAuthService struct {
	service.AuthService
	loginFn  func(ctx context.Context, identifier, password string) (string, *model.User, error)
	logoutFn func(ctx context.Context, token string) error
}

func (s *stubAuthService) Login(ctx context.Context, identifier, password string) (string, *model.User, error) {
	return s.loginFn(ctx, identifier, password)
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	return s.logoutFn(ctx, token)
}

func authTestServer(svc service.AuthService) *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	h := NewAuthHandler(svc, time.Hour)
	e.GET("/login", h.ShowLoginForm)
	e.POST("/login", h.Login)
	e.POST("/logout", h.Logout)
	e.GET("/forgot-password", h.ForgotPassword)
	return e
}

func TestLogin_SuccessSetsCookieAndRedirects(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(_ context.Context, identifier, password string) (string, *model.User, error) {
			assert.Equal(t, "amina", identifier)
			assert.Equal(t, "secret1", password)
			return "signed-token", &model.User{ID: 1, Username: "amina", Role: model.RoleCustomer}, nil
		},
	}
	e := authTestServer(svc)

	rec := postForm(e, "/login", url.Values{"username": {"amina"}, "password": {"secret1"}})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get(echo.HeaderLocation))

	cookies := rec.Result().Cookies()
	var session *http.Cookie
	for _, ck := range cookies {
		if ck.Name == auth.SessionCookieName {
			session = ck
		}
	}
	if assert.NotNil(t, session) {
		assert.Equal(t, "signed-token", session.Value)
		assert.True(t, session.HttpOnly)
		assert.Equal(t, int(time.Hour.Seconds()), session.MaxAge)
	}
}

func TestLogin_BadCredentialsRedirectWithError(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *model.User, error) {
			return "", nil, apperrors.ErrInvalidCredentials
		},
	}
	e := authTestServer(svc)

	rec := postForm(e, "/login", url.Values{"username": {"amina"}, "password": {"wrong"}})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?error", rec.Header().Get(echo.HeaderLocation))
	assert.Empty(t, rec.Result().Cookies())
}

func TestLogin_MissingFieldsRedirectWithError(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *model.User, error) {
			t.Fatal("service must not be called on validation failure")
			return "", nil, nil
		},
	}
	e := authTestServer(svc)

	rec := postForm(e, "/login", url.Values{"username": {"amina"}})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?error", rec.Header().Get(echo.HeaderLocation))
}

func TestShowLoginForm_Indicators(t *testing.T) {
	tests := []struct {
		query    string
		expected string
	}{
		{"?success", "Registration successful! Please log in."},
		{"?logout", "You have been logged out."},
		{"?expired", "Your session has expired. Please log in again."},
		{"?error", "Invalid username or password."},
		{"", "Login - Gold Cosmetics"},
	}

	e := authTestServer(&stubAuthService{})
	for _, tt := range tests {
		t.Run("login"+tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/login"+tt.query, nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expected)
		})
	}
}

func TestLogout_ClearsCookieAndTearsDownSession(t *testing.T) {
	var loggedOut string
	svc := &stubAuthService{
		logoutFn: func(_ context.Context, token string) error {
			loggedOut = token
			return nil
		},
	}
	e := authTestServer(svc)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "signed-token"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?logout", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, "signed-token", loggedOut)

	cookies := rec.Result().Cookies()
	if assert.Len(t, cookies, 1) {
		assert.Empty(t, cookies[0].Value)
		assert.Negative(t, cookies[0].MaxAge)
	}
}

func TestLogout_WithoutCookieStillRedirects(t *testing.T) {
	svc := &stubAuthService{
		logoutFn: func(context.Context, string) error {
			t.Fatal("nothing to log out")
			return nil
		},
	}
	e := authTestServer(svc)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?logout", rec.Header().Get(echo.HeaderLocation))
}
