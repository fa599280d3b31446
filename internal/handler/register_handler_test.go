package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	apperrors "goldcosmetics/internal/errors"
	"goldcosmetics/internal/model"
	"goldcosmetics/internal/service"
)

// stubUserService implements service.UserService via function fields; the
// embedded interface panics on anything a test did not wire up.
type stubUserService struct {
	service.UserService
	registerCustomerFn func(ctx context.Context, username, email, password, fullName, phone, deliveryAddress string) (*model.User, error)
	registerEmployeeFn func(ctx context.Context, username, email, password, fullName, phone, shopLocation string) (*model.User, error)
	getUserFn          func(ctx context.Context, id uint) (*model.User, error)
	listEmployeesFn    func(ctx context.Context) ([]model.User, error)
	employeesByShopFn  func(ctx context.Context, shop string) ([]model.User, error)
	updateProfileFn    func(ctx context.Context, id uint, patch service.ProfilePatch) (*model.User, error)
	changePasswordFn   func(ctx context.Context, id uint, oldPlain, newPlain string) (bool, error)
	changeRoleFn       func(ctx context.Context, id uint, role model.Role) error
	deactivateFn       func(ctx context.Context, id uint) error
}

func (s *stubUserService) RegisterCustomer(ctx context.Context, username, email, password, fullName, phone, deliveryAddress string) (*model.User, error) {
	return s.registerCustomerFn(ctx, username, email, password, fullName, phone, deliveryAddress)
}

func (s *stubUserService) RegisterEmployee(ctx context.Context, username, email, password, fullName, phone, shopLocation string) (*model.User, error) {
	return s.registerEmployeeFn(ctx, username, email, password, fullName, phone, shopLocation)
}

func (s *stubUserService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	return s.getUserFn(ctx, id)
}

func (s *stubUserService) ListEmployees(ctx context.Context) ([]model.User, error) {
	return s.listEmployeesFn(ctx)
}

func (s *stubUserService) EmployeesByShop(ctx context.Context, shop string) ([]model.User, error) {
	return s.employeesByShopFn(ctx, shop)
}

func (s *stubUserService) UpdateProfile(ctx context.Context, id uint, patch service.ProfilePatch) (*model.User, error) {
	return s.updateProfileFn(ctx, id, patch)
}

func (s *stubUserService) ChangePassword(ctx context.Context, id uint, oldPlain, newPlain string) (bool, error) {
	return s.changePasswordFn(ctx, id, oldPlain, newPlain)
}

func (s *stubUserService) ChangeRole(ctx context.Context, id uint, role model.Role) error {
	return s.changeRoleFn(ctx, id, role)
}

func (s *stubUserService) Deactivate(ctx context.Context, id uint) error {
	return s.deactivateFn(ctx, id)
}

func registerTestServer(users service.UserService) *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	h := NewRegisterHandler(users)
	e.GET("/register", h.ShowForm)
	e.POST("/register", h.Register)
	e.GET("/admin/register-employee", h.ShowEmployeeForm)
	e.POST("/admin/register-employee", h.RegisterEmployee)
	return e
}

func postForm(e *echo.Echo, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func customerForm() url.Values {
	return url.Values{
		"username":  {"amina"},
		"email":     {"amina@x.com"},
		"password":  {"secret1"},
		"full_name": {"Amina K"},
		"phone":     {"0712 345 678"},
	}
}

func TestRegister_Success(t *testing.T) {
	users := &stubUserService{
		registerCustomerFn: func(_ context.Context, username, email, _, _, _, _ string) (*model.User, error) {
			return &model.User{ID: 1, Username: username, Email: email, Role: model.RoleCustomer}, nil
		},
	}
	e := registerTestServer(users)

	rec := postForm(e, "/register", customerForm())

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?success", rec.Header().Get(echo.HeaderLocation))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	users := &stubUserService{
		registerCustomerFn: func(context.Context, string, string, string, string, string, string) (*model.User, error) {
			return nil, apperrors.ErrDuplicateUsername
		},
	}
	e := registerTestServer(users)

	rec := postForm(e, "/register", customerForm())

	assert.Equal(t, http.StatusConflict, rec.Code)
	body := rec.Body.String()
	// The form comes back for redisplay, minus the password.
	assert.Contains(t, body, "username already taken")
	assert.Contains(t, body, "amina")
	assert.NotContains(t, body, "secret1")
}

func TestRegister_ValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(url.Values)
	}{
		{"username too short", func(f url.Values) { f.Set("username", "ab") }},
		{"bad email", func(f url.Values) { f.Set("email", "not-an-email") }},
		{"password too short", func(f url.Values) { f.Set("password", "12345") }},
		{"full name too short", func(f url.Values) { f.Set("full_name", "A") }},
		{"phone with letters", func(f url.Values) { f.Set("phone", "call me") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &stubUserService{
				registerCustomerFn: func(context.Context, string, string, string, string, string, string) (*model.User, error) {
					t.Fatal("service must not be called on validation failure")
					return nil, nil
				},
			}
			e := registerTestServer(users)

			form := customerForm()
			tt.mutate(form)
			rec := postForm(e, "/register", form)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRegister_ShowForm(t *testing.T) {
	e := registerTestServer(&stubUserService{})

	req := httptest.NewRequest(http.MethodGet, "/register", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Register - Gold Cosmetics")
}

func TestRegisterEmployee_Success(t *testing.T) {
	var gotShop string
	users := &stubUserService{
		registerEmployeeFn: func(_ context.Context, username, email, _, _, _, shop string) (*model.User, error) {
			gotShop = shop
			return &model.User{ID: 2, Username: username, Email: email, Role: model.RoleEmployee, ShopLocation: shop}, nil
		},
	}
	e := registerTestServer(users)

	form := url.Values{
		"username":      {"joy"},
		"email":         {"joy@x.com"},
		"password":      {"secret1"},
		"full_name":     {"Joy W"},
		"shop_location": {ShopKaragita},
	}
	rec := postForm(e, "/admin/register-employee", form)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/employees?success", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, "Karagita", gotShop)
}

func TestRegisterEmployee_MissingShop(t *testing.T) {
	users := &stubUserService{
		registerEmployeeFn: func(context.Context, string, string, string, string, string, string) (*model.User, error) {
			t.Fatal("service must not be called on validation failure")
			return nil, nil
		},
	}
	e := registerTestServer(users)

	form := url.Values{
		"username":  {"joy"},
		"email":     {"joy@x.com"},
		"password":  {"secret1"},
		"full_name": {"Joy W"},
	}
	rec := postForm(e, "/admin/register-employee", form)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterEmployee_ShowFormListsShops(t *testing.T) {
	e := registerTestServer(&stubUserService{})

	req := httptest.NewRequest(http.MethodGet, "/admin/register-employee", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ShopNaivashaTown)
	assert.Contains(t, rec.Body.String(), ShopKaragita)
}
