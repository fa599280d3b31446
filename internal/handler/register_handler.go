package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "goldcosmetics/internal/errors"
	"goldcosmetics/internal/model"
	"goldcosmetics/internal/service"
)

// RegisterHandler handles customer self-registration and the admin employee
// registration flow.
type RegisterHandler struct {
	users service.UserService
}

// NewRegisterHandler creates a registration handler.
func NewRegisterHandler(users service.UserService) *RegisterHandler {
	return &RegisterHandler{users: users}
}

// RegisterRequest represents the customer registration form.
type RegisterRequest struct {
	Username        string `json:"username" form:"username" validate:"required,min=3,max=50"`
	Email           string `json:"email" form:"email" validate:"required,email"`
	Password        string `json:"password" form:"password" validate:"required,min=6"`
	FullName        string `json:"full_name" form:"full_name" validate:"required,min=2,max=100"`
	Phone           string `json:"phone" form:"phone" validate:"omitempty,phone"`
	DeliveryAddress string `json:"delivery_address" form:"delivery_address" validate:"max=255"`
}

// EmployeeRegisterRequest represents the admin-only employee registration
// form. The shop location is mandatory here.
type EmployeeRegisterRequest struct {
	Username     string `json:"username" form:"username" validate:"required,min=3,max=50"`
	Email        string `json:"email" form:"email" validate:"required,email"`
	Password     string `json:"password" form:"password" validate:"required,min=6"`
	FullName     string `json:"full_name" form:"full_name" validate:"required,min=2,max=100"`
	Phone        string `json:"phone" form:"phone" validate:"omitempty,phone"`
	ShopLocation string `json:"shop_location" form:"shop_location" validate:"required,max=50"`
}

// RegisterFormResponse is the registration form view model, redisplayed with
// an error message when submission fails.
type RegisterFormResponse struct {
	PageTitle string      `json:"page_title"`
	Role      model.Role  `json:"role"`
	Shops     []string    `json:"shops,omitempty"`
	Form      interface{} `json:"form"`
	Error     string      `json:"error,omitempty"`
}

// ShowForm godoc
// @Summary Registration form
// @Tags registration
// @Produce json
// @Success 200 {object} RegisterFormResponse
// @Router /register [get]
func (h *RegisterHandler) ShowForm(c echo.Context) error {
	return c.JSON(http.StatusOK, RegisterFormResponse{
		PageTitle: "Register - " + StoreName,
		Role:      model.RoleCustomer,
		Form:      RegisterRequest{},
	})
}

// Register godoc
// @Summary Register a customer account
// @Description Creates a CUSTOMER account and redirects to the login page
// @Description with a success indicator. Failures redisplay the form.
// @Tags registration
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param request body RegisterRequest true "Registration form"
// @Success 303 {string} string "redirect to /login?success"
// @Failure 400 {object} RegisterFormResponse
// @Failure 409 {object} RegisterFormResponse
// @Router /register [post]
func (h *RegisterHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, h.customerForm(req, err.Error()))
	}

	_, err := h.users.RegisterCustomer(c.Request().Context(),
		req.Username, req.Email, req.Password, req.FullName, req.Phone, req.DeliveryAddress)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateUsername) || errors.Is(err, apperrors.ErrDuplicateEmail) {
			return c.JSON(http.StatusConflict, h.customerForm(req, err.Error()))
		}
		return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
			Error: "failed to register user",
			Code:  "REGISTRATION_FAILED",
		})
	}

	return c.Redirect(http.StatusSeeOther, "/login?success")
}

// ShowEmployeeForm godoc
// @Summary Employee registration form
// @Tags registration
// @Produce json
// @Success 200 {object} RegisterFormResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/register-employee [get]
func (h *RegisterHandler) ShowEmployeeForm(c echo.Context) error {
	return c.JSON(http.StatusOK, RegisterFormResponse{
		PageTitle: "Register Employee - " + StoreName,
		Role:      model.RoleEmployee,
		Shops:     Shops,
		Form:      EmployeeRegisterRequest{},
	})
}

// RegisterEmployee godoc
// @Summary Register an employee account
// @Description Admin-only. Creates an EMPLOYEE account tied to a shop and
// @Description redirects to the employee listing with a success indicator.
// @Tags registration
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param request body EmployeeRegisterRequest true "Employee registration form"
// @Success 303 {string} string "redirect to /admin/employees?success"
// @Failure 400 {object} RegisterFormResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} RegisterFormResponse
// @Router /admin/register-employee [post]
func (h *RegisterHandler) RegisterEmployee(c echo.Context) error {
	var req EmployeeRegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, h.employeeForm(req, err.Error()))
	}

	_, err := h.users.RegisterEmployee(c.Request().Context(),
		req.Username, req.Email, req.Password, req.FullName, req.Phone, req.ShopLocation)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateUsername) || errors.Is(err, apperrors.ErrDuplicateEmail) {
			return c.JSON(http.StatusConflict, h.employeeForm(req, err.Error()))
		}
		return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
			Error: "failed to register employee",
			Code:  "REGISTRATION_FAILED",
		})
	}

	return c.Redirect(http.StatusSeeOther, "/admin/employees?success")
}

// customerForm redisplays the customer form without the submitted password.
func (h *RegisterHandler) customerForm(req RegisterRequest, errMsg string) RegisterFormResponse {
	req.Password = ""
	return RegisterFormResponse{
		PageTitle: "Register - " + StoreName,
		Role:      model.RoleCustomer,
		Form:      req,
		Error:     errMsg,
	}
}

func (h *RegisterHandler) employeeForm(req EmployeeRegisterRequest, errMsg string) RegisterFormResponse {
	req.Password = ""
	return RegisterFormResponse{
		PageTitle: "Register Employee - " + StoreName,
		Role:      model.RoleEmployee,
		Shops:     Shops,
		Form:      req,
		Error:     errMsg,
	}
}
