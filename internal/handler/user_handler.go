package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "goldcosmetics/internal/errors"
	"goldcosmetics/internal/middleware"
	"goldcosmetics/internal/model"
	"goldcosmetics/internal/service"
)

// UserHandler exposes the admin account-management surface and the customer
// profile self-service endpoints.
type UserHandler struct {
	users service.UserService
}

// NewUserHandler creates a user management handler.
func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// UpdateProfileRequest carries a profile patch; empty fields stay untouched.
type UpdateProfileRequest struct {
	FullName        string `json:"full_name" form:"full_name" validate:"omitempty,min=2,max=100"`
	Phone           string `json:"phone" form:"phone" validate:"omitempty,phone"`
	DeliveryAddress string `json:"delivery_address" form:"delivery_address" validate:"max=255"`
}

// ChangeRoleRequest selects the account's new role.
type ChangeRoleRequest struct {
	Role string `json:"role" form:"role" validate:"required"`
}

// ChangePasswordRequest carries an old/new password pair.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" form:"old_password" validate:"required"`
	NewPassword string `json:"new_password" form:"new_password" validate:"required,min=6"`
}

// EmployeeListResponse is the employee listing view, with the registration
// success indicator the employee form redirects onto.
type EmployeeListResponse struct {
	Employees []model.User `json:"employees"`
	Shop      string       `json:"shop,omitempty"`
	Message   string       `json:"message,omitempty"`
}

// ListUsers godoc
// @Summary List all accounts
// @Tags admin
// @Produce json
// @Success 200 {array} model.User
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.users.ListUsers(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// ListEmployees godoc
// @Summary List employees
// @Tags admin
// @Produce json
// @Param shop query string false "Filter by shop location"
// @Success 200 {object} EmployeeListResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/employees [get]
func (h *UserHandler) ListEmployees(c echo.Context) error {
	ctx := c.Request().Context()

	shop := c.QueryParam("shop")
	var (
		employees []model.User
		err       error
	)
	if shop != "" {
		employees, err = h.users.EmployeesByShop(ctx, shop)
	} else {
		employees, err = h.users.ListEmployees(ctx)
	}
	if err != nil {
		return httpError(err)
	}

	resp := EmployeeListResponse{Employees: employees, Shop: shop}
	if c.QueryParams().Has("success") {
		resp.Message = "Employee registered successfully."
	}
	return c.JSON(http.StatusOK, resp)
}

// Stats godoc
// @Summary Account counts by role
// @Tags admin
// @Produce json
// @Success 200 {object} service.UserStats
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/stats [get]
func (h *UserHandler) Stats(c echo.Context) error {
	stats, err := h.users.Stats(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

// UpdateUser godoc
// @Summary Update an account's profile
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body UpdateProfileRequest true "Profile patch"
// @Success 200 {object} model.User
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), id, service.ProfilePatch{
		FullName:        req.FullName,
		Phone:           req.Phone,
		DeliveryAddress: req.DeliveryAddress,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// Activate godoc
// @Summary Activate an account
// @Tags admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id}/activate [put]
func (h *UserHandler) Activate(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return err
	}
	if err := h.users.Activate(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "user activated"})
}

// Deactivate godoc
// @Summary Deactivate an account
// @Description A deactivated account is rejected at authentication time but
// @Description keeps its row; delete is the separate, irreversible operation.
// @Tags admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id}/deactivate [put]
func (h *UserHandler) Deactivate(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return err
	}
	if err := h.users.Deactivate(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "user deactivated"})
}

// ChangeRole godoc
// @Summary Change an account's role
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body ChangeRoleRequest true "New role"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id}/role [put]
func (h *UserHandler) ChangeRole(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return err
	}

	var req ChangeRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := model.ParseRole(req.Role)
	if err != nil {
		return httpError(apperrors.ErrInvalidRole)
	}

	if err := h.users.ChangeRole(c.Request().Context(), id, role); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "role changed"})
}

// DeleteUser godoc
// @Summary Delete an account
// @Tags admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return err
	}
	if err := h.users.DeleteUser(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "user deleted"})
}

// Profile godoc
// @Summary Current account's profile
// @Tags customer
// @Produce json
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /customer/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
	}

	user, err := h.users.GetUser(c.Request().Context(), claims.UserID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary Update the current account's profile
// @Tags customer
// @Accept json
// @Produce json
// @Param request body UpdateProfileRequest true "Profile patch"
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /customer/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), claims.UserID, service.ProfilePatch{
		FullName:        req.FullName,
		Phone:           req.Phone,
		DeliveryAddress: req.DeliveryAddress,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// ChangePassword godoc
// @Summary Change the current account's password
// @Description A wrong old password is not an error condition; the response
// @Description simply reports the mismatch and nothing is changed.
// @Tags customer
// @Accept json
// @Produce json
// @Param request body ChangePasswordRequest true "Old and new passwords"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /customer/change-password [post]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ok, err := h.users.ChangePassword(c.Request().Context(), claims.UserID, req.OldPassword, req.NewPassword)
	if err != nil {
		return httpError(err)
	}
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "old password is incorrect",
			Code:  "PASSWORD_MISMATCH",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "password changed"})
}

func userID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

// httpError maps domain errors onto the standard error envelope.
func httpError(err error) *echo.HTTPError {
	he := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
}
