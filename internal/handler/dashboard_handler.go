package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"goldcosmetics/internal/middleware"
	"goldcosmetics/internal/model"
)

// DashboardHandler renders the role-aware dashboard view.
type DashboardHandler struct{}

// NewDashboardHandler creates the dashboard handler.
func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// DashboardResponse is the dashboard view model, derived purely from the
// caller's granted role.
type DashboardResponse struct {
	Username       string `json:"username"`
	Role           string `json:"role"`
	RoleIcon       string `json:"role_icon"`
	WelcomeMessage string `json:"welcome_message"`
}

// Dashboard godoc
// @Summary Role-aware dashboard
// @Tags pages
// @Produce json
// @Success 200 {object} DashboardResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /dashboard [get]
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	resp := DashboardResponse{Username: claims.Username}
	switch model.Role(claims.Role) {
	case model.RoleAdmin:
		resp.Role = "Admin"
		resp.RoleIcon = "👑"
		resp.WelcomeMessage = "Welcome to the Admin Dashboard!"
	case model.RoleEmployee:
		resp.Role = "Employee"
		resp.RoleIcon = "👔"
		resp.WelcomeMessage = "Welcome to the Employee Dashboard!"
	default:
		resp.Role = "Customer"
		resp.RoleIcon = "🛍️"
		resp.WelcomeMessage = "Welcome back! Start shopping!"
	}

	return c.JSON(http.StatusOK, resp)
}
