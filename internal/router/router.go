package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"gorm.io/gorm"

	"goldcosmetics/internal/auth"
	"goldcosmetics/internal/authz"
	"goldcosmetics/internal/cache"
	"goldcosmetics/internal/db"
	"goldcosmetics/internal/handler"
	"goldcosmetics/internal/middleware"
)

// Handlers bundles everything Register wires up.
type Handlers struct {
	Home      *handler.HomeHandler
	Auth      *handler.AuthHandler
	Register  *handler.RegisterHandler
	Dashboard *handler.DashboardHandler
	User      *handler.UserHandler
}

// Register wires routes and middleware. The policy decides which paths are
// public and which roles pass; both the session middleware and the
// authorizer consult the same table.
func Register(
	e *echo.Echo,
	gormDB *gorm.DB,
	cacheClient *cache.Client,
	policy *authz.Policy,
	jwtSvc *auth.JWTService,
	sessions auth.SessionStoreInterface,
	h Handlers,
) {
	e.HideBanner = true
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(middleware.Session(jwtSvc, sessions, policy))
	e.Use(middleware.Authorize(policy))

	e.Validator = handler.NewValidator()

	// Ops endpoints
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/healthz/ready", func(c echo.Context) error {
		if err := db.Ping(gormDB); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "database unavailable"})
		}
		if err := cacheClient.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "redis unavailable"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public pages
	e.GET("/", h.Home.Home)
	e.GET("/about", h.Home.About)
	e.GET("/register", h.Register.ShowForm)
	e.POST("/register", h.Register.Register)
	e.GET("/login", h.Auth.ShowLoginForm)
	e.POST("/login", h.Auth.Login)
	e.POST("/logout", h.Auth.Logout)
	e.GET("/forgot-password", h.Auth.ForgotPassword)
	e.POST("/forgot-password", h.Auth.ForgotPassword)

	// Any authenticated account
	e.GET("/dashboard", h.Dashboard.Dashboard)

	// Admin namespace
	admin := e.Group("/admin")
	admin.GET("/register-employee", h.Register.ShowEmployeeForm)
	admin.POST("/register-employee", h.Register.RegisterEmployee)
	admin.GET("/users", h.User.ListUsers)
	admin.GET("/employees", h.User.ListEmployees)
	admin.GET("/stats", h.User.Stats)
	admin.PUT("/users/:id", h.User.UpdateUser)
	admin.PUT("/users/:id/activate", h.User.Activate)
	admin.PUT("/users/:id/deactivate", h.User.Deactivate)
	admin.PUT("/users/:id/role", h.User.ChangeRole)
	admin.DELETE("/users/:id", h.User.DeleteUser)

	// Customer namespace (employees and admins pass too, per policy)
	customer := e.Group("/customer")
	customer.GET("/profile", h.User.Profile)
	customer.PUT("/profile", h.User.UpdateProfile)
	customer.POST("/change-password", h.User.ChangePassword)
}
