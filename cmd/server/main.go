package main

import (
	"context"
	"net/http"

	_ "goldcosmetics/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"goldcosmetics/internal/auth"
	"goldcosmetics/internal/authz"
	"goldcosmetics/internal/cache"
	"goldcosmetics/internal/config"
	"goldcosmetics/internal/db"
	"goldcosmetics/internal/handler"
	"goldcosmetics/internal/model"
	"goldcosmetics/internal/repository"
	"goldcosmetics/internal/router"
	"goldcosmetics/internal/service"
	"goldcosmetics/pkg/logger"
)

// @title Gold Cosmetics API
// @version 1.0
// @description Storefront backend for Gold Cosmetics: account registration, authentication, and role-based access control.
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	cfg, err := config.Load(context.Background())
	if err != nil {
		lg := logger.Get()
		lg.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories and auth components
	userRepo := repository.NewUserRepository(gormDB)
	jwtService := auth.NewJWTService(cfg.SessionSecret, cfg.SessionTTL)
	sessionStore := auth.NewSessionStore(cacheClient)
	policy := authz.Default()

	// Services
	userService := service.NewUserService(userRepo, cacheClient)
	authService := service.NewAuthService(userRepo, jwtService, sessionStore)

	// Handlers
	handlers := router.Handlers{
		Home:      handler.NewHomeHandler(),
		Auth:      handler.NewAuthHandler(authService, cfg.SessionTTL),
		Register:  handler.NewRegisterHandler(userService),
		Dashboard: handler.NewDashboardHandler(),
		User:      handler.NewUserHandler(userService),
	}

	e := echo.New()
	router.Register(e, gormDB, cacheClient, policy, jwtService, sessionStore, handlers)

	addr := ":" + cfg.ServerPort
	log.Info().Msgf("Starting %s system", handler.StoreName)
	log.Info().Msgf("%s shop: online", handler.ShopNaivashaTown)
	log.Info().Msgf("%s shop: online", handler.ShopKaragita)
	log.Info().Msgf("Access the application at: http://localhost%s", addr)

	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server start")
	}
}
