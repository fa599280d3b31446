// Seed creates the bootstrap accounts: the administrator plus one demo
// employee per shop. There is no registration path that yields an ADMIN
// account, so the first admin has to come from here.
package main

import (
	"context"
	"errors"
	"os"

	"goldcosmetics/internal/auth"
	"goldcosmetics/internal/config"
	"goldcosmetics/internal/db"
	apperrors "goldcosmetics/internal/errors"
	"goldcosmetics/internal/handler"
	"goldcosmetics/internal/model"
	"goldcosmetics/internal/repository"
	"goldcosmetics/pkg/logger"
)

type seedAccount struct {
	username string
	email    string
	password string
	fullName string
	role     model.Role
	shop     string
}

func main() {
	log := logger.Get()
	log.Info().Msg("Starting seed script...")

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
		log.Warn().Msg("SEED_ADMIN_PASSWORD not set, using the default; change it before going live")
	}

	accounts := []seedAccount{
		{
			username: "admin",
			email:    "admin@goldcosmetics.co.ke",
			password: adminPassword,
			fullName: "Store Administrator",
			role:     model.RoleAdmin,
		},
		{
			username: "naivasha.demo",
			email:    "naivasha@goldcosmetics.co.ke",
			password: "employee1",
			fullName: "Naivasha Demo Employee",
			role:     model.RoleEmployee,
			shop:     handler.ShopNaivashaTown,
		},
		{
			username: "karagita.demo",
			email:    "karagita@goldcosmetics.co.ke",
			password: "employee1",
			fullName: "Karagita Demo Employee",
			role:     model.RoleEmployee,
			shop:     handler.ShopKaragita,
		},
	}

	repo := repository.NewUserRepository(gormDB)
	created, skipped := 0, 0
	for _, acc := range accounts {
		ok, err := seedOne(ctx, repo, acc)
		if err != nil {
			log.Fatal().Err(err).Str("username", acc.username).Msg("seed account")
		}
		if ok {
			created++
		} else {
			skipped++
		}
	}

	log.Info().Int("created", created).Int("skipped", skipped).Msg("Seed completed")
}

// seedOne inserts the account unless its username is already taken. Returns
// true when a row was created.
func seedOne(ctx context.Context, repo repository.UserRepository, acc seedAccount) (bool, error) {
	exists, err := repo.ExistsByUsername(ctx, acc.username)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	digest, err := auth.HashPassword(acc.password)
	if err != nil {
		return false, err
	}

	user := &model.User{
		Username:     acc.username,
		Email:        acc.email,
		PasswordHash: digest,
		FullName:     acc.fullName,
		Role:         acc.role,
		ShopLocation: acc.shop,
		IsActive:     true,
	}
	if err := repo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent seed run; treat as already present.
		if errors.Is(err, apperrors.ErrDuplicateUsername) || errors.Is(err, apperrors.ErrDuplicateEmail) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
