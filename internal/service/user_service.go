package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"goldcosmetics/internal/auth"
	"goldcosmetics/internal/cache"
	apperrors "goldcosmetics/internal/errors"
	"goldcosmetics/internal/metrics"
	"goldcosmetics/internal/model"
	"goldcosmetics/internal/repository"
	"goldcosmetics/pkg/logger"
)

const userCacheTTL = 5 * time.Minute

// ProfilePatch carries the mutable profile fields. Empty fields are left
// untouched.
type ProfilePatch struct {
	FullName        string
	Phone           string
	DeliveryAddress string
}

// UserStats aggregates account counts for the admin dashboard.
type UserStats struct {
	Total     int64 `json:"total"`
	Customers int64 `json:"customers"`
	Employees int64 `json:"employees"`
	Admins    int64 `json:"admins"`
}

// UserService exposes account registration and management operations.
type UserService interface {
	Register(ctx context.Context, user *model.User, plaintext string) (*model.User, error)
	RegisterCustomer(ctx context.Context, username, email, password, fullName, phone, deliveryAddress string) (*model.User, error)
	RegisterEmployee(ctx context.Context, username, email, password, fullName, phone, shopLocation string) (*model.User, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	ListCustomers(ctx context.Context) ([]model.User, error)
	ListEmployees(ctx context.Context) ([]model.User, error)
	EmployeesByShop(ctx context.Context, shop string) ([]model.User, error)
	UpdateProfile(ctx context.Context, id uint, patch ProfilePatch) (*model.User, error)
	ChangePassword(ctx context.Context, id uint, oldPlain, newPlain string) (bool, error)
	Activate(ctx context.Context, id uint) error
	Deactivate(ctx context.Context, id uint) error
	ChangeRole(ctx context.Context, id uint, role model.Role) error
	DeleteUser(ctx context.Context, id uint) error
	Stats(ctx context.Context) (*UserStats, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// Register validates uniqueness, hashes the password, applies defaults, and
// persists the account. The existence checks are advisory; the database
// unique constraints remain authoritative, so a concurrent duplicate still
// fails deterministically at Create.
func (s *userService) Register(ctx context.Context, user *model.User, plaintext string) (*model.User, error) {
	taken, err := s.repo.ExistsByUsername(ctx, user.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, apperrors.ErrDuplicateUsername
	}

	taken, err = s.repo.ExistsByEmail(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, apperrors.ErrDuplicateEmail
	}

	// The plaintext is not retained anywhere past this point.
	digest, err := auth.HashPassword(plaintext)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = digest

	if user.Role == "" {
		user.Role = model.RoleCustomer
	}
	if !user.Role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}
	user.IsActive = true

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues(string(user.Role)).Inc()
	lg := logger.Get()
	lg.Info().
		Str("username", user.Username).
		Uint("user_id", user.ID).
		Str("role", string(user.Role)).
		Msg("new user registered")

	return user, nil
}

// RegisterCustomer registers a self-service customer account.
func (s *userService) RegisterCustomer(ctx context.Context, username, email, password, fullName, phone, deliveryAddress string) (*model.User, error) {
	user := &model.User{
		Username:        username,
		Email:           email,
		FullName:        fullName,
		Phone:           phone,
		DeliveryAddress: deliveryAddress,
		Role:            model.RoleCustomer,
	}
	return s.Register(ctx, user, password)
}

// RegisterEmployee registers an employee account tied to a shop. Used by
// admins only.
func (s *userService) RegisterEmployee(ctx context.Context, username, email, password, fullName, phone, shopLocation string) (*model.User, error) {
	user := &model.User{
		Username:     username,
		Email:        email,
		FullName:     fullName,
		Phone:        phone,
		ShopLocation: shopLocation,
		Role:         model.RoleEmployee,
	}
	return s.Register(ctx, user, password)
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.repo.FindByUsername(ctx, username)
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

func (s *userService) ListCustomers(ctx context.Context) ([]model.User, error) {
	return s.repo.ListByRole(ctx, model.RoleCustomer)
}

func (s *userService) ListEmployees(ctx context.Context) ([]model.User, error) {
	return s.repo.ListByRole(ctx, model.RoleEmployee)
}

func (s *userService) EmployeesByShop(ctx context.Context, shop string) ([]model.User, error) {
	return s.repo.ListByRoleAndShop(ctx, model.RoleEmployee, shop)
}

// UpdateProfile overwrites only the non-empty patch fields.
func (s *userService) UpdateProfile(ctx context.Context, id uint, patch ProfilePatch) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.FullName != "" {
		user.FullName = patch.FullName
	}
	if patch.Phone != "" {
		user.Phone = patch.Phone
	}
	if patch.DeliveryAddress != "" {
		user.DeliveryAddress = patch.DeliveryAddress
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return user, nil
}

// ChangePassword verifies the old password before storing a hash of the new
// one. A mismatch returns false without mutating anything.
func (s *userService) ChangePassword(ctx context.Context, id uint, oldPlain, newPlain string) (bool, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return false, err
	}

	if !auth.CheckPassword(oldPlain, user.PasswordHash) {
		return false, nil
	}

	digest, err := auth.HashPassword(newPlain)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = digest

	if err := s.repo.Update(ctx, user); err != nil {
		return false, err
	}
	s.invalidate(ctx, id)

	lg := logger.Get()
	lg.Info().Str("username", user.Username).Msg("password changed")
	return true, nil
}

func (s *userService) Activate(ctx context.Context, id uint) error {
	return s.setActive(ctx, id, true)
}

func (s *userService) Deactivate(ctx context.Context, id uint) error {
	return s.setActive(ctx, id, false)
}

func (s *userService) setActive(ctx context.Context, id uint, active bool) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	user.IsActive = active
	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}
	s.invalidate(ctx, id)

	lg := logger.Get()
	lg.Info().Str("username", user.Username).Bool("active", active).Msg("account status changed")
	return nil
}

// ChangeRole moves the account to another role. Changing to the role the
// account already holds is a no-op beyond the UpdatedAt refresh.
func (s *userService) ChangeRole(ctx context.Context, id uint, role model.Role) error {
	if !role.Valid() {
		return apperrors.ErrInvalidRole
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	user.Role = role
	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}
	s.invalidate(ctx, id)

	lg := logger.Get()
	lg.Info().Str("username", user.Username).Str("role", string(role)).Msg("role changed")
	return nil
}

// DeleteUser removes the account row entirely. Deactivation is the separate,
// reversible operation.
func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *userService) Stats(ctx context.Context) (*UserStats, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := s.repo.CountByRole(ctx, model.RoleCustomer)
	if err != nil {
		return nil, err
	}
	employees, err := s.repo.CountByRole(ctx, model.RoleEmployee)
	if err != nil {
		return nil, err
	}
	admins, err := s.repo.CountByRole(ctx, model.RoleAdmin)
	if err != nil {
		return nil, err
	}
	return &UserStats{Total: total, Customers: customers, Employees: employees, Admins: admins}, nil
}

func (s *userService) invalidate(ctx context.Context, id uint) {
	_ = s.cache.Delete(ctx, s.cacheKey(id))
}
