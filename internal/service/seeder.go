package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"shop-catalog-api/internal/model"
)

// RoleStore is the seeding-time surface of the user store.
type RoleStore interface {
	RoleExists(ctx context.Context, name string) (bool, error)
	CreateRole(ctx context.Context, name string) error
}

// Seeder ensures the fixed role set and the bootstrap admin account exist.
// It is idempotent and runs on every startup before the server accepts
// requests.
type Seeder struct {
	users UserStore
	roles RoleStore

	adminUsername string
	adminEmail    string
	adminPassword string
}

func NewSeeder(users UserStore, roles RoleStore, adminUsername string, adminEmail string, adminPassword string) *Seeder {
	return &Seeder{
		users:         users,
		roles:         roles,
		adminUsername: adminUsername,
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
	}
}

func (s *Seeder) Seed(ctx context.Context) error {
	if err := s.ensureRoles(ctx); err != nil {
		return err
	}
	return s.ensureAdminUser(ctx)
}

func (s *Seeder) ensureRoles(ctx context.Context) error {
	for _, role := range model.DefaultRoles {
		exists, err := s.roles.RoleExists(ctx, role)
		if err != nil {
			return fmt.Errorf("check role %q: %w", role, err)
		}
		if exists {
			continue
		}
		if err := s.roles.CreateRole(ctx, role); err != nil {
			return fmt.Errorf("create role %q: %w", role, err)
		}
		slog.Info("seeded role", "role", role)
	}
	return nil
}

func (s *Seeder) ensureAdminUser(ctx context.Context) error {
	_, err := s.users.FindByUsername(ctx, s.adminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return fmt.Errorf("find admin user: %w", err)
	}

	if s.adminPassword == "" {
		slog.Warn("admin password not configured; skipping admin bootstrap", "username", s.adminUsername)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.adminPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now().UTC()
	admin := model.User{
		ID:           uuid.NewString(),
		Username:     s.adminUsername,
		Email:        s.adminEmail,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	for _, role := range model.DefaultRoles {
		if err := s.users.AddRole(ctx, admin.ID, role); err != nil {
			return fmt.Errorf("assign role %q to admin: %w", role, err)
		}
	}

	slog.Info("seeded admin user", "username", s.adminUsername)
	return nil
}
