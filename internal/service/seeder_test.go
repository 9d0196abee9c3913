package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"shop-catalog-api/internal/model"
)

func TestSeederBootstrapsRolesAndAdmin(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	seeder := NewSeeder(store, store, "admin", "admin@example.com", "ChangeMe123!")
	ctx := context.Background()

	require.NoError(t, seeder.Seed(ctx))

	for _, role := range model.DefaultRoles {
		exists, err := store.RoleExists(ctx, role)
		require.NoError(t, err)
		require.True(t, exists, "role %q", role)
	}

	admin, err := store.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	require.Equal(t, "admin@example.com", admin.Email)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("ChangeMe123!")))

	roles, err := store.GetRoles(ctx, admin.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, model.DefaultRoles, roles)
}

func TestSeederIsIdempotent(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	seeder := NewSeeder(store, store, "admin", "admin@example.com", "ChangeMe123!")
	ctx := context.Background()

	require.NoError(t, seeder.Seed(ctx))
	require.NoError(t, seeder.Seed(ctx))

	require.Len(t, store.users, 1)

	admin, err := store.FindByUsername(ctx, "admin")
	require.NoError(t, err)

	roles, err := store.GetRoles(ctx, admin.ID)
	require.NoError(t, err)
	require.Len(t, roles, len(model.DefaultRoles))
}

func TestSeederSkipsAdminWithoutPassword(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	seeder := NewSeeder(store, store, "admin", "admin@example.com", "")
	ctx := context.Background()

	require.NoError(t, seeder.Seed(ctx))

	// Roles are still seeded so registration works.
	exists, err := store.RoleExists(ctx, model.RoleUser)
	require.NoError(t, err)
	require.True(t, exists)

	require.Empty(t, store.users)
}
