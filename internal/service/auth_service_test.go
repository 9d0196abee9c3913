package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"shop-catalog-api/internal/model"
	"shop-catalog-api/internal/token"
	"shop-catalog-api/pkg/apierror"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserStore) {
	t.Helper()

	codec, err := token.NewCodec("test-secret", "catalog-test", "catalog-clients", 15*time.Minute, 24*time.Hour)
	require.NoError(t, err)

	store := newFakeUserStore()
	return NewAuthService(store, codec), store
}

func TestRegisterThenLogin(t *testing.T) {
	t.Parallel()

	svc, store := newAuthFixture(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "alice@example.com", "Secret123!")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "alice", user.Username)
	require.Equal(t, "alice@example.com", user.Email)

	roles, err := store.GetRoles(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, []string{model.RoleUser}, roles)

	pair, err := svc.Login(ctx, "alice", "Secret123!")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.Equal(t, "Bearer", pair.TokenType)
	require.Equal(t, int64((15 * time.Minute).Seconds()), pair.ExpiresIn)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, "alice", claims.Username)
	require.Contains(t, claims.Roles, model.RoleUser)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	t.Parallel()

	svc, store := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@example.com", "Secret123!")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other@example.com", "Different1!")
	require.ErrorIs(t, err, model.ErrUserAlreadyExists)
	require.Len(t, store.users, 1)
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{name: "username too short", username: "ab", email: "a@x.com", password: "Secret123!"},
		{name: "invalid email", username: "alice", email: "not-an-email", password: "Secret123!"},
		{name: "password too short", username: "alice", email: "a@x.com", password: "short"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.username, tc.email, tc.password)
			require.Error(t, err)

			var apiErr *apierror.APIError
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, "BAD_REQUEST", apiErr.Code)
		})
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@example.com", "Secret123!")
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, "alice", "not-the-password")
	_, unknownUser := svc.Login(ctx, "nobody", "whatever-pass")

	require.ErrorIs(t, wrongPassword, model.ErrInvalidCredentials)
	require.ErrorIs(t, unknownUser, model.ErrInvalidCredentials)
	require.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestLoginClearsForceRelogin(t *testing.T) {
	t.Parallel()

	svc, store := newAuthFixture(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice", "alice@example.com", "Secret123!")
	require.NoError(t, err)

	flagged := store.users[registered.ID]
	flagged.ForceRelogin = true
	store.users[registered.ID] = flagged

	_, err = svc.Login(ctx, "alice", "Secret123!")
	require.NoError(t, err)
	require.False(t, store.users[registered.ID].ForceRelogin)
}

func TestRenew(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@example.com", "Secret123!")
	require.NoError(t, err)

	pair, err := svc.Login(ctx, "alice", "Secret123!")
	require.NoError(t, err)

	renewed, err := svc.Renew(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, renewed.AccessToken)
	require.NotEmpty(t, renewed.RefreshToken)

	claims, err := svc.ValidateAccessToken(renewed.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Username)
	require.Contains(t, claims.Roles, model.RoleUser)
}

func TestRenewRejectsAccessToken(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@example.com", "Secret123!")
	require.NoError(t, err)

	pair, err := svc.Login(ctx, "alice", "Secret123!")
	require.NoError(t, err)

	_, err = svc.Renew(ctx, pair.AccessToken)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestRenewRejectsForcedRelogin(t *testing.T) {
	t.Parallel()

	svc, store := newAuthFixture(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice", "alice@example.com", "Secret123!")
	require.NoError(t, err)

	pair, err := svc.Login(ctx, "alice", "Secret123!")
	require.NoError(t, err)

	// Administrative revocation: the token itself stays valid and unexpired.
	flagged := store.users[registered.ID]
	flagged.ForceRelogin = true
	store.users[registered.ID] = flagged

	_, err = svc.Renew(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, model.ErrInvalidToken)

	// Renew is a one-way gate: a failed renew must not flip the flag back.
	require.True(t, store.users[registered.ID].ForceRelogin)

	// Only a fresh password login clears it again.
	_, err = svc.Login(ctx, "alice", "Secret123!")
	require.NoError(t, err)

	_, err = svc.Renew(ctx, pair.RefreshToken)
	require.NoError(t, err)
}

func TestRenewRejectsDeletedPrincipal(t *testing.T) {
	t.Parallel()

	svc, store := newAuthFixture(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice", "alice@example.com", "Secret123!")
	require.NoError(t, err)

	pair, err := svc.Login(ctx, "alice", "Secret123!")
	require.NoError(t, err)

	delete(store.users, registered.ID)

	_, err = svc.Renew(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestRenewPicksUpRoleChanges(t *testing.T) {
	t.Parallel()

	svc, store := newAuthFixture(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice", "alice@example.com", "Secret123!")
	require.NoError(t, err)

	pair, err := svc.Login(ctx, "alice", "Secret123!")
	require.NoError(t, err)

	loginClaims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	require.NotContains(t, loginClaims.Roles, model.RoleAdmin)

	// Role drift after the refresh token was issued: the refresh token
	// carries no roles, so renewal re-derives them from the store.
	require.NoError(t, store.AddRole(ctx, registered.ID, model.RoleAdmin))

	renewed, err := svc.Renew(ctx, pair.RefreshToken)
	require.NoError(t, err)

	renewedClaims, err := svc.ValidateAccessToken(renewed.AccessToken)
	require.NoError(t, err)
	require.Contains(t, renewedClaims.Roles, model.RoleAdmin)
	require.Contains(t, renewedClaims.Roles, model.RoleUser)
}
