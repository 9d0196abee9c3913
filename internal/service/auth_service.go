package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"shop-catalog-api/internal/model"
	"shop-catalog-api/internal/token"
	"shop-catalog-api/pkg/apierror"
)

const bcryptCost = 12

// UserStore is the persistence surface the auth flows need. Implemented by
// repository.UserRepository.
type UserStore interface {
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, u model.User) error
	Update(ctx context.Context, u model.User) error
	GetRoles(ctx context.Context, userID string) ([]string, error)
	AddRole(ctx context.Context, userID string, role string) error
}

// AuthService holds no mutable state of its own: principals, roles and the
// force_relogin flag live in the store, so any instance can serve any request.
type AuthService struct {
	users UserStore
	codec *token.Codec
}

func NewAuthService(users UserStore, codec *token.Codec) *AuthService {
	return &AuthService{users: users, codec: codec}
}

// Register creates a principal with the default role. Duplicate usernames are
// a client conflict, never a server error.
func (s *AuthService) Register(ctx context.Context, username string, email string, password string) (model.AuthUser, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if len(username) < 3 || len(username) > 50 {
		return model.AuthUser{}, apierror.New("BAD_REQUEST", "username must be 3-50 characters", "username", http.StatusBadRequest)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return model.AuthUser{}, apierror.New("BAD_REQUEST", "email is invalid", "email", http.StatusBadRequest)
	}
	if len(password) < 8 {
		return model.AuthUser{}, apierror.New("BAD_REQUEST", "password must be at least 8 characters", "password", http.StatusBadRequest)
	}

	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return model.AuthUser{}, err
	}
	if exists {
		return model.AuthUser{}, model.ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return model.AuthUser{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return model.AuthUser{}, err
	}
	if err := s.users.AddRole(ctx, user.ID, model.RoleUser); err != nil {
		return model.AuthUser{}, err
	}

	return model.AuthUser{ID: user.ID, Username: user.Username, Email: user.Email}, nil
}

// Login verifies credentials and mints a token pair. An unknown username and
// a wrong password produce the same error so clients cannot enumerate users.
// A successful login clears the force_relogin flag.
func (s *AuthService) Login(ctx context.Context, username string, password string) (model.TokenPair, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.TokenPair{}, model.ErrInvalidCredentials
		}
		return model.TokenPair{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.TokenPair{}, model.ErrInvalidCredentials
	}

	user.ForceRelogin = false
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return model.TokenPair{}, err
	}

	return s.issueTokenPair(ctx, user)
}

// Renew exchanges a valid refresh token for a fresh pair. The principal is
// re-resolved from the store: roles are re-derived (the refresh token carries
// none) and a set force_relogin flag rejects the token even though it is
// unexpired and correctly signed. All failures collapse to ErrInvalidToken.
func (s *AuthService) Renew(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	claims, err := s.codec.ParseRefreshToken(refreshToken)
	if err != nil {
		return model.TokenPair{}, model.ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.TokenPair{}, model.ErrInvalidToken
		}
		return model.TokenPair{}, err
	}

	if user.ForceRelogin {
		return model.TokenPair{}, model.ErrInvalidToken
	}

	return s.issueTokenPair(ctx, user)
}

// ValidateAccessToken is consumed by the auth middleware.
func (s *AuthService) ValidateAccessToken(tokenString string) (*model.AuthClaims, error) {
	return s.codec.ParseAccessToken(tokenString)
}

func (s *AuthService) GetUserByID(ctx context.Context, userID string) (model.AuthUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.AuthUser{}, err
	}
	return model.AuthUser{ID: user.ID, Username: user.Username, Email: user.Email}, nil
}

func (s *AuthService) issueTokenPair(ctx context.Context, user model.User) (model.TokenPair, error) {
	roles, err := s.users.GetRoles(ctx, user.ID)
	if err != nil {
		return model.TokenPair{}, err
	}

	accessToken, err := s.codec.IssueAccessToken(user.Username, user.ID, roles)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("issue access token: %w", err)
	}

	refreshToken, err := s.codec.IssueRefreshToken(user.ID)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("issue refresh token: %w", err)
	}

	return model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.codec.AccessTTL().Seconds()),
	}, nil
}
