package model

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// DefaultRoles is the fixed role set seeded at startup. RoleUser is the
// default role assigned to every newly registered account.
var DefaultRoles = []string{RoleAdmin, RoleUser}

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	ForceRelogin bool      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AuthClaims is the verified identity attached to a request context by the
// auth middleware. Roles are a snapshot taken at token mint time.
type AuthClaims struct {
	UserID   string   `json:"sub"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	Type     string   `json:"typ"`
	TokenID  string   `json:"jti"`
}

type AuthUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}
