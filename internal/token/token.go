package token

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"shop-catalog-api/internal/model"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

type accessClaims struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	Type     string   `json:"typ"`
	jwt.RegisteredClaims
}

type refreshClaims struct {
	Type string `json:"typ"`
	jwt.RegisteredClaims
}

// Codec mints and verifies the service's HS256 tokens. It holds immutable
// signing configuration and performs no I/O.
type Codec struct {
	secret     []byte
	issuer     string
	audience   string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

type Option func(*Codec)

// WithClock overrides the issuance time source. Only intended for tests.
func WithClock(fn func() time.Time) Option {
	return func(c *Codec) {
		if fn != nil {
			c.now = fn
		}
	}
}

func NewCodec(secret string, issuer string, audience string, accessTTL time.Duration, refreshTTL time.Duration, opts ...Option) (*Codec, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("token: signing secret is required")
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, errors.New("token: lifetimes must be positive")
	}

	codec := &Codec{
		secret:     []byte(secret),
		issuer:     issuer,
		audience:   audience,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(codec)
	}

	return codec, nil
}

func (c *Codec) AccessTTL() time.Duration {
	return c.accessTTL
}

// IssueAccessToken signs a short-lived token carrying the subject, username
// and a snapshot of the roles held at mint time.
func (c *Codec) IssueAccessToken(username string, subjectID string, roles []string) (string, error) {
	now := c.now().UTC()
	claims := accessClaims{
		Username: username,
		Roles:    roles,
		Type:     TypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Audience:  jwt.ClaimStrings{c.audience},
			Subject:   subjectID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.accessTTL)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// IssueRefreshToken signs a longer-lived token carrying only the subject.
// Roles are absent; every renewal re-derives them from storage.
func (c *Codec) IssueRefreshToken(subjectID string) (string, error) {
	now := c.now().UTC()
	claims := refreshClaims{
		Type: TypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Audience:  jwt.ClaimStrings{c.audience},
			Subject:   subjectID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.refreshTTL)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// ParseAccessToken verifies signature, expiry, issuer, audience and token
// type. Every violation collapses to model.ErrInvalidToken so callers cannot
// leak which check failed.
func (c *Codec) ParseAccessToken(tokenString string) (*model.AuthClaims, error) {
	parsed := &accessClaims{}
	if err := c.parse(tokenString, parsed); err != nil {
		return nil, model.ErrInvalidToken
	}
	if parsed.Type != TypeAccess || strings.TrimSpace(parsed.Subject) == "" {
		return nil, model.ErrInvalidToken
	}

	return &model.AuthClaims{
		UserID:   parsed.Subject,
		Username: parsed.Username,
		Roles:    parsed.Roles,
		Type:     parsed.Type,
		TokenID:  parsed.ID,
	}, nil
}

// ParseRefreshToken verifies a refresh token. Access tokens are rejected even
// though they are signed with the same secret.
func (c *Codec) ParseRefreshToken(tokenString string) (*model.AuthClaims, error) {
	parsed := &refreshClaims{}
	if err := c.parse(tokenString, parsed); err != nil {
		return nil, model.ErrInvalidToken
	}
	if parsed.Type != TypeRefresh || strings.TrimSpace(parsed.Subject) == "" {
		return nil, model.ErrInvalidToken
	}

	return &model.AuthClaims{
		UserID:  parsed.Subject,
		Type:    parsed.Type,
		TokenID: parsed.ID,
	}, nil
}

func (c *Codec) parse(tokenString string, claims jwt.Claims) error {
	if strings.TrimSpace(tokenString) == "" {
		return model.ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, model.ErrInvalidToken
		}
		return c.secret, nil
	},
		jwt.WithIssuer(c.issuer),
		jwt.WithAudience(c.audience),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil || !parsed.Valid {
		return model.ErrInvalidToken
	}

	return nil
}
