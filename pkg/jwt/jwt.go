package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenMissing means the request carried no bearer token at all.
	ErrTokenMissing = errors.New("token is missing")
	// ErrTokenInvalid covers every decode failure: malformed header, bad signature, expiry.
	ErrTokenInvalid = errors.New("token is invalid")
)

// Claims represents the access token payload. Subject holds the identity.
type Claims struct {
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// Identity returns the verified subject of the token.
func (c *Claims) Identity() string {
	if c.Subject != "" {
		return c.Subject
	}
	return c.Username
}

// Manager issues and validates HS256 access tokens against one shared secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a JWT manager whose tokens live for ttl.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// GenerateAccessToken signs a token for identity expiring ttl from now.
func (m *Manager) GenerateAccessToken(identity string) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies signature and expiration and returns the claims.
// Any failure is reported as ErrTokenInvalid.
func (m *Manager) ValidateToken(tokenString string) (claims *Claims, err error) {
	if tokenString == "" {
		return nil, ErrTokenMissing
	}

	defer func() {
		if r := recover(); r != nil {
			claims, err = nil, ErrTokenInvalid
		}
	}()

	parsed := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, parsed, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}

	if parsed.Identity() == "" {
		return nil, ErrTokenInvalid
	}

	return parsed, nil
}

// BearerToken extracts the token from an Authorization header value of the form "Bearer <token>".
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrTokenMissing
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", ErrTokenInvalid
	}
	if parts[1] == "" {
		return "", ErrTokenMissing
	}
	return parts[1], nil
}
