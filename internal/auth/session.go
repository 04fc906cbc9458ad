package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the name of the HTTP-only session cookie.
const CookieName = "edudash_session"

// DevFallbackSecret signs tokens when no secret is configured. Development
// convenience only; the server logs a warning when it is in use.
const DevFallbackSecret = "dev-secret-change-me"

// RoleAdmin is the single role this system knows about.
const RoleAdmin = "admin"

// Claims are the payload of a session token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Sessions signs and verifies stateless session tokens. There is no
// server-side session store and no revocation list; a token is valid until
// it expires.
type Sessions struct {
	secret   []byte
	lifetime time.Duration
}

// NewSessions creates a session service with the given signing secret and
// token lifetime.
func NewSessions(secret string, lifetime time.Duration) *Sessions {
	if secret == "" {
		secret = DevFallbackSecret
	}
	if lifetime <= 0 {
		lifetime = 12 * time.Hour
	}
	return &Sessions{secret: []byte(secret), lifetime: lifetime}
}

// Lifetime returns the configured token lifetime.
func (s *Sessions) Lifetime() time.Duration {
	return s.lifetime
}

// Sign issues a token for the given username with the admin role.
func (s *Sessions) Sign(username string) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Verify checks a token's signature and expiry. Every failure mode (missing,
// tampered, expired, wrong algorithm) collapses to ok=false; callers must
// not distinguish between them.
func (s *Sessions) Verify(tokenString string) (*Claims, bool) {
	if tokenString == "" {
		return nil, false
	}
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}
	return &claims, true
}
