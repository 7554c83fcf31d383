// Package auth provides JWT issuing/verification and the middleware that
// guards protected routes.
//
// Login issues an HS256-signed token carrying the user's id ("sub") and
// role. The token is stateless: every protected request is verified by
// signature and expiry alone, with no store lookup. Role-gated routes then
// check the decoded role claim.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "school-portal"

// DefaultTokenTTL is the token lifetime used when no TTL is configured:
// seven days, after which the client must log in again.
const DefaultTokenTTL = 7 * 24 * time.Hour

// Claim is the verified identity attached to a request: the decoded
// {id, role} payload of a bearer token.
type Claim struct {
	UserID string
	Role   string
}

// TokenService signs and verifies bearer tokens with an HMAC secret.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService. The secret must be at least
// 16 characters; ttl <= 0 falls back to DefaultTokenTTL.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// claims is the JWT payload: the standard registered claims (sub carries
// the user ID) plus the portal role.
type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Generate creates and signs a token embedding the user's id and role,
// expiring after the configured TTL.
func (s *TokenService) Generate(userID, role string) (string, error) {
	return s.GenerateWithDuration(userID, role, s.ttl)
}

// GenerateWithDuration creates a token with a custom lifetime. A negative
// duration produces an already-expired token, which the tests use.
func (s *TokenService) GenerateWithDuration(userID, role string, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a token string and returns its claim.
// The algorithm is pinned to HS256 and the issuer and expiry are checked;
// a token signed with a different secret or older than its TTL fails here
// and is never partially honored.
func (s *TokenService) Validate(tokenStr string) (*Claim, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("auth: token expired")
		}
		return nil, fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("auth: invalid token claims")
	}
	if c.Subject == "" {
		return nil, fmt.Errorf("auth: token has no subject")
	}

	return &Claim{UserID: c.Subject, Role: c.Role}, nil
}
