// Package jwtmw issues and verifies stateless session tokens and provides
// the gin middleware that resolves the acting user from them.
package jwtmw

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultExpiration is the lifetime of an issued token.
const DefaultExpiration = 2 * time.Hour

// maxSubject is the largest user id a JSON number carries without rounding.
const maxSubject = 1<<53 - 1

// ErrInvalidToken is returned for any token that is malformed, badly signed or expired.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the authenticated user carried by a token.
type Identity struct {
	ID    uint
	Email string
}

// Verifier resolves the identity a token carries.
type Verifier interface {
	// Verify checks the token signature and expiry and returns the identity it carries.
	Verify(tokenStr string) (*Identity, error)
}

// TokenService signs and verifies HS256 tokens with one shared secret.
// It is immutable after construction and safe for concurrent use.
type TokenService struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
	parser     *jwt.Parser
}

var _ Verifier = (*TokenService)(nil)

// NewTokenService creates a TokenService. A non-positive expiration falls back to DefaultExpiration.
func NewTokenService(secret string, expiration time.Duration) *TokenService {
	if expiration <= 0 {
		expiration = DefaultExpiration
	}
	return &TokenService{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
		),
	}
}

// Issue signs a token for id, valid for the configured expiration.
func (s *TokenService) Issue(id Identity) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   id.ID,
		"email": id.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.expiration).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// GenerateToken is Issue for callers that hold the user fields separately.
func (s *TokenService) GenerateToken(userID uint, email string) (string, error) {
	return s.Issue(Identity{ID: userID, Email: email})
}

// Verify parses tokenStr and extracts sub and email.
// Every failure wraps ErrInvalidToken.
func (s *TokenService) Verify(tokenStr string) (*Identity, error) {
	if tokenStr == "" {
		return nil, ErrInvalidToken
	}

	claims := jwt.MapClaims{}
	token, err := s.parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	// JWT numbers are decoded as float64
	sub, ok := claims["sub"].(float64)
	if !ok || sub < 1 || sub > maxSubject || sub != math.Trunc(sub) {
		return nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return nil, fmt.Errorf("%w: bad email", ErrInvalidToken)
	}

	return &Identity{ID: uint(sub), Email: email}, nil
}
