package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for tokens that fail signature or expiry checks
var ErrInvalidToken = errors.New("invalid token")

const tokenIssuer = "wewillshine"

// AdminClaims are the claims carried by an admin bearer token
type AdminClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// TokenSigner issues and verifies HS256 admin tokens
type TokenSigner struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewTokenSigner creates a signer. An empty key gets a random one, which means
// tokens do not survive a restart.
func NewTokenSigner(key string, ttl time.Duration) *TokenSigner {
	if key == "" {
		key = GenerateKey()
	}
	return &TokenSigner{key: []byte(key), ttl: ttl, now: time.Now}
}

// SetClock replaces the time source, for tests
func (s *TokenSigner) SetClock(now func() time.Time) {
	s.now = now
}

// Issue signs a token for the given admin
func (s *TokenSigner) Issue(adminID, email, name, role string) (string, time.Time, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.ttl)
	claims := AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   adminID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        GenerateSessionID(),
		},
		Email: email,
		Name:  name,
		Role:  role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse verifies a token and returns its claims
func (s *TokenSigner) Parse(token string) (*AdminClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	claims := &AdminClaims{}
	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.key, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
