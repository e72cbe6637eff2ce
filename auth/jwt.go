package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/prepwise/backend/config"
)

// Token kinds. An assertion is a short-lived proof of authentication minted at
// sign-in and consumed once by session establishment; a session token lives in
// the session cookie.
const (
	TokenKindAssertion = "assertion"
	TokenKindSession   = "session"
)

// TokenService mints and validates the two JWT kinds
type TokenService struct {
	secretKey       []byte
	sessionExpiry   time.Duration
	assertionExpiry time.Duration
}

// Claims represents JWT claims
type Claims struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Kind  string `json:"kind"`
	jwt.RegisteredClaims
}

// NewTokenService creates a new token service
func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{
		secretKey:       []byte(cfg.JWTSecret),
		sessionExpiry:   time.Duration(cfg.SessionExpiryHours) * time.Hour,
		assertionExpiry: time.Duration(cfg.AssertionExpirySeconds) * time.Second,
	}
}

// SessionExpiry returns the configured session lifetime
func (s *TokenService) SessionExpiry() time.Duration {
	return s.sessionExpiry
}

// IssueAssertion mints a short-lived bearer assertion for a freshly
// authenticated user
func (s *TokenService) IssueAssertion(uid, email string) (string, error) {
	return s.issue(uid, email, TokenKindAssertion, s.assertionExpiry)
}

// IssueSessionToken mints a session token for the session cookie
func (s *TokenService) IssueSessionToken(uid, email string) (string, error) {
	return s.issue(uid, email, TokenKindSession, s.sessionExpiry)
}

func (s *TokenService) issue(uid, email, kind string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UID:   uid,
		Email: email,
		Kind:  kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "prepwise",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// Validate validates a token string and checks it is of the expected kind
func (s *TokenService) Validate(tokenString, kind string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secretKey, nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.Kind != kind {
		return nil, errors.New("unexpected token kind")
	}

	return claims, nil
}
