package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const minSecretLen = 32

const bearerPrefix = "Bearer "

var ErrInvalidToken = errors.New("expired or invalid token")

// TokenProvider issues and verifies stateless HS256 bearer tokens with
// the user's email as subject. There is no revocation or refresh.
type TokenProvider struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewTokenProvider(secret string, expiry time.Duration) (*TokenProvider, error) {
	if len(secret) < minSecretLen {
		return nil, errors.New("token secret must be at least 32 bytes")
	}
	return &TokenProvider{secret: []byte(secret), expiry: expiry, now: time.Now}, nil
}

func (p *TokenProvider) CreateToken(email string) (string, error) {
	now := p.now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(p.expiry)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}

// Validate checks signature and expiry. Any parse failure collapses into
// ErrInvalidToken; callers treat them all as unauthorized.
func (p *TokenProvider) Validate(tokenString string) error {
	token, err := jwt.Parse(tokenString, p.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(p.now))
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	return nil
}

// Email returns the subject claim. The signature is still verified but
// expiry is not, so an expired token yields its email.
func (p *TokenProvider) Email(tokenString string) (string, error) {
	parser := jwt.NewParser(
		jwt.WithoutClaimsValidation(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	var claims jwt.RegisteredClaims
	if _, err := parser.ParseWithClaims(tokenString, &claims, p.keyFunc); err != nil {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// ResolveToken extracts the bearer token from the Authorization header.
// Only the exact "Bearer <token>" scheme is accepted.
func ResolveToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	return strings.TrimPrefix(header, bearerPrefix), true
}

func (p *TokenProvider) keyFunc(*jwt.Token) (interface{}, error) {
	return p.secret, nil
}
