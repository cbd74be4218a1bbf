package main

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var _ TokenProvider = (*JWTTokenService)(nil) // ensure JWTTokenService implements TokenProvider.

// JWTTokenService issues and verifies HS256 signed tokens. It is fully
// stateless: no token is stored and none can be revoked before expiry.
type JWTTokenService struct {
	logger *zap.Logger
	config *Config
	clock  Clocker
	secret []byte
}

// NewJWTTokenService provides a token service bound to the configured
// signing secret and validity window.
func NewJWTTokenService(logger *zap.Logger, config *Config, clock Clocker) *JWTTokenService {
	return &JWTTokenService{
		logger: logger,
		config: config,
		clock:  clock,
		secret: []byte(config.Auth.Secret),
	}
}

// Issue produces a signed token embedding the username with an
// expiration set to the configured validity window from now.
func (ts *JWTTokenService) Issue(username string) (string, error) {
	now := ts.clock.Now()
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.config.Auth.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// Verify decodes and checks the signature and expiration of a token.
// It returns ErrExpiredToken for a well-signed but expired token and
// ErrInvalidToken for anything else that does not verify.
func (ts *JWTTokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.secret, nil
	}, jwt.WithTimeFunc(ts.clock.Now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
