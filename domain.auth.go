package main

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// Claims is the payload embedded into each issued bearer token.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Credentials is the payload expected on the login endpoint. No password
// check happens against any stored credential: the login route only turns
// a username into a signed time-limited token.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenProvider defines the issuing and verification of bearer tokens.
type TokenProvider interface {
	Issue(username string) (string, error)
	Verify(token string) (*Claims, error)
}
