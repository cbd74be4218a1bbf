package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestTokenService(secret string, clock Clocker) *JWTTokenService {
	config := &Config{
		Auth: AuthConfig{
			Secret:   secret,
			TokenTTL: time.Hour,
		},
	}
	return NewJWTTokenService(zap.NewNop(), config, clock)
}

// TestJWTTokenService_IssueAndVerify ensures a freshly issued token
// verifies and carries back the username inside its claims.
func TestJWTTokenService_IssueAndVerify(t *testing.T) {
	ts := newTestTokenService("test-secret", NewMockClocker())

	token, err := ts.Issue("john")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ts.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "john", claims.Username)
	assert.Equal(t, NewMockClocker().Now().Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
}

// TestJWTTokenService_ExpiredToken ensures a well-signed token is
// rejected with the expiration error once its validity window passed.
func TestJWTTokenService_ExpiredToken(t *testing.T) {
	clock := NewMockClocker()
	ts := newTestTokenService("test-secret", clock)

	token, err := ts.Issue("john")
	require.NoError(t, err)

	// Move the clock beyond the one hour validity window.
	clock.MockNow = clock.MockNow.Add(2 * time.Hour)

	claims, err := ts.Verify(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

// TestJWTTokenService_WrongSecret ensures a token signed with another
// secret does not verify.
func TestJWTTokenService_WrongSecret(t *testing.T) {
	issuer := newTestTokenService("issuer-secret", NewMockClocker())
	verifier := newTestTokenService("verifier-secret", NewMockClocker())

	token, err := issuer.Issue("john")
	require.NoError(t, err)

	claims, err := verifier.Verify(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// TestJWTTokenService_GarbageToken ensures random strings are rejected.
func TestJWTTokenService_GarbageToken(t *testing.T) {
	ts := newTestTokenService("test-secret", NewMockClocker())

	testCases := []string{
		"",
		"garbage",
		"aaa.bbb.ccc",
	}
	for _, token := range testCases {
		claims, err := ts.Verify(token)
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
