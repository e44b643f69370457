package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTTokenService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTTokenService("test-secret", time.Hour, "card-casino")

	tokenString, expiresAt, err := svc.Generate("alice")
	require.NoError(t, err)
	assert.NotEmpty(t, tokenString)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.Validate(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
}

func TestJWTTokenService_Validate_WrongSecret(t *testing.T) {
	issuing := NewJWTTokenService("secret-a", time.Hour, "card-casino")
	validating := NewJWTTokenService("secret-b", time.Hour, "card-casino")

	tokenString, _, err := issuing.Generate("alice")
	require.NoError(t, err)

	_, err = validating.Validate(tokenString)
	assert.Error(t, err)
}

func TestJWTTokenService_Validate_Expired(t *testing.T) {
	svc := NewJWTTokenService("test-secret", -time.Minute, "card-casino")

	tokenString, _, err := svc.Generate("alice")
	require.NoError(t, err)

	_, err = svc.Validate(tokenString)
	assert.Error(t, err)
}

func TestJWTTokenService_Validate_WrongAlgorithm(t *testing.T) {
	svc := NewJWTTokenService("test-secret", time.Hour, "card-casino")

	// alg=none must be rejected even with a well-formed payload.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Validate(tokenString)
	assert.Error(t, err)
}

func TestJWTTokenService_Validate_MissingSubject(t *testing.T) {
	svc := NewJWTTokenService("test-secret", time.Hour, "card-casino")

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	tokenString, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Validate(tokenString)
	assert.Error(t, err)
}

func TestJWTTokenService_Validate_Garbage(t *testing.T) {
	svc := NewJWTTokenService("test-secret", time.Hour, "card-casino")

	_, err := svc.Validate("not.a.token")
	assert.Error(t, err)
}
