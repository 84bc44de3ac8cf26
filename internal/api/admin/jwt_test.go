package admin

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secretKey string, claims reloadClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secretKey))
	require.NoError(t, err)
	return signed
}

func TestValidate_AcceptsWellSignedUnexpiredToken(t *testing.T) {
	v := newTokenVerifier("correct-horse-battery-staple")
	token := signToken(t, "correct-horse-battery-staple", reloadClaims{
		Subject: "ops@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := v.validate(token)
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", claims.Subject)
}

func TestValidate_RejectsWrongSecret(t *testing.T) {
	v := newTokenVerifier("correct-horse-battery-staple")
	token := signToken(t, "wrong-secret", reloadClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := v.validate(token)
	assert.Error(t, err)
}

func TestValidate_RejectsExpiredToken(t *testing.T) {
	v := newTokenVerifier("correct-horse-battery-staple")
	token := signToken(t, "correct-horse-battery-staple", reloadClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	_, err := v.validate(token)
	assert.Error(t, err)
}

func TestValidate_RejectsMalformedToken(t *testing.T) {
	v := newTokenVerifier("correct-horse-battery-staple")
	_, err := v.validate("not-a-jwt")
	assert.Error(t, err)
}

func TestValidate_RejectsNoneAlgorithm(t *testing.T) {
	v := newTokenVerifier("correct-horse-battery-staple")
	token := jwt.NewWithClaims(jwt.SigningMethodNone, reloadClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = v.validate(signed)
	assert.Error(t, err)
}
