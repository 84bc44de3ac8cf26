package admin

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// reloadClaims is the claim set an admin-reload token must carry;
// reload is the one mutating admin operation so it is the only one
// gated behind a signed token (spec §10.3), grounded on the teacher's
// internal/infrastructure/auth.Claims shape.
type reloadClaims struct {
	Subject string `json:"sub"`
	jwt.RegisteredClaims
}

// tokenVerifier validates admin-reload bearer tokens against a single
// HMAC secret loaded from AdminConfig.JWTSecret.
type tokenVerifier struct {
	secretKey []byte
}

func newTokenVerifier(secret string) *tokenVerifier {
	return &tokenVerifier{secretKey: []byte(secret)}
}

func (v *tokenVerifier) validate(tokenString string) (*reloadClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &reloadClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse admin token: %w", err)
	}

	claims, ok := token.Claims.(*reloadClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid admin token claims")
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, errors.New("admin token has expired")
	}
	return claims, nil
}
