package admin

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestRequireAdminToken_RejectsMissingHeader(t *testing.T) {
	v := newTokenVerifier("secret")
	handler := requireAdminToken(v)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/admin/config/reload", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdminToken_RejectsNonBearerScheme(t *testing.T) {
	v := newTokenVerifier("secret")
	handler := requireAdminToken(v)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/admin/config/reload", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdminToken_AllowsValidBearerToken(t *testing.T) {
	v := newTokenVerifier("secret")
	handler := requireAdminToken(v)(okHandler())

	token := signToken(t, "secret", reloadClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	req := httptest.NewRequest(http.MethodPost, "/admin/config/reload", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyz_AllChecksPass(t *testing.T) {
	rd := newReadiness(func() error { return nil })
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	rd.readyz(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyz_FailingCheckReturns503(t *testing.T) {
	rd := newReadiness(
		func() error { return nil },
		func() error { return errors.New("postgres unreachable") },
	)
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	rd.readyz(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealthz_AlwaysOK(t *testing.T) {
	rd := newReadiness(func() error { return errors.New("irrelevant to liveness") })
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	rd.healthz(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}
