package admin

import (
	"net/http"
	"strings"

	"github.com/go-chi/render"
)

// requireAdminToken gates the reload endpoint behind a bearer token
// signed with AdminConfig.JWTSecret, grounded on the teacher's
// internal/handler/http/middleware.AuthMiddleware.RequireAuth.
func requireAdminToken(verifier *tokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, errorBody{Message: "authorization header required"})
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, errorBody{Message: "invalid authorization header format"})
				return
			}

			if _, err := verifier.validate(parts[1]); err != nil {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, errorBody{Message: "invalid or expired admin token"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

type errorBody struct {
	Message string `json:"message"`
}
