package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/imgbed/service/internal/response"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

// AdminRoleKey is the context key for the authenticated caller's role.
const AdminRoleKey contextKey = "adminRole"

// RequireAdmin returns middleware that validates a Bearer JWT and
// requires the admin role claim. Guards the privileged surface: sign,
// list, delete, uploads.
func RequireAdmin(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "authorization header required")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				response.Unauthorized(w, "invalid authorization header format")
				return
			}

			token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				response.Unauthorized(w, "invalid or expired token")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				response.Unauthorized(w, "invalid token claims")
				return
			}

			role, _ := claims["role"].(string)
			if role != "admin" {
				response.Forbidden(w, "admin role required")
				return
			}

			ctx := context.WithValue(r.Context(), AdminRoleKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
