package http

import (
	"context"
	"net/http"
	"strings"

	"lendingapi/internal/auth"
)

type contextKey string

const userIDKey contextKey = "userID"
const rolesKey contextKey = "roles"

// AuthMiddleware validates the bearer token and stores the caller's id and
// roles in the request context.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				JSONError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Missing bearer token", nil)
				return
			}
			token := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := auth.ParseToken(secret, token)
			if err != nil {
				JSONError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Invalid token", nil)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.Sub)
			ctx = context.WithValue(ctx, rolesKey, claims.Roles)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects requests whose token does not carry the given role.
// It must be chained after AuthMiddleware.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, held := range RolesFrom(r) {
				if held == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			JSONError(w, http.StatusForbidden, "FORBIDDEN", "Insufficient role", nil)
		})
	}
}

// UserIDFrom returns the authenticated caller's id, or "" when the request
// carries no identity.
func UserIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(userIDKey).(string); ok {
		return v
	}
	return ""
}

// RolesFrom returns the authenticated caller's roles.
func RolesFrom(r *http.Request) []string {
	if v, ok := r.Context().Value(rolesKey).([]string); ok {
		return v
	}
	return nil
}
