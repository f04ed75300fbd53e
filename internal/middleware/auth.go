// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mukizafabrice/Unguka-sub001/internal/config"
	"github.com/mukizafabrice/Unguka-sub001/internal/models"
)

type contextKey string

// Context keys for the identity resolved from the JWT. Handlers read these
// instead of re-checking roles against raw request data.
const (
	UserIDKey        contextKey = "userID"
	CooperativeIDKey contextKey = "cooperativeID"
	RoleKey          contextKey = "role"
)

// AuthMiddleware validates the bearer token and injects the resolved
// (userID, cooperativeID, role) into the request context.
func AuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || tokenString == "" {
				http.Error(w, "missing or malformed authorization header", http.StatusUnauthorized)
				return
			}

			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
				return []byte(cfg.JWTSecret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			userID, _ := claims["sub"].(string)
			coopID, _ := claims["coop"].(string)
			role, _ := claims["role"].(string)
			if userID == "" || role == "" {
				http.Error(w, "invalid token claims", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			ctx = context.WithValue(ctx, CooperativeIDKey, coopID)
			ctx = context.WithValue(ctx, RoleKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects requests whose resolved role is not one of the given
// roles. Superadmins pass every check.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, _ := r.Context().Value(RoleKey).(string)
			if role == models.RoleSuperadmin {
				next.ServeHTTP(w, r)
				return
			}
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			http.Error(w, "forbidden", http.StatusForbidden)
		})
	}
}

// Identity returns the resolved identity from the request context.
func Identity(ctx context.Context) (userID, cooperativeID, role string) {
	userID, _ = ctx.Value(UserIDKey).(string)
	cooperativeID, _ = ctx.Value(CooperativeIDKey).(string)
	role, _ = ctx.Value(RoleKey).(string)
	return userID, cooperativeID, role
}
