package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rumbahq/rumba/internal/auth"
	"github.com/rumbahq/rumba/internal/models"
	"github.com/rumbahq/rumba/internal/storage"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// userKey is the context key for storing the authenticated user.
const userKey contextKey = "user"

// GetUser extracts the authenticated user from the context.
// Returns nil if the request was not authenticated.
func GetUser(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

// GetUserID extracts the authenticated user's ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	if user := GetUser(ctx); user != nil {
		return user.ID
	}
	return ""
}

// RequireAuth returns a middleware that validates bearer tokens and requires
// authentication. It extracts the token from the Authorization header,
// validates it, loads the user and adds it to the request context. The 401
// body says whether the token was absent, invalid or expired.
func RequireAuth(jwtManager *auth.JWTManager, users storage.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, auth.ErrMissingToken)
				return
			}

			// Parse Bearer token
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				unauthorized(w, auth.ErrInvalidToken)
				return
			}
			tokenString := parts[1]

			claims, err := jwtManager.Validate(tokenString)
			if err != nil {
				if errors.Is(err, auth.ErrExpiredToken) {
					unauthorized(w, auth.ErrExpiredToken)
					return
				}
				unauthorized(w, auth.ErrInvalidToken)
				return
			}

			// The account may have been removed since the token was issued.
			user, err := users.GetUserByID(r.Context(), claims.UserID)
			if err != nil {
				unauthorized(w, auth.ErrUnknownUser)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin returns a middleware that rejects non-admin users. It must run
// after RequireAuth. No route mounts it yet; it is here so privileged
// endpoints can be added without a token-format change.
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUser(r.Context())
			if user == nil || user.Role != models.RoleAdmin {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusForbidden)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"message": "Access denied. Admin privileges required.",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": err.Error()})
}
