package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mwalcott/todo-api/internal/auth"
)

type key string

const userKey key = "user"

// JWTMiddleware rejects requests without a valid bearer token and puts
// the verified identity in the request context for handlers.
func JWTMiddleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "missing authorization header")
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := auth.Verify(secret, tokenStr)
			if err != nil {
				unauthorized(w, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser returns the identity stored by JWTMiddleware.
func GetUser(ctx context.Context) (auth.Claims, bool) {
	claims, ok := ctx.Value(userKey).(auth.Claims)
	return claims, ok
}

// WithUser returns a context carrying the given identity. Used by tests
// to call protected handlers without the full middleware chain.
func WithUser(ctx context.Context, claims auth.Claims) context.Context {
	return context.WithValue(ctx, userKey, claims)
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
