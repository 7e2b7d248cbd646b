package common

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

type contextKey string

const (
	ContextKeyAdminID contextKey = "admin_id"
	ContextKeyEmail   contextKey = "email"
)

// AuthMiddleware protects the moderation routes. Requests without a valid
// bearer token get a 401 and never reach the handler, which is the service
// equivalent of the route guard redirecting to the login screen.
func AuthMiddleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				unauthorized(w, "authorization required")
				return
			}

			// header = Bearer <token>
			parts := strings.Fields(header)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				unauthorized(w, "invalid auth header")
				return
			}

			claims, err := ValidToken(parts[1])
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			// inject operator identity into the request context
			ctx := context.WithValue(r.Context(), ContextKeyAdminID, claims.AdminID)
			ctx = context.WithValue(ctx, ContextKeyEmail, claims.Email)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminIDFromContext pulls the authenticated operator id, if any.
func AdminIDFromContext(ctx context.Context) (uint64, bool) {
	id, ok := ctx.Value(ContextKeyAdminID).(uint64)
	return id, ok
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
