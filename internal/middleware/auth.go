package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jyelen1110/alfies-server/internal/utils"
)

type contextKey string

// ClaimsContextKey holds the validated JWT claims of the request
const ClaimsContextKey contextKey = "claims"

// Auth verifies JWT bearer tokens and stashes the claims in the context
func Auth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "Invalid authorization header format", http.StatusUnauthorized)
				return
			}

			claims, err := utils.ValidateToken(parts[1], jwtSecret)
			if err != nil {
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TenantFromContext extracts the tenant scope of an authenticated request
func TenantFromContext(ctx context.Context) string {
	claims, ok := ctx.Value(ClaimsContextKey).(jwt.MapClaims)
	if !ok {
		return ""
	}
	tenantID, _ := claims["tenant_id"].(string)
	return tenantID
}
