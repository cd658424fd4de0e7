package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/estatehub/estatehub/internal/auth"
	"github.com/estatehub/estatehub/internal/httputil"
	"github.com/estatehub/estatehub/internal/models"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// EmailKey is the context key for storing the authenticated identity.
const EmailKey contextKey = "email"

// GetEmail extracts the authenticated identity from the context.
// Returns empty string if not found.
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

// AccountResolver loads the authoritative account record for an identity.
// Privilege checks always go through this rather than trusting any role
// claim carried by the token.
type AccountResolver interface {
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
}

// RequireAuth returns middleware that validates the Bearer token on every
// request and stores the claimed identity in the request context.
// Missing, malformed, unverifiable or expired tokens all yield 401.
func RequireAuth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				httputil.Unauthorized(w, "unauthorized access")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				httputil.Unauthorized(w, "unauthorized access")
				return
			}

			claims, err := jwtManager.Validate(parts[1])
			if err != nil {
				httputil.Unauthorized(w, "unauthorized access")
				return
			}

			ctx := context.WithValue(r.Context(), EmailKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin returns middleware that resolves the authenticated identity's
// account from the store and rejects with 403 unless its role is admin.
// It must run after RequireAuth.
func RequireAdmin(resolver AccountResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := GetEmail(r.Context())
			if email == "" {
				httputil.Unauthorized(w, "unauthorized access")
				return
			}

			account, err := resolver.GetAccountByEmail(r.Context(), email)
			if err != nil {
				slog.Error("Failed to resolve account for privilege check", "email", email, "error", err)
				httputil.InternalError(w, "failed to resolve account")
				return
			}
			if !account.IsAdmin() {
				httputil.Forbidden(w, "forbidden access")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
