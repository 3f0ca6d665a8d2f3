package middleware

import (
	"context"
	"net/http"

	"github.com/yab-g4u/Ablack/internal/domain"
	"github.com/yab-g4u/Ablack/pkg/utils"
)

// AuthMiddleware requires a valid access token and puts the token's user
// into the request context. The user is built from claims; no database
// hit per request.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := utils.ExtractClaims(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		user := &domain.User{
			ID:    claims.UserID,
			Email: claims.Email,
			Role:  claims.Role,
		}

		ctx := context.WithValue(r.Context(), domain.UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth attaches the user when a valid token is present but lets
// anonymous requests through. Cart, catalog, and the local wishlist work
// signed out.
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, err := utils.ExtractClaims(r); err == nil {
			user := &domain.User{
				ID:    claims.UserID,
				Email: claims.Email,
				Role:  claims.Role,
			}
			r = r.WithContext(context.WithValue(r.Context(), domain.UserContextKey, user))
		}
		next.ServeHTTP(w, r)
	})
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(domain.UserContextKey).(*domain.User)
	return user, ok
}
