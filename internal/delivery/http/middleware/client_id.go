package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/yab-g4u/Ablack/internal/domain"
)

const clientIDCookie = "clientId"

const clientIDKey domain.ContextKey = "client_id"

// ClientID assigns each browser a stable anonymous identifier via a
// long-lived cookie. It keys the cart, local wishlist, checkout state,
// and the first-visit marker for signed-out users.
func ClientID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(clientIDCookie); err == nil && c.Value != "" {
			id = c.Value
		} else {
			id = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     clientIDCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   60 * 60 * 24 * 365,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), clientIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientIDFromContext returns the anonymous client identifier.
func ClientIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(clientIDKey).(string)
	return id
}

// Owner resolves whose key-value data a request touches: the user id
// when signed in, the anonymous client id otherwise.
func Owner(ctx context.Context) string {
	if user, ok := UserFromContext(ctx); ok {
		return user.ID
	}
	return ClientIDFromContext(ctx)
}
