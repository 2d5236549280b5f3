package middleware

import (
	"context"
	"net/http"

	"ecomcart-be/internal/apperr"
	"ecomcart-be/internal/auth"
	"ecomcart-be/internal/logger"
	"ecomcart-be/internal/transport"
	"ecomcart-be/internal/user"
	"ecomcart-be/internal/utils"
)

// UserResolver turns a bearer token into an active user.
type UserResolver interface {
	Resolve(ctx context.Context, token string) (*user.User, error)
}

var ErrNotAdmin = apperr.Forbidden("Not authorized as admin")

// Authenticate rejects requests without a valid bearer token and stores
// the caller's identity on the request context.
func Authenticate(users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.ExtractBearerToken(r)

			u, err := users.Resolve(r.Context(), token)
			if err != nil {
				transport.Error(w, r, err)
				return
			}

			ctx := utils.SetIdentity(r.Context(), utils.Identity{
				UserID: u.ID,
				Name:   u.Name,
				Email:  u.Email,
				Role:   string(u.Role),
			})
			ctx = logger.WithUserID(ctx, u.ID)
			setRequestUser(ctx, u.ID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin must run after Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.GetIdentity(r.Context())
		if !ok || !id.IsAdmin() {
			transport.Error(w, r, ErrNotAdmin)
			return
		}
		next.ServeHTTP(w, r)
	})
}
