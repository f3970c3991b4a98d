package middleware

import (
	"context"
	"net/http"

	"github.com/ayush/todo-api/internal/auth"
)

type ctxKey byte

const userKey = ctxKey(1)

// AuthUser is the identity the auth gate attaches to the request context.
// Downstream handlers trust it without re-verifying the token.
type AuthUser struct {
	ID       int64
	Username string
}

// UserFromContext returns the authenticated user, or false when the request
// did not pass through RequireAuth.
func UserFromContext(ctx context.Context) (AuthUser, bool) {
	u, ok := ctx.Value(userKey).(AuthUser)
	return u, ok
}

// RequireAuth validates the bearer token and injects the caller's identity
// into the request context. The token travels as the raw signed string in
// the "authorization" header, without a "Bearer " prefix.
func RequireAuth(tokens *auth.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := r.Header.Get("Authorization")
			if tokenString == "" {
				http.Error(w, `{"error":"No token provided"}`, http.StatusForbidden)
				return
			}

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				http.Error(w, `{"error":"Invalid token"}`, http.StatusUnauthorized)
				return
			}
			userID, err := claims.UserID()
			if err != nil {
				http.Error(w, `{"error":"Invalid token"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, AuthUser{ID: userID, Username: claims.Username})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
