// Package middleware resolves inbound bearer credentials to authenticated
// accounts before handlers run.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/colbyc/lightspeed-bridge/internal/accounts"
	"github.com/colbyc/lightspeed-bridge/internal/auth/session"
	"github.com/colbyc/lightspeed-bridge/internal/db/models"
)

type contextKey string

const accountKey contextKey = "account"

// AccountFrom retrieves the authenticated account from the request context.
func AccountFrom(ctx context.Context) (*models.Account, bool) {
	account, ok := ctx.Value(accountKey).(*models.Account)
	return account, ok
}

// RequireUser validates the bearer session token and loads the account into
// the request context. Missing credentials and invalid tokens both end in
// 401; the verification failure cause is never distinguished.
func RequireUser(issuer *session.Issuer, store *accounts.Store) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				unauthorized(w, "Not authenticated")
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			subject, ok := issuer.Verify(tokenStr)
			if !ok {
				unauthorized(w, "Invalid token")
				return
			}
			account, err := store.GetByID(subject)
			if err != nil {
				// Token was valid but the account no longer exists.
				unauthorized(w, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), accountKey, account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin restricts the route to admin accounts. Must run after
// RequireUser.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account, ok := AccountFrom(r.Context())
		if !ok {
			unauthorized(w, "Not authenticated")
			return
		}
		if !account.IsAdmin() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"detail": "You don't have permission to access this resource"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"detail": "` + detail + `"}`))
}
