package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/kavr/tasktrack-be/internal/models"
)

// UserResolver looks up the account a verified token refers to.
type UserResolver interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

type contextKey string

const currentUserKey = contextKey("currentUser")

// CurrentUser returns the authenticated user stored in the request context
// by Middleware.
func CurrentUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(currentUserKey).(*models.User)
	return user, ok
}

// Middleware protects routes with bearer-token authentication. It extracts
// the Authorization header, verifies the token, resolves the user record,
// and stores it in the request context. Handlers behind it never run with
// a missing identity: any failure short-circuits with 401 before the
// request touches a store.
func Middleware(tokens *TokenManager, users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				denyAuth(w, "Not authenticated")
				return
			}

			scheme, tokenStr, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || tokenStr == "" {
				denyAuth(w, "Not authenticated")
				return
			}

			userID, err := tokens.Verify(tokenStr)
			if err != nil {
				denyAuth(w, "Could not validate credentials")
				return
			}

			// A valid token whose user has since disappeared is still
			// an authentication failure, not a not-found.
			user, err := users.GetUserByID(r.Context(), userID)
			if err != nil {
				denyAuth(w, "Could not validate credentials")
				return
			}

			ctx := context.WithValue(r.Context(), currentUserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func denyAuth(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
