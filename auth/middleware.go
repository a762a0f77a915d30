// auth/middleware.go
package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jmoiron/sqlx"

	"stockroom/database"
	"stockroom/model"
)

type contextKey string

const userContextKey contextKey = "stockroom.user"

// RequireSession rejects requests without a live session. The 401 body is
// JSON so the front end can distinguish "please log in again" from a server
// failure and redirect to the login screen.
func RequireSession(db *sqlx.DB, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := TokenFromRequest(r)
		if token == "" {
			unauthenticated(w)
			return
		}
		user, err := database.GetSessionUser(db, token)
		if err != nil {
			http.Error(w, "Failed to resolve session", http.StatusInternalServerError)
			return
		}
		if user == nil {
			unauthenticated(w)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userContextKey, user)))
	}
}

// UserFromContext returns the authenticated user set by RequireSession.
func UserFromContext(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

func unauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "unauthenticated"})
}
