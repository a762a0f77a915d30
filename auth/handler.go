// auth/handler.go
package auth

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"stockroom/config"
	"stockroom/database"
	"stockroom/model"
)

// LoginHandler checks credentials and issues a session cookie.
func LoginHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var payload struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		user, err := database.GetUserByUsername(db, payload.Username)
		if err != nil {
			log.Printf("Error fetching user %s: %v", payload.Username, err)
			http.Error(w, "Failed to log in", http.StatusInternalServerError)
			return
		}
		if user == nil || !VerifyPassword(user.PasswordSalt, user.PasswordHash, payload.Password) {
			http.Error(w, "Invalid username or password", http.StatusUnauthorized)
			return
		}

		if err := database.DeleteExpiredSessions(db); err != nil {
			log.Printf("WARN: Failed to clean up expired sessions: %v", err)
		}

		ttl := time.Duration(config.GetConfig().SessionTTLHours) * time.Hour
		session := model.Session{
			Token:     uuid.NewString(),
			UserID:    user.ID,
			ExpiresAt: time.Now().Add(ttl).Format("20060102150405"),
		}
		if err := database.CreateSession(db, session); err != nil {
			log.Printf("Error creating session for %s: %v", payload.Username, err)
			http.Error(w, "Failed to log in", http.StatusInternalServerError)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookieName,
			Value:    session.Token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			Expires:  time.Now().Add(ttl),
		})
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]*model.User{"user": user})
	}
}

func LogoutHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token := TokenFromRequest(r); token != "" {
			if err := database.DeleteSession(db, token); err != nil {
				log.Printf("WARN: Failed to delete session: %v", err)
			}
		}
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookieName,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			MaxAge:   -1,
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

// CurrentUserHandler returns the logged-in user. Runs behind RequireSession.
func CurrentUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := UserFromContext(r.Context())
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]*model.User{"user": user})
	}
}
