// database/users.go
package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"stockroom/model"
)

func GetUserByUsername(db *sqlx.DB, username string) (*model.User, error) {
	var user model.User
	err := db.Get(&user, `
		SELECT id, username, full_name, password_salt, password_hash, created_at
		FROM users WHERE username = ?`, username)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", username, err)
	}
	return &user, nil
}

func CountUsers(db *sqlx.DB) (int, error) {
	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func CreateUserInTx(tx *sqlx.Tx, user model.User) error {
	user.CreatedAt = time.Now().Format("20060102150405")
	_, err := tx.NamedExec(`
		INSERT INTO users (id, username, full_name, password_salt, password_hash, created_at)
		VALUES (:id, :username, :full_name, :password_salt, :password_hash, :created_at)`, user)
	if err != nil {
		return fmt.Errorf("failed to insert user %s: %w", user.Username, err)
	}
	return nil
}

func CreateSession(db *sqlx.DB, session model.Session) error {
	_, err := db.NamedExec(`
		INSERT INTO sessions (token, user_id, expires_at)
		VALUES (:token, :user_id, :expires_at)`, session)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// GetSessionUser resolves a session token to its user. Expired or unknown
// tokens return nil. Expiry timestamps are YYYYMMDDHHMMSS strings.
func GetSessionUser(db *sqlx.DB, token string) (*model.User, error) {
	var user model.User
	err := db.Get(&user, `
		SELECT u.id, u.username, u.full_name, u.password_salt, u.password_hash, u.created_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.token = ? AND s.expires_at > ?`, token, time.Now().Format("20060102150405"))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}
	return &user, nil
}

func DeleteSession(db *sqlx.DB, token string) error {
	if _, err := db.Exec(`DELETE FROM sessions WHERE token = ?`, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions is housekeeping called opportunistically on login.
func DeleteExpiredSessions(db *sqlx.DB) error {
	if _, err := db.Exec(`DELETE FROM sessions WHERE expires_at <= ?`,
		time.Now().Format("20060102150405")); err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return nil
}
