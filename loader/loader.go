// loader/loader.go
package loader

import (
	_ "embed"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"stockroom/auth"
	"stockroom/database"
	"stockroom/model"
)

//go:embed schema.sql
var schemaSQL string

// InitDatabase applies the schema. Idempotent: every statement is
// CREATE ... IF NOT EXISTS, so restarting against an existing file is safe.
func InitDatabase(db *sqlx.DB) error {
	log.Println("Applying database schema...")
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	log.Println("Schema applied successfully.")
	return nil
}

// EnsureAdminUser creates the bootstrap login when the users table is empty.
// Credentials come from the environment; without them a fresh database has
// no way to sign in.
func EnsureAdminUser(db *sqlx.DB, username, password string) error {
	count, err := database.CountUsers(db)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if username == "" || password == "" {
		log.Println("WARN: No users exist and no admin credentials configured; login will be impossible.")
		return nil
	}

	salt, hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin admin bootstrap transaction: %w", err)
	}
	defer tx.Rollback()

	user := model.User{
		ID:           uuid.NewString(),
		Username:     username,
		FullName:     "Administrator",
		PasswordSalt: salt,
		PasswordHash: hash,
	}
	if err := database.CreateUserInTx(tx, user); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit admin bootstrap: %w", err)
	}
	log.Printf("Bootstrap admin user %q created.", username)
	return nil
}
