// model/auth_types.go
package model

type User struct {
	ID           string `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	FullName     string `db:"full_name" json:"fullName"`
	PasswordSalt string `db:"password_salt" json:"-"`
	PasswordHash string `db:"password_hash" json:"-"`
	CreatedAt    string `db:"created_at" json:"-"`
}

type Session struct {
	Token     string `db:"token" json:"-"`
	UserID    string `db:"user_id" json:"-"`
	ExpiresAt string `db:"expires_at" json:"-"`
}
