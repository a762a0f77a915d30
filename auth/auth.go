// auth/auth.go
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/http"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "stockroom_session"

// HashPassword generates a random salt and returns (salt, hash) hex strings.
func HashPassword(password string) (string, string, error) {
	saltBytes := make([]byte, 16)
	if _, err := rand.Read(saltBytes); err != nil {
		return "", "", fmt.Errorf("failed to generate salt: %w", err)
	}
	salt := hex.EncodeToString(saltBytes)
	return salt, hashWithSalt(salt, password), nil
}

func VerifyPassword(salt, hash, password string) bool {
	computed := hashWithSalt(salt, password)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}

func hashWithSalt(salt, password string) string {
	sum := sha256.Sum256([]byte(salt + ":" + password))
	return hex.EncodeToString(sum[:])
}

// TokenFromRequest extracts the session token, or "" when absent.
func TokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
