package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	salt, hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if salt == "" || hash == "" {
		t.Fatal("expected non-empty salt and hash")
	}
	if !VerifyPassword(salt, hash, "hunter2") {
		t.Error("correct password did not verify")
	}
	if VerifyPassword(salt, hash, "hunter3") {
		t.Error("wrong password verified")
	}
	if VerifyPassword("deadbeef", hash, "hunter2") {
		t.Error("wrong salt verified")
	}
}

func TestHashPasswordSaltsAreUnique(t *testing.T) {
	salt1, hash1, err := HashPassword("same")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	salt2, hash2, err := HashPassword("same")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if salt1 == salt2 {
		t.Error("two hashes of the same password reused a salt")
	}
	if hash1 == hash2 {
		t.Error("two hashes of the same password collided")
	}
}

func TestTokenFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := TokenFromRequest(req); got != "" {
		t.Errorf("expected empty token without cookie, got %q", got)
	}

	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "tok-123"})
	if got := TokenFromRequest(req); got != "tok-123" {
		t.Errorf("expected tok-123, got %q", got)
	}

	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.AddCookie(&http.Cookie{Name: "unrelated", Value: "nope"})
	if got := TokenFromRequest(other); got != "" {
		t.Errorf("expected empty token for unrelated cookie, got %q", got)
	}
}
