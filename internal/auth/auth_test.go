package auth

import (
	"testing"
	"time"
)

// sha256 of "password123"
const testDigest = "ef92b778bafe771e89245b89ecbc08a44a4e166c06659911881f383d4473e94f"

func TestVerify(t *testing.T) {
	svc := New("admin", testDigest, time.Hour)

	if !svc.Verify("admin", "password123") {
		t.Fatalf("correct credentials rejected")
	}
	if !svc.Verify("ADMIN", "password123") {
		t.Fatalf("username compare should be case-insensitive")
	}
	if svc.Verify("admin", "wrong") {
		t.Fatalf("wrong password accepted")
	}
	if svc.Verify("other", "password123") {
		t.Fatalf("wrong username accepted")
	}
}

func TestLoginAndSessions(t *testing.T) {
	svc := New("admin", testDigest, time.Hour)

	if _, ok := svc.Login("admin", "nope"); ok {
		t.Fatalf("login accepted wrong password")
	}

	token, ok := svc.Login("admin", "password123")
	if !ok || token == "" {
		t.Fatalf("login failed for correct credentials")
	}
	if !svc.Check(token) {
		t.Fatalf("issued token not valid")
	}
	if svc.Check("bogus") {
		t.Fatalf("unknown token accepted")
	}
	if svc.Check("") {
		t.Fatalf("empty token accepted")
	}

	svc.Logout(token)
	if svc.Check(token) {
		t.Fatalf("token valid after logout")
	}
}

func TestSessionExpiry(t *testing.T) {
	svc := New("admin", testDigest, time.Minute)
	base := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	token, ok := svc.Login("admin", "password123")
	if !ok {
		t.Fatalf("login failed")
	}
	if !svc.Check(token) {
		t.Fatalf("token should be valid before expiry")
	}

	svc.now = func() time.Time { return base.Add(2 * time.Minute) }
	if svc.Check(token) {
		t.Fatalf("token valid after expiry")
	}
}

func TestLoginTokensUnique(t *testing.T) {
	svc := New("admin", testDigest, time.Hour)
	t1, _ := svc.Login("admin", "password123")
	t2, _ := svc.Login("admin", "password123")
	if t1 == t2 {
		t.Fatalf("tokens should be unique")
	}
}
