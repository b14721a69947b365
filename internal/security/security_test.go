package security

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHashPassword(t *testing.T) {
	password := "rahasiaGuru123"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "" || hash == password {
		t.Fatalf("HashPassword() returned %q", hash)
	}

	hash2, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == hash2 {
		t.Error("HashPassword() should produce different hashes due to salt")
	}
}

func TestCheckPassword(t *testing.T) {
	password := "mySecurePassword"
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
	}{
		{name: "correct password", password: password, hash: hash, want: true},
		{name: "incorrect password", password: "wrongPassword", hash: hash, want: false},
		{name: "empty password", password: "", hash: hash, want: false},
		{name: "empty hash", password: password, hash: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckPassword(tt.password, tt.hash); got != tt.want {
				t.Errorf("CheckPassword() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTokenRoundTrip(t *testing.T) {
	signer := NewTokenSigner("test-key", time.Hour)
	token, expiresAt, err := signer.Issue("admin-1", "guru@sekolah.id", "Bu Guru", "teacher")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if !expiresAt.After(time.Now()) {
		t.Errorf("expiresAt = %v, want future", expiresAt)
	}

	claims, err := signer.Parse(token)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if claims.Subject != "admin-1" || claims.Email != "guru@sekolah.id" || claims.Role != "teacher" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestTokenRejected(t *testing.T) {
	signer := NewTokenSigner("test-key", time.Hour)
	token, _, err := signer.Issue("admin-1", "guru@sekolah.id", "Bu Guru", "teacher")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	other := NewTokenSigner("other-key", time.Hour)
	if _, err := other.Parse(token); err != ErrInvalidToken {
		t.Errorf("Parse() with wrong key error = %v, want ErrInvalidToken", err)
	}

	later := NewTokenSigner("test-key", time.Hour)
	later.SetClock(func() time.Time { return time.Now().Add(2 * time.Hour) })
	if _, err := later.Parse(token); err != ErrInvalidToken {
		t.Errorf("Parse() after expiry error = %v, want ErrInvalidToken", err)
	}

	if _, err := signer.Parse("not.a.token"); err != ErrInvalidToken {
		t.Errorf("Parse() garbage error = %v, want ErrInvalidToken", err)
	}
}

func TestGenerateKey(t *testing.T) {
	a, b := GenerateKey(), GenerateKey()
	if len(a) != 64 {
		t.Errorf("len(GenerateKey()) = %d, want 64", len(a))
	}
	if a == b {
		t.Error("GenerateKey() returned the same key twice")
	}
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()
	rl.SetClock(func() time.Time { return now })

	if !rl.Allow("10.0.0.1") || !rl.Allow("10.0.0.1") {
		t.Fatal("first two requests should be allowed")
	}
	if rl.Allow("10.0.0.1") {
		t.Error("third request in window should be blocked")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("other IPs have their own bucket")
	}

	now = now.Add(time.Minute)
	if !rl.Allow("10.0.0.1") {
		t.Error("bucket should refill after the window")
	}

	now = now.Add(5 * time.Minute)
	rl.prune()
	rl.mu.Lock()
	remaining := len(rl.visitors)
	rl.mu.Unlock()
	if remaining != 0 {
		t.Errorf("visitors after prune = %d, want 0", remaining)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "forwarded chain", headers: map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, want: "203.0.113.7"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": " 198.51.100.2 "}, want: "198.51.100.2"},
		{name: "remote addr", remote: "192.0.2.1:5555", want: "192.0.2.1"},
		{name: "remote addr without port", remote: "192.0.2.1", want: "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", strings.NewReader(""))
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if tt.remote != "" {
				r.RemoteAddr = tt.remote
			}
			if got := GetClientIP(r); got != tt.want {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
