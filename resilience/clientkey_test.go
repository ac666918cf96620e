package resilience

import (
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestIPClientKeyer(t *testing.T) {
	k := IPClientKeyer{}

	tests := []struct {
		name string
		addr string
		want string
	}{
		{"host and port", "192.0.2.10:54321", "ip:192.0.2.10"},
		{"bare host", "192.0.2.10", "ip:192.0.2.10"},
		{"ipv6 with port", "[2001:db8::1]:443", "ip:2001:db8::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := k.ClientKey(tt.addr)
			if err != nil {
				t.Fatalf("ClientKey() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ClientKey(%q) = %q, want %q", tt.addr, got, tt.want)
			}
		})
	}

	if _, err := k.ClientKey(""); err != ErrNoClientKey {
		t.Errorf("ClientKey(\"\") error = %v, want ErrNoClientKey", err)
	}
}

func TestAPIKeyClientKeyer(t *testing.T) {
	k := APIKeyClientKeyer{}

	key1, err := k.ClientKey("sk-test-abc123")
	if err != nil {
		t.Fatalf("ClientKey() error = %v", err)
	}
	if !strings.HasPrefix(key1, "key:") {
		t.Errorf("ClientKey() = %q, want key: prefix", key1)
	}
	if strings.Contains(key1, "sk-test-abc123") {
		t.Error("derived key leaks the raw credential")
	}

	// Deterministic.
	key2, _ := k.ClientKey("sk-test-abc123")
	if key1 != key2 {
		t.Errorf("keys differ for same credential: %q vs %q", key1, key2)
	}

	// Distinct credentials, distinct keys.
	key3, _ := k.ClientKey("sk-test-other")
	if key1 == key3 {
		t.Error("different credentials produced the same key")
	}

	if _, err := k.ClientKey("  "); err != ErrNoClientKey {
		t.Errorf("ClientKey(blank) error = %v, want ErrNoClientKey", err)
	}
}

func TestTokenClientKeyer(t *testing.T) {
	k := TokenClientKeyer{}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "client-42",
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	got, err := k.ClientKey(token)
	if err != nil {
		t.Fatalf("ClientKey() error = %v", err)
	}
	if got != "sub:client-42" {
		t.Errorf("ClientKey() = %q, want sub:client-42", got)
	}

	// Bearer prefix tolerated.
	got, err = k.ClientKey("Bearer " + token)
	if err != nil {
		t.Fatalf("ClientKey(Bearer) error = %v", err)
	}
	if got != "sub:client-42" {
		t.Errorf("ClientKey(Bearer) = %q, want sub:client-42", got)
	}
}

func TestTokenClientKeyer_Invalid(t *testing.T) {
	k := TokenClientKeyer{}

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt"},
		{"bearer only", "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := k.ClientKey(tt.token); err != ErrNoClientKey {
				t.Errorf("ClientKey(%q) error = %v, want ErrNoClientKey", tt.token, err)
			}
		})
	}
}

func TestTokenClientKeyer_NoSubject(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"aud": "pipeline",
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	if _, err := (TokenClientKeyer{}).ClientKey(token); err != ErrNoClientKey {
		t.Errorf("ClientKey() error = %v, want ErrNoClientKey", err)
	}
}
