package session

import (
	"strings"
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewIssuer("test-secret", 4*time.Hour)

	token, expires, err := issuer.Issue("account-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token string")
	}

	wantExpiry := time.Now().Add(4 * time.Hour).Unix()
	if expires < wantExpiry-5 || expires > wantExpiry+5 {
		t.Fatalf("expected expiry ~4h from now, got %d (want ~%d)", expires, wantExpiry)
	}

	subject, ok := issuer.Verify(token)
	if !ok {
		t.Fatal("expected token to verify")
	}
	if subject != "account-1" {
		t.Fatalf("expected subject account-1, got %q", subject)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	issuer := NewIssuer("test-secret", 4*time.Hour)
	issuer.now = func() time.Time { return time.Now().Add(-5 * time.Hour) }

	// Signed correctly, but issued five hours in the past.
	token, _, err := issuer.Issue("account-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	issuer.now = time.Now
	if _, ok := issuer.Verify(token); ok {
		t.Fatal("expired token must never verify")
	}
}

func TestVerifyFailuresCollapse(t *testing.T) {
	issuer := NewIssuer("test-secret", 4*time.Hour)
	other := NewIssuer("other-secret", 4*time.Hour)

	valid, _, err := issuer.Issue("account-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	foreign, _, err := other.Issue("account-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + parts[1] + ".AAAA"

	tests := []struct {
		name  string
		token string
	}{
		{name: "malformed", token: "not-a-jwt"},
		{name: "empty", token: ""},
		{name: "wrong secret", token: foreign},
		{name: "tampered signature", token: tampered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if subject, ok := issuer.Verify(tt.token); ok {
				t.Fatalf("expected verification failure, got subject %q", subject)
			}
		})
	}
}
