package auth

import (
	"strings"
	"testing"
)

func TestIssueAndVerify(t *testing.T) {
	secret := []byte("test-secret")

	token, err := Issue(secret, 7, "alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if token == "" {
		t.Fatal("Issue returned empty token")
	}

	claims, err := Verify(secret, token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.ID != 7 || claims.Username != "alice" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := Issue([]byte("secret-a"), 1, "bob")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := Verify([]byte("secret-b"), token); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got: %v", err)
	}
}

func TestVerify_Tampered(t *testing.T) {
	secret := []byte("test-secret")
	token, err := Issue(secret, 1, "bob")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Flip a character in the payload segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := Verify(secret, tampered); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got: %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	for _, tok := range []string{"", "garbage", "a.b", "a.b.c"} {
		if _, err := Verify([]byte("test-secret"), tok); err != ErrInvalidToken {
			t.Errorf("Verify(%q): expected ErrInvalidToken, got: %v", tok, err)
		}
	}
}
