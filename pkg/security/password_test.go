package security

import (
	"strings"
	"testing"

	"github.com/parksense/parksense-backend/pkg/config"
)

func TestHashThenVerifyRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse", config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("unexpected hash format %q", hash)
	}
	if !VerifyPassword("correct horse", hash) {
		t.Fatalf("expected matching password to verify")
	}
	if VerifyPassword("wrong horse", hash) {
		t.Fatalf("expected mismatched password to fail")
	}
}

func TestHashesAreSalted(t *testing.T) {
	first, err := HashPassword("p1", config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := HashPassword("p1", config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatalf("two hashes of the same password should differ")
	}
}

func TestVerifyMalformedHashReturnsFalse(t *testing.T) {
	for _, encoded := range []string{"", "not-a-hash", "$argon2id$v=19$m=abc$x$y", "$bcrypt$whatever"} {
		if VerifyPassword("anything", encoded) {
			t.Fatalf("malformed hash %q should never verify", encoded)
		}
	}
}

func TestHashRejectsEmptyPassword(t *testing.T) {
	if _, err := HashPassword("", config.PasswordConfig{}); err == nil {
		t.Fatalf("expected error for empty password")
	}
}
