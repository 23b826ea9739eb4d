package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/parksense/parksense-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "parksense",
		ExpirationMinutes: 60,
	}
}

func TestMintThenParseRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()

	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		UserID: userID,
		Roles:  []string{"public_user", "admin"},
		Email:  "ops@parksense.io",
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	subject, err := claims.UserID()
	if err != nil {
		t.Fatalf("subject parse: %v", err)
	}
	if subject != userID {
		t.Fatalf("expected subject %s, got %s", userID, subject)
	}
	if len(claims.Roles) != 2 || claims.Roles[1] != "admin" {
		t.Fatalf("unexpected roles %v", claims.Roles)
	}
	if claims.Email != "ops@parksense.io" {
		t.Fatalf("unexpected email %q", claims.Email)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	cfg := testJWTConfig()

	token, err := MintAccessToken(cfg, time.Now().Add(-2*time.Hour), AccessTokenPayload{
		UserID: uuid.New(),
		TTL:    time.Minute,
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	if _, err := ParseAccessToken(cfg, token); err == nil {
		t.Fatalf("expected expired token to fail verification")
	}
}

func TestParseRejectsTamperedSignature(t *testing.T) {
	cfg := testJWTConfig()

	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape")
	}
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	if _, err := ParseAccessToken(cfg, tampered); err == nil {
		t.Fatalf("expected tampered token to fail verification")
	}

	other := cfg
	other.Secret = "different-secret"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatalf("expected wrong secret to fail verification")
	}
}

func TestMintRequiresSubject(t *testing.T) {
	if _, err := MintAccessToken(testJWTConfig(), time.Now(), AccessTokenPayload{}); err == nil {
		t.Fatalf("expected error without subject id")
	}
}

func TestMintDefaultsTTL(t *testing.T) {
	cfg := testJWTConfig()
	cfg.ExpirationMinutes = 0

	now := time.Now()
	token, err := MintAccessToken(cfg, now, AccessTokenPayload{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got := claims.ExpiresAt.Time.Sub(now.Truncate(time.Second))
	if got < 59*time.Minute || got > 61*time.Minute {
		t.Fatalf("expected ~60m expiry, got %s", got)
	}
}
