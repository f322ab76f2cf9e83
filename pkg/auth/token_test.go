package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/openwims/wims-backend/pkg/config"
	"github.com/openwims/wims-backend/pkg/enums"
)

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "wims", ExpirationMinutes: 10}
	userID := uuid.New()

	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		UserID:   userID,
		Username: "alice",
		Role:     enums.UserRoleManager,
		JTI:      "session-1",
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user id %s got %s", userID, claims.UserID)
	}
	if claims.Username != "alice" {
		t.Fatalf("expected username alice got %s", claims.Username)
	}
	if claims.Role != enums.UserRoleManager {
		t.Fatalf("expected role manager got %s", claims.Role)
	}
	if claims.ID != "session-1" {
		t.Fatalf("expected jti session-1 got %s", claims.ID)
	}
}

func TestMintRejectsInvalidRole(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "wims", ExpirationMinutes: 10}
	if _, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRole("superuser"),
	}); err == nil {
		t.Fatal("expected invalid role error")
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "wims", ExpirationMinutes: 10}
	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		UserID: uuid.New(), Username: "bob", Role: enums.UserRoleUser,
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	other := config.JWTConfig{Secret: "secret", Issuer: "someone-else", ExpirationMinutes: 10}
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatal("expected issuer mismatch error")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "wims", ExpirationMinutes: 1}
	token, err := MintAccessToken(cfg, time.Now().Add(-time.Hour), AccessTokenPayload{
		UserID: uuid.New(), Username: "bob", Role: enums.UserRoleUser,
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseAccessToken(cfg, token); err == nil {
		t.Fatal("expected expiry error")
	}
	if _, err := ParseAccessTokenAllowExpired(cfg, token); err != nil {
		t.Fatalf("allow-expired parse should succeed: %v", err)
	}
}
