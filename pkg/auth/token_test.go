package auth

import (
	"testing"
	"time"

	"github.com/ideabank/ideabank-backend/pkg/config"
	"github.com/ideabank/ideabank-backend/pkg/enums"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "ideabank", ExpirationMinutes: 30}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	identity := Identity{
		UserID:                   42,
		Username:                 "alice",
		Role:                     enums.RoleUser,
		FullName:                 "Alice Cooper",
		HasCompletedIntroduction: true,
	}

	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{Identity: identity, JTI: "jti-1"})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != identity.UserID {
		t.Fatalf("expected user id %d, got %d", identity.UserID, claims.UserID)
	}
	if claims.Role != enums.RoleUser {
		t.Fatalf("expected user role, got %s", claims.Role)
	}
	if claims.ID != "jti-1" {
		t.Fatalf("expected jti-1, got %s", claims.ID)
	}
	if claims.IsAdmin() {
		t.Fatal("plain user must not be admin")
	}
}

func TestMintAccessTokenRejectsInvalidPayload(t *testing.T) {
	cfg := testJWTConfig()

	if _, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		Identity: Identity{UserID: 1, Role: "superuser"},
	}); err == nil {
		t.Fatal("expected invalid role to be rejected")
	}

	if _, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		Identity: Identity{UserID: 0, Role: enums.RoleUser},
	}); err == nil {
		t.Fatal("expected zero user id to be rejected")
	}
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		Identity: Identity{UserID: 1, Username: "bob", Role: enums.RoleAdmin},
	})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	other := cfg
	other.Secret = "different"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatal("expected parse failure with wrong secret")
	}
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now().Add(-2*time.Hour), AccessTokenPayload{
		Identity: Identity{UserID: 1, Username: "bob", Role: enums.RoleAdmin},
	})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	if _, err := ParseAccessToken(cfg, token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}
