package jwt

import (
	"testing"
	"time"

	"calmseek-backend/config"

	"github.com/google/uuid"
)

func newTestService(secret string) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        secret,
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	service := newTestService("test-secret")
	userID := uuid.New()

	token, tokenID, err := service.GenerateAccessToken(userID, "mira", 3)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	if tokenID == "" {
		t.Fatal("token id should not be empty")
	}

	claims, err := service.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("user id = %s, want %s", claims.UserID, userID)
	}
	if claims.Username != "mira" {
		t.Errorf("username = %q, want mira", claims.Username)
	}
	if claims.RoleID != 3 {
		t.Errorf("role id = %d, want 3", claims.RoleID)
	}
	if claims.TokenType != AccessToken {
		t.Errorf("token type = %q, want %q", claims.TokenType, AccessToken)
	}
	if claims.TokenID != tokenID {
		t.Errorf("token id = %q, want %q", claims.TokenID, tokenID)
	}
}

func TestRefreshTokenType(t *testing.T) {
	service := newTestService("test-secret")

	token, _, err := service.GenerateRefreshToken(uuid.New(), "mira", 3)
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}

	claims, err := service.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.TokenType != RefreshToken {
		t.Errorf("token type = %q, want %q", claims.TokenType, RefreshToken)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, _, err := newTestService("secret-a").GenerateAccessToken(uuid.New(), "mira", 3)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := newTestService("secret-b").ValidateToken(token); err == nil {
		t.Error("token signed with another secret should not validate")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	service := NewJWTService(config.JWTConfig{
		Secret:       "test-secret",
		AccessExpiry: -time.Minute,
	})

	token, _, err := service.GenerateAccessToken(uuid.New(), "mira", 3)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := service.ValidateToken(token); err == nil {
		t.Error("expired token should not validate")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := newTestService("test-secret").ValidateToken("not-a-jwt"); err == nil {
		t.Error("malformed token should not validate")
	}
}

func TestTokenIDsAreUnique(t *testing.T) {
	service := newTestService("test-secret")
	userID := uuid.New()

	_, first, err := service.GenerateAccessToken(userID, "mira", 3)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	_, second, err := service.GenerateAccessToken(userID, "mira", 3)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	if first == second {
		t.Error("consecutive tokens should carry distinct token ids")
	}
}
