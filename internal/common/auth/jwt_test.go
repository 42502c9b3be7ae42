package auth

import (
	"testing"
	"time"

	"github.com/DrOldGuy/builder-pattern/internal/common/config"
)

func TestGenerateAndParseAccessToken(t *testing.T) {
	cfg := config.AuthConfig{
		Enabled:   true,
		JWTSecret: "test-secret",
		Issuer:    "dealer",
		Audience:  "dealer",
	}

	token, exp, err := GenerateAccessToken(cfg, "u-1", []string{"admin"}, time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if exp.Before(time.Now()) {
		t.Fatalf("expected exp in future")
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.Subject != "u-1" {
		t.Fatalf("subject mismatch: %s", claims.Subject)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "admin" {
		t.Fatalf("roles mismatch: %#v", claims.Roles)
	}
}

func TestParseAccessTokenRejectsBadInput(t *testing.T) {
	cfg := config.AuthConfig{JWTSecret: "test-secret", Issuer: "dealer"}

	if _, err := ParseAccessToken(cfg, ""); err == nil {
		t.Fatalf("expected empty token rejected")
	}
	if _, err := ParseAccessToken(cfg, "not-a-jwt"); err == nil {
		t.Fatalf("expected garbage token rejected")
	}

	// 密钥不一致
	token, _, err := GenerateAccessToken(cfg, "u-1", nil, time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	other := config.AuthConfig{JWTSecret: "other-secret", Issuer: "dealer"}
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatalf("expected wrong-secret token rejected")
	}

	// issuer 不匹配
	wrongIss := config.AuthConfig{JWTSecret: "test-secret", Issuer: "someone-else"}
	if _, err := ParseAccessToken(wrongIss, token); err == nil {
		t.Fatalf("expected wrong-issuer token rejected")
	}
}
