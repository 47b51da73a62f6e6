package jwt

import (
	"testing"

	"cosaportal/backend/internal/config"
)

func TestMain(m *testing.M) {
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}
	m.Run()
}

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	userID, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken returned error: %v", err)
	}
	if userID != 42 {
		t.Errorf("ParseToken returned user ID %d, want 42", userID)
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	if _, err := ParseToken("not.a.token"); err == nil {
		t.Fatal("ParseToken accepted a malformed token")
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken(7)
	if err != nil {
		t.Fatal(err)
	}

	config.AppConfig.JWTSecret = "different-secret"
	defer func() { config.AppConfig.JWTSecret = "test-secret" }()

	if _, err := ParseToken(token); err == nil {
		t.Fatal("ParseToken accepted a token signed with another secret")
	}
}
