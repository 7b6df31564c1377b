package auth

import (
	"testing"
	"time"

	"github.com/mmynk/homeshare/internal/models"
)

func TestJWTRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret-key-at-least-16", time.Hour)
	user := &models.User{ID: "user-1", Email: "alice@example.com"}

	token, err := manager.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "alice@example.com" {
		t.Errorf("Got claims %+v", claims)
	}
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	user := &models.User{ID: "user-1", Email: "alice@example.com"}

	token, err := NewJWTManager("test-secret-key-at-least-16", time.Hour).Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := NewJWTManager("a-different-secret-key-entirely", time.Hour).Validate(token); err == nil {
		t.Error("Expected validation with a different secret to fail")
	}
}

func TestJWTRejectsExpired(t *testing.T) {
	user := &models.User{ID: "user-1", Email: "alice@example.com"}

	manager := NewJWTManager("test-secret-key-at-least-16", -time.Minute)
	token, err := manager.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := manager.Validate(token); err == nil {
		t.Error("Expected expired token to be rejected")
	}
}
