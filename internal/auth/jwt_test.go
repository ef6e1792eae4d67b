package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/rumbahq/rumba/internal/models"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testUser() *models.User {
	return &models.User{
		ID:    "user-1",
		Email: "maria@example.com",
		Role:  models.RoleUser,
	}
}

func TestJWTGenerateAndValidate(t *testing.T) {
	manager := NewJWTManager(testSecret, 24*time.Hour)

	token, err := manager.Generate(testUser())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("expected user-1, got %q", claims.UserID)
	}
	if claims.Email != "maria@example.com" {
		t.Errorf("unexpected email %q", claims.Email)
	}
	if claims.Role != models.RoleUser {
		t.Errorf("unexpected role %q", claims.Role)
	}
}

func TestJWTExpiredToken(t *testing.T) {
	manager := NewJWTManager(testSecret, -time.Hour)

	token, err := manager.Generate(testUser())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	_, err = manager.Validate(token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := NewJWTManager(testSecret, time.Hour).Generate(testUser())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	other := NewJWTManager("another-secret-another-secret-32", time.Hour)
	if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTGarbageToken(t *testing.T) {
	manager := NewJWTManager(testSecret, time.Hour)
	if _, err := manager.Validate("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}
