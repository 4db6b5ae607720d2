package security

import (
	"errors"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret", "prizeladder", time.Hour)

	token, err := manager.Issue(42)
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	userID, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if userID != 42 {
		t.Errorf("Verify() = %d, want 42", userID)
	}
}

func TestTokenExpired(t *testing.T) {
	manager := NewTokenManager("test-secret", "prizeladder", -time.Minute)

	token, err := manager.Issue(42)
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	if _, err := manager.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() on expired token = %v, want ErrInvalidToken", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", "prizeladder", time.Hour)
	verifier := NewTokenManager("secret-b", "prizeladder", time.Hour)

	token, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() with wrong secret = %v, want ErrInvalidToken", err)
	}
}

func TestTokenGarbage(t *testing.T) {
	manager := NewTokenManager("test-secret", "prizeladder", time.Hour)

	if _, err := manager.Verify("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify(garbage) = %v, want ErrInvalidToken", err)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}

	if !CheckPassword("hunter22", hash) {
		t.Error("CheckPassword rejected the right password")
	}
	if CheckPassword("hunter23", hash) {
		t.Error("CheckPassword accepted the wrong password")
	}
}
