package credentials

import (
	"strings"
	"testing"
)

func TestGenerateGuestName(t *testing.T) {
	for i := 0; i < 20; i++ {
		name, err := GenerateGuestName()
		if err != nil {
			t.Fatalf("GenerateGuestName() error: %v", err)
		}

		parts := strings.Split(name, "-")
		if len(parts) != 2 {
			t.Fatalf("name %q does not match adjective-noun", name)
		}
		if parts[0] == "" || parts[1] == "" {
			t.Fatalf("name %q has an empty part", name)
		}
	}
}

func TestGenerateGuestPassword(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 20; i++ {
		password, err := GenerateGuestPassword()
		if err != nil {
			t.Fatalf("GenerateGuestPassword() error: %v", err)
		}
		if len(password) != 8 {
			t.Fatalf("password length = %d, want 8", len(password))
		}
		seen[password] = true
	}

	// 20 identical random passwords would mean the generator is broken
	if len(seen) < 2 {
		t.Error("password generator produced no variety")
	}
}
