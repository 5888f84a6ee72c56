package auth

import (
	"errors"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Password123")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if hash == "Password123" {
		t.Error("Expected hash to differ from the plain password")
	}
	if !VerifyPassword(hash, "Password123") {
		t.Error("Expected matching password to verify")
	}
	if VerifyPassword(hash, "WrongPassword1") {
		t.Error("Expected non-matching password to fail verification")
	}
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"valid", "Password123", nil},
		{"too short", "Pw1", ErrPasswordTooShort},
		{"no uppercase", "password123", ErrPasswordNoUpper},
		{"no lowercase", "PASSWORD123", ErrPasswordNoLower},
		{"no number", "PasswordABC", ErrPasswordNoNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePasswordStrength(tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}
