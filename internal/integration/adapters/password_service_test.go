// Package adapters contains service implementations for external integrations.
package adapters

import "testing"

func TestPasswordService_HashAndVerify(t *testing.T) {
	service := NewPasswordService()

	hash, err := service.HashPassword("correct-horse-1")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "correct-horse-1" {
		t.Fatal("hash must not equal the plaintext")
	}

	if err := service.VerifyPassword(hash, "correct-horse-1"); err != nil {
		t.Errorf("expected password to verify: %v", err)
	}
	if err := service.VerifyPassword(hash, "wrong-password-1"); err == nil {
		t.Error("expected wrong password to fail verification")
	}
}

func TestPasswordService_ValidatePasswordStrength(t *testing.T) {
	service := NewPasswordService()

	cases := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "password1", false},
		{"too short", "pass1", true},
		{"no digit", "passwords", true},
		{"no letter", "12345678", true},
		{"mixed long", "a1b2c3d4e5", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := service.ValidatePasswordStrength(tc.password)
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidatePasswordStrength(%q) error = %v, wantErr %v", tc.password, err, tc.wantErr)
			}
		})
	}
}
