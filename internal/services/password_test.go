package services

import (
	"errors"
	"testing"
)

func TestHashPasswordNeverStoresPlaintext(t *testing.T) {
	hash, err := HashPassword("password1")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "password1" {
		t.Fatal("hash equals the plaintext password")
	}

	if !VerifyPassword("password1", hash) {
		t.Fatal("correct password rejected")
	}
	if VerifyPassword("password2", hash) {
		t.Fatal("wrong password accepted")
	}
}

func TestValidateSignup(t *testing.T) {
	valid := SignupInput{
		Name:            "A",
		Email:           "a@x.com",
		Password:        "password1",
		PasswordConfirm: "password1",
	}

	tests := []struct {
		name    string
		mutate  func(*SignupInput)
		wantErr error // nil means any error is fine, checked via ok flag
		ok      bool
	}{
		{"valid", func(in *SignupInput) {}, nil, true},
		{"valid with role", func(in *SignupInput) { in.Role = "teacher" }, nil, true},
		{"missing name", func(in *SignupInput) { in.Name = "" }, ErrInvalidInput, false},
		{"missing email", func(in *SignupInput) { in.Email = "" }, ErrInvalidInput, false},
		{"missing confirm", func(in *SignupInput) { in.PasswordConfirm = "" }, ErrInvalidInput, false},
		{"short password", func(in *SignupInput) { in.Password = "short"; in.PasswordConfirm = "short" }, ErrInvalidInput, false},
		{"mismatch", func(in *SignupInput) { in.PasswordConfirm = "password2" }, ErrPasswordMismatch, false},
		{"bad role", func(in *SignupInput) { in.Role = "superuser" }, ErrInvalidInput, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			err := ValidateSignup(in)
			if tt.ok && err != nil {
				t.Fatalf("expected valid input, got %v", err)
			}
			if !tt.ok && err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
