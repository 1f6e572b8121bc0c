package services

import (
	"errors"
	"testing"
	"time"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRES_IN", "1h")

	token, err := IssueSessionToken("507f1f77bcf86cd799439011")
	if err != nil {
		t.Fatalf("IssueSessionToken failed: %v", err)
	}

	userID, issuedAt, err := VerifySessionToken(token)
	if err != nil {
		t.Fatalf("VerifySessionToken failed: %v", err)
	}
	if userID != "507f1f77bcf86cd799439011" {
		t.Fatalf("wrong user ID: %q", userID)
	}
	if issuedAt.IsZero() || time.Since(issuedAt) > time.Minute {
		t.Fatalf("unexpected issue time: %v", issuedAt)
	}
}

func TestVerifySessionTokenFailures(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-one")
	t.Setenv("JWT_EXPIRES_IN", "1h")

	good, err := IssueSessionToken("abc123")
	if err != nil {
		t.Fatalf("IssueSessionToken failed: %v", err)
	}

	t.Setenv("JWT_EXPIRES_IN", "-1h")
	expired, err := IssueSessionToken("abc123")
	if err != nil {
		t.Fatalf("IssueSessionToken failed: %v", err)
	}
	t.Setenv("JWT_EXPIRES_IN", "1h")

	// Every failure mode collapses to the same error kind.
	tests := []struct {
		name   string
		secret string
		token  string
	}{
		{"different secret", "secret-two", good},
		{"expired", "secret-one", expired},
		{"malformed", "secret-one", "not.a.jwt"},
		{"empty", "secret-one", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", tt.secret)
			_, _, err := VerifySessionToken(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestIssueSessionTokenRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := IssueSessionToken("abc123"); err == nil {
		t.Fatal("expected error with empty secret")
	}
}

func TestNewResetToken(t *testing.T) {
	plain, hash, expires, err := NewResetToken()
	if err != nil {
		t.Fatalf("NewResetToken failed: %v", err)
	}

	if plain == hash {
		t.Fatal("stored hash must differ from the plain token")
	}
	if HashResetToken(plain) != hash {
		t.Fatal("stored hash must be the hash of the plain token")
	}

	ttl := time.Until(expires)
	if ttl <= 9*time.Minute || ttl > 10*time.Minute {
		t.Fatalf("expected ~10 minute expiry, got %v", ttl)
	}

	plain2, _, _, err := NewResetToken()
	if err != nil {
		t.Fatalf("NewResetToken failed: %v", err)
	}
	if plain == plain2 {
		t.Fatal("two reset tokens must not collide")
	}
}

func TestVerifyResetToken(t *testing.T) {
	plain, hash, expires, err := NewResetToken()
	if err != nil {
		t.Fatalf("NewResetToken failed: %v", err)
	}

	if !VerifyResetToken(plain, hash, expires) {
		t.Fatal("valid unexpired token rejected")
	}

	tests := []struct {
		name    string
		plain   string
		hash    string
		expires time.Time
	}{
		{"wrong plain token", "some-other-token", hash, expires},
		{"empty plain token", "", hash, expires},
		{"empty stored hash", plain, "", expires},
		{"expired a millisecond ago", plain, hash, time.Now().Add(-time.Millisecond)},
		{"zero expiry", plain, hash, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if VerifyResetToken(tt.plain, tt.hash, tt.expires) {
				t.Fatal("expected rejection")
			}
		})
	}
}

func TestHashResetTokenMismatch(t *testing.T) {
	_, hash, _, err := NewResetToken()
	if err != nil {
		t.Fatalf("NewResetToken failed: %v", err)
	}
	if HashResetToken("some-other-token") == hash {
		t.Fatal("different plain tokens must not hash to the stored value")
	}
}
