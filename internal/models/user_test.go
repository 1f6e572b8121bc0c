package models

import (
	"testing"
	"time"
)

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleStudent, RoleTeacher, RoleAdmin} {
		if !ValidRole(role) {
			t.Errorf("expected %q to be valid", role)
		}
	}
	if ValidRole("superuser") {
		t.Error("unknown role accepted")
	}
}

func TestChangedPasswordAfter(t *testing.T) {
	issued := time.Now()

	var u User
	if u.ChangedPasswordAfter(issued) {
		t.Error("user with no recorded change should not invalidate tokens")
	}

	u.PasswordChangedAt = issued.Add(-time.Hour)
	if u.ChangedPasswordAfter(issued) {
		t.Error("change before issuance should keep the token valid")
	}

	u.PasswordChangedAt = issued.Add(time.Minute)
	if !u.ChangedPasswordAfter(issued) {
		t.Error("change after issuance should invalidate the token")
	}
}
