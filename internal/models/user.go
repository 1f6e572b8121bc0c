package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleTeacher || role == RoleAdmin
}

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Photo    string             `bson:"photo" json:"photo"`
	Role     string             `bson:"role" json:"role"`
	Password string             `bson:"password,omitempty" json:"-"`
	// Active is flipped to false on account deletion; default reads exclude
	// inactive users.
	Active               bool      `bson:"active" json:"-"`
	PasswordResetToken   string    `bson:"password_reset_token,omitempty" json:"-"`
	PasswordResetExpires time.Time `bson:"password_reset_expires,omitempty" json:"-"`
	PasswordChangedAt    time.Time `bson:"password_changed_at,omitempty" json:"-"`
	CreatedAt            time.Time `bson:"created_at" json:"created_at"`
}

// ChangedPasswordAfter reports whether the password was changed after the
// given token issue time. Tokens issued before the last change are stale.
func (u User) ChangedPasswordAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt.IsZero() {
		return false
	}
	return u.PasswordChangedAt.After(issuedAt)
}
