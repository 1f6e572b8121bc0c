package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oladayo/exambank/internal/db"
	"github.com/oladayo/exambank/internal/models"
	"github.com/oladayo/exambank/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

const (
	DatabaseName    = "exambank"
	usersCollection = "users"

	// bcryptCost matches the original hashing cost.
	bcryptCost = 12
)

var (
	ErrEmailInUse        = errors.New("email already in use")
	ErrPasswordMismatch  = errors.New("passwords are not the same")
	ErrUserNotFound      = errors.New("no user found with that email")
	ErrWrongPassword     = errors.New("incorrect password")
	ErrResetTokenExpired = errors.New("token is invalid or has expired")
	// ErrInvalidInput wraps every field-validation failure so handlers can
	// tell the caller's mistakes apart from store failures.
	ErrInvalidInput = errors.New("invalid input")
)

// SignupInput carries the signup payload. PasswordConfirm is validated and
// then discarded; only the hash is persisted.
type SignupInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Photo           string `json:"photo"`
	Role            string `json:"role"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// UpdateMeInput is the allow-list for self-service profile updates. Role,
// password and active can never pass through this endpoint.
type UpdateMeInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo"`
}

func userColl() *mongo.Collection {
	return db.GetCollection(DatabaseName, usersCollection)
}

// activeUsers merges the soft-delete predicate into a filter. Every default
// read on the users collection goes through this; GetUserByIDAny is the
// named bypass.
func activeUsers(filter bson.M) bson.M {
	if filter == nil {
		filter = bson.M{}
	}
	filter["active"] = bson.M{"$ne": false}
	return filter
}

// duplicateKeyAs translates a unique-index violation into the domain
// sentinel for the field the index guards; other errors pass through.
func duplicateKeyAs(err, sentinel error) error {
	if mongo.IsDuplicateKeyError(err) {
		return sentinel
	}
	return err
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(hash), err
}

// VerifyPassword compares a plain password with a hashed password
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidateSignup checks required fields and the password/confirm match
// before any hashing happens.
func ValidateSignup(in SignupInput) error {
	if in.Name == "" || in.Email == "" || in.Password == "" || in.PasswordConfirm == "" {
		return fmt.Errorf("%w: name, email, password and passwordConfirm are required", ErrInvalidInput)
	}
	if len(in.Password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}
	if in.Password != in.PasswordConfirm {
		return ErrPasswordMismatch
	}
	if in.Role != "" && !models.ValidRole(in.Role) {
		return fmt.Errorf("%w: invalid role %q", ErrInvalidInput, in.Role)
	}
	return nil
}

// Signup registers a new user. The plaintext confirmation field never
// reaches the database.
func Signup(in SignupInput) (models.User, error) {
	if err := ValidateSignup(in); err != nil {
		return models.User{}, err
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	var existing models.User
	err := userColl().FindOne(context.TODO(), bson.M{"email": email}).Decode(&existing)
	if err == nil {
		return models.User{}, ErrEmailInUse
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return models.User{}, err
	}

	role := in.Role
	if role == "" {
		role = models.RoleStudent
	}
	photo := in.Photo
	if photo == "" {
		photo = "default.jpg"
	}

	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      in.Name,
		Email:     email,
		Photo:     photo,
		Role:      role,
		Password:  hashed,
		Active:    true,
		CreatedAt: time.Now(),
	}
	if _, err := userColl().InsertOne(context.TODO(), user); err != nil {
		// The precheck above can race another signup; the unique index on
		// email is the real arbiter.
		return models.User{}, duplicateKeyAs(err, ErrEmailInUse)
	}
	return user, nil
}

// Login authenticates by email and password.
func Login(email, password string) (models.User, error) {
	if email == "" || password == "" {
		return models.User{}, errors.New("please provide email and password")
	}

	var user models.User
	filter := activeUsers(bson.M{"email": strings.ToLower(email)})
	err := userColl().FindOne(context.TODO(), filter).Decode(&user)
	if err != nil {
		return models.User{}, ErrUserNotFound
	}

	if !VerifyPassword(password, user.Password) {
		return models.User{}, ErrWrongPassword
	}
	return user, nil
}

// GetUserByID resolves an ID to a live user; soft-deleted users are not
// found here.
func GetUserByID(id string) (models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, ErrUserNotFound
	}

	var user models.User
	err = userColl().FindOne(context.TODO(), activeUsers(bson.M{"_id": objID})).Decode(&user)
	if err != nil {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

// GetUserByIDAny bypasses the active filter. Not wired to any route; it
// exists for admin tooling that must see deactivated accounts.
func GetUserByIDAny(id string) (models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, ErrUserNotFound
	}

	var user models.User
	err = userColl().FindOne(context.TODO(), bson.M{"_id": objID}).Decode(&user)
	if err != nil {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

// ListUsers returns all active users.
func ListUsers() ([]models.User, error) {
	cursor, err := userColl().Find(context.TODO(), activeUsers(nil))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(context.TODO())

	var users []models.User
	if err := cursor.All(context.TODO(), &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateMe applies the whitelisted profile fields to the given user.
func UpdateMe(userID string, in UpdateMeInput) (models.User, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return models.User{}, ErrUserNotFound
	}

	set := bson.M{}
	if in.Name != "" {
		set["name"] = in.Name
	}
	if in.Email != "" {
		set["email"] = strings.ToLower(strings.TrimSpace(in.Email))
	}
	if in.Photo != "" {
		set["photo"] = in.Photo
	}
	if len(set) == 0 {
		return GetUserByID(userID)
	}

	var updated models.User
	err = userColl().FindOneAndUpdate(
		context.TODO(),
		activeUsers(bson.M{"_id": objID}),
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		// An email change can collide with another account.
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, ErrEmailInUse
		}
		return models.User{}, ErrUserNotFound
	}
	return updated, nil
}

// DeleteMe soft-deletes the account. The record stays in the collection but
// disappears from every default read.
func DeleteMe(userID string) error {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrUserNotFound
	}

	result, err := userColl().UpdateOne(
		context.TODO(),
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{"active": false}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ForgotPassword issues a reset token for the account behind email and mails
// the plain token. Only the hash and expiry are persisted.
func ForgotPassword(email, resetURLBase string) error {
	var user models.User
	filter := activeUsers(bson.M{"email": strings.ToLower(email)})
	err := userColl().FindOne(context.TODO(), filter).Decode(&user)
	if err != nil {
		return ErrUserNotFound
	}

	plain, hash, expires, err := NewResetToken()
	if err != nil {
		return err
	}

	_, err = userColl().UpdateOne(
		context.TODO(),
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{
			"password_reset_token":   hash,
			"password_reset_expires": expires,
		}},
	)
	if err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/api/v1/users/resetpassword/%s", resetURLBase, plain)
	message := fmt.Sprintf(
		"Forgot your password? Submit a PATCH request with your new password and confirm it to: %s. If you didn't request this, please ignore this email.",
		resetURL,
	)
	if err := utils.SendEmail(user.Name, user.Email, "Your password reset token (valid for 10 minutes)", message); err != nil {
		// A reset token nobody received is useless; clear it so the next
		// attempt starts clean.
		userColl().UpdateOne(
			context.TODO(),
			bson.M{"_id": user.ID},
			bson.M{"$unset": bson.M{"password_reset_token": "", "password_reset_expires": ""}},
		)
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	return nil
}

// ResetPassword completes the reset flow: the plain token must hash to the
// stored value and the stored expiry must still be in the future.
func ResetPassword(plainToken, password, passwordConfirm string) (models.User, error) {
	if password == "" || passwordConfirm == "" {
		return models.User{}, errors.New("password and passwordConfirm are required")
	}
	if len(password) < 8 {
		return models.User{}, errors.New("password must be at least 8 characters")
	}
	if password != passwordConfirm {
		return models.User{}, ErrPasswordMismatch
	}

	var user models.User
	err := userColl().FindOne(context.TODO(), bson.M{
		"password_reset_token": HashResetToken(plainToken),
	}).Decode(&user)
	if err != nil {
		return models.User{}, ErrResetTokenExpired
	}
	if !VerifyResetToken(plainToken, user.PasswordResetToken, user.PasswordResetExpires) {
		return models.User{}, ErrResetTokenExpired
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	_, err = userColl().UpdateOne(
		context.TODO(),
		bson.M{"_id": user.ID},
		bson.M{
			"$set":   bson.M{"password": hashed, "password_changed_at": time.Now()},
			"$unset": bson.M{"password_reset_token": "", "password_reset_expires": ""},
		},
	)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// UpdatePassword changes the password of an authenticated user after
// verifying the current one.
func UpdatePassword(userID, currentPassword, password, passwordConfirm string) (models.User, error) {
	if password != passwordConfirm {
		return models.User{}, ErrPasswordMismatch
	}
	if len(password) < 8 {
		return models.User{}, errors.New("password must be at least 8 characters")
	}

	user, err := GetUserByID(userID)
	if err != nil {
		return models.User{}, err
	}
	if !VerifyPassword(currentPassword, user.Password) {
		return models.User{}, ErrWrongPassword
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	_, err = userColl().UpdateOne(
		context.TODO(),
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"password": hashed, "password_changed_at": time.Now()}},
	)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}
