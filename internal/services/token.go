package services

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every session-token failure: bad signature,
// malformed payload, expiry passed. Callers are not told which.
var ErrInvalidToken = errors.New("token is invalid or has expired")

const resetTokenTTL = 10 * time.Minute

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

func sessionTTL() time.Duration {
	if v := os.Getenv("JWT_EXPIRES_IN"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return 90 * 24 * time.Hour
}

// IssueSessionToken signs a JWT carrying the user ID.
func IssueSessionToken(userID string) (string, error) {
	secret := jwtSecret()
	if len(secret) == 0 {
		return "", fmt.Errorf("JWT_SECRET is not set")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"id":  userID,
		"iat": now.Unix(),
		"exp": now.Add(sessionTTL()).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifySessionToken checks signature and expiry and returns the user ID and
// issue time. Any failure surfaces as ErrInvalidToken.
func VerifySessionToken(tokenString string) (string, time.Time, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return "", time.Time{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", time.Time{}, ErrInvalidToken
	}
	userID, ok := claims["id"].(string)
	if !ok || userID == "" {
		return "", time.Time{}, ErrInvalidToken
	}

	var issuedAt time.Time
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		issuedAt = iat.Time
	}
	return userID, issuedAt, nil
}

// NewResetToken generates a password-reset token. The plain value goes to the
// user; only its hash and a short expiry are persisted, so a leaked database
// does not expose usable tokens.
func NewResetToken() (plain, hash string, expires time.Time, err error) {
	buf := make([]byte, 32)
	if _, err = rand.Read(buf); err != nil {
		return "", "", time.Time{}, fmt.Errorf("failed to generate reset token: %w", err)
	}
	plain = hex.EncodeToString(buf)
	return plain, HashResetToken(plain), time.Now().Add(resetTokenTTL), nil
}

// HashResetToken maps a plain reset token to its stored form.
func HashResetToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

// VerifyResetToken checks a supplied plain token against the stored hash and
// expiry. Expiry is strict: a token is dead the instant it passes.
func VerifyResetToken(plain, storedHash string, expires time.Time) bool {
	if plain == "" || storedHash == "" {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(HashResetToken(plain)), []byte(storedHash)) != 1 {
		return false
	}
	return time.Now().Before(expires)
}
