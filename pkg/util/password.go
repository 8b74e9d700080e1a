package util

import (
	"golang.org/x/crypto/bcrypt"
)

// adminHashCost is the bcrypt cost for the admin credential hash
const adminHashCost = 12

// HashPassword produces a bcrypt hash suitable for the ADMIN_PASSWORD_HASH
// environment variable
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), adminHashCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword reports whether password matches the stored bcrypt hash
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
