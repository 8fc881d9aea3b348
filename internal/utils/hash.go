package utils

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost matches the cost existing bcrypt rows were written with.
const PasswordCost = 10

var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), PasswordCost)
	return string(b), err
}

// CheckPassword is false for any hashed value that is not bcrypt.
func CheckPassword(hashed, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}

// LooksHashed reports whether secret carries a bcrypt version prefix.
func LooksHashed(secret string) bool {
	for _, p := range bcryptPrefixes {
		if strings.HasPrefix(secret, p) {
			return true
		}
	}
	return false
}
