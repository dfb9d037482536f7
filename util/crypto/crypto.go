// Package crypto wraps bcrypt for the panel's password hashes.
package crypto

import (
	"golang.org/x/crypto/bcrypt"
)

// HashCost matches the cost of the hashes the panel was first deployed with.
const HashCost = 8

// HashPasswordAsBcrypt returns a salted bcrypt hash of password.
func HashPasswordAsBcrypt(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	return string(hash), err
}

// CheckPasswordHash reports whether password matches hash. The comparison is
// constant-time; a malformed hash never matches.
func CheckPasswordHash(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
