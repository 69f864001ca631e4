package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// bcryptVerifier checks hashes imported from the bcrypt-based store. New
// hashes are never written with it; the cost is read from the hash itself.
type bcryptVerifier struct{}

// Recognizes reports whether hash carries a bcrypt version prefix.
func (bcryptVerifier) Recognizes(hash string) bool {
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(hash, prefix) {
			return true
		}
	}

	return false
}

func (bcryptVerifier) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
