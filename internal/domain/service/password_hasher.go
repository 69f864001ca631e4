// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm, keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password. Two calls with
	// the same input return different strings. An error means the entropy
	// source failed and is not a user-facing condition.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a stored hash in constant time.
	// Malformed hashes yield false, never an error.
	Check(password, hash string) bool
}
