// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Credential is the stored identity of an account owner. It is written once at
// registration and only read afterwards.
type Credential struct {
	Subject      string    // Unique subject identifier, used as the JWT "sub". A CPF/CNPJ for providers.
	Name         string    // Display name.
	Email        string    // Unique login identifier.
	PasswordHash string    // Encoded password hash, never the plaintext.
	Role         Role      // Account kind.
	ProfilePic   string    // File name of the uploaded avatar, empty when none.
	CreatedAt    time.Time // Timestamp of when the account was created.
	UpdatedAt    time.Time // Timestamp of the last modification.
}

// HasValidSubject reports whether the record satisfies the role invariant:
// providers must carry a non-empty subject.
func (c *Credential) HasValidSubject() bool {
	if c.Role.RequiresIdentifier() {
		return c.Subject != ""
	}

	return true
}

// NewCustomerSubject returns an opaque subject for customers that registered
// without a tax identifier.
func NewCustomerSubject() string {
	return uuid.NewString()
}
