// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"handly/internal/domain/entity"
)

var (
	// ErrCredentialNotFound is returned when no stored credential matches a lookup.
	ErrCredentialNotFound = errors.New("credential not found")

	// ErrDuplicateEmail and ErrDuplicateSubject are returned by Create when a
	// unique constraint rejects the insert, e.g. a concurrent registration.
	ErrDuplicateEmail   = errors.New("email already registered")
	ErrDuplicateSubject = errors.New("subject already registered")
)

// CredentialRepository is the narrow storage contract the auth core consumes.
// Implementations own their own timeouts and concurrency.
type CredentialRepository interface {
	// FindByEmail retrieves a credential by its unique email.
	// It returns ErrCredentialNotFound when no record matches.
	FindByEmail(ctx context.Context, email string) (*entity.Credential, error)

	// ExistsByEmail reports whether any credential already uses the email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// FindBySubject retrieves a credential by its subject identifier.
	// It returns ErrCredentialNotFound when no record matches.
	FindBySubject(ctx context.Context, subject string) (*entity.Credential, error)

	// Create persists a new credential and fills in generated timestamps.
	// It returns ErrDuplicateEmail or ErrDuplicateSubject on unique violations.
	Create(ctx context.Context, credential *entity.Credential) error
}
