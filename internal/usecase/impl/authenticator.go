// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"sync"

	"go.uber.org/fx"

	deliverycontext "handly/internal/delivery/context"
	"handly/internal/domain/entity"
	domainerrors "handly/internal/domain/errors"
	"handly/internal/domain/repository"
	"handly/internal/domain/service"
	"handly/internal/errors"
	"handly/internal/usecase"
)

// authenticator implements usecase.Authenticator.
type authenticator struct {
	credentialRepo repository.CredentialRepository
	hasher         service.PasswordHasher
	logger         *slog.Logger

	// decoy is hashed with the configured parameters on the first unknown
	// email and checked against from then on.
	decoyOnce sync.Once
	decoy     string
}

const decoyPassword = "handly-decoy-password"

// AuthenticatorParams holds dependencies for the authenticator, injected by Fx.
type AuthenticatorParams struct {
	fx.In

	CredentialRepo repository.CredentialRepository
	Hasher         service.PasswordHasher
	Logger         *slog.Logger
}

// NewAuthenticator is the constructor for authenticator.
func NewAuthenticator(params AuthenticatorParams) usecase.Authenticator {
	return &authenticator{
		credentialRepo: params.CredentialRepo,
		hasher:         params.Hasher,
		logger:         params.Logger,
	}
}

// Authenticate returns the stored credential for email when password
// matches. An unknown email and a wrong password both yield
// ErrInvalidCredentials, unwrapped, so callers cannot tell them apart.
func (a *authenticator) Authenticate(ctx context.Context, email, password string) (*entity.Credential, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, a.logger)

	credential, err := a.credentialRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrCredentialNotFound) {
		logger.Debug("Login rejected", slog.String("reason", "unknown email"))
		a.checkDecoy(ctx, password)

		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find credential by email")
	}

	if !a.hasher.Check(password, credential.PasswordHash) {
		logger.Debug("Login rejected", slog.String("reason", "password mismatch"))

		return nil, domainerrors.ErrInvalidCredentials
	}

	return credential, nil
}

// checkDecoy spends one hash comparison so an unknown email costs about as
// much as a wrong password.
func (a *authenticator) checkDecoy(ctx context.Context, password string) {
	a.decoyOnce.Do(func() {
		decoy, err := a.hasher.Hash(decoyPassword)
		if err != nil {
			deliverycontext.GetLoggerOrDefault(ctx, a.logger).Warn("Failed to build decoy hash", slog.Any("error", err))

			return
		}
		a.decoy = decoy
	})

	a.hasher.Check(password, a.decoy)
}
