package impl

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	deliverycontext "handly/internal/delivery/context"
	"handly/internal/domain/entity"
	domainerrors "handly/internal/domain/errors"
	"handly/internal/domain/repository"
	"handly/internal/errors"
	"handly/internal/usecase"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	credentialRepo repository.CredentialRepository
	logger         *slog.Logger
}

// ProfileServiceParams holds dependencies for profileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	CredentialRepo repository.CredentialRepository
	Logger         *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		credentialRepo: params.CredentialRepo,
		logger:         params.Logger,
	}
}

// GetProfile looks up the credential a verified token subject belongs to.
func (srv *profileService) GetProfile(ctx context.Context, subject string) (*entity.Credential, error) {
	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Debug("Getting profile", slog.String("subject", subject))

	credential, err := srv.credentialRepo.FindBySubject(ctx, subject)
	if errors.Is(err, repository.ErrCredentialNotFound) {
		return nil, domainerrors.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get profile")
	}

	return credential, nil
}
