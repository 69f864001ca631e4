package impl

import (
	"context"
	"log/slog"
	"time"

	"go.uber.org/fx"

	deliverycontext "handly/internal/delivery/context"
	"handly/internal/domain/entity"
	domainerrors "handly/internal/domain/errors"
	"handly/internal/domain/repository"
	"handly/internal/domain/service"
	"handly/internal/errors"
	"handly/internal/usecase"
)

// authService implements the AuthUsecase interface.
type authService struct {
	validator      usecase.CredentialValidator
	authenticator  usecase.Authenticator
	credentialRepo repository.CredentialRepository
	hasher         service.PasswordHasher
	tokenService   service.TokenService
	publisher      service.EventPublisher
	now            func() time.Time
	logger         *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	Validator      usecase.CredentialValidator
	Authenticator  usecase.Authenticator
	CredentialRepo repository.CredentialRepository
	Hasher         service.PasswordHasher
	TokenService   service.TokenService
	Publisher      service.EventPublisher
	Logger         *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		validator:      params.Validator,
		authenticator:  params.Authenticator,
		credentialRepo: params.CredentialRepo,
		hasher:         params.Hasher,
		tokenService:   params.TokenService,
		publisher:      params.Publisher,
		now:            time.Now,
		logger:         params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register validates the payload, hashes the password and stores the
// credential. Nothing is hashed or written when validation fails.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	violations, err := srv.validator.ValidateRegistration(ctx, input)
	if err != nil {
		srv.log(ctx).Error("Registration validation failed", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to validate registration")
	}
	if len(violations) > 0 {
		srv.log(ctx).Debug("Registration rejected", slog.Any("codes", violations.Codes()))

		return nil, violations
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	credential := &entity.Credential{
		Subject:      input.Identifier,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         entity.Role(input.Role),
	}
	if credential.Subject == "" {
		credential.Subject = entity.NewCustomerSubject()
	}
	if !credential.HasValidSubject() {
		return nil, errors.Wrap(domainerrors.ErrInternalError, "provider credential without subject")
	}

	if err := srv.credentialRepo.Create(ctx, credential); err != nil {
		if conflict := conflictFromDuplicate(err); conflict != nil {
			srv.log(ctx).Info("Registration lost a uniqueness race", slog.String("email", credential.Email))

			return nil, conflict
		}

		srv.log(ctx).Error("Failed to create credential", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create credential")
	}

	srv.publishRegistered(ctx, credential)

	srv.log(ctx).Info("Account registered", slog.String("role", credential.Role.String()))

	return &usecase.RegisterOutput{Credential: credential}, nil
}

// Login validates the payload, authenticates and issues a token pair.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.TokenOutput, error) {
	if violations := srv.validator.ValidateLogin(ctx, input); len(violations) > 0 {
		return nil, violations
	}

	credential, err := srv.authenticator.Authenticate(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	return srv.issue(credential.Subject)
}

// Refresh exchanges a valid refresh token for a brand-new pair. Expiries
// are recomputed from now, so a session refreshed often enough never ends.
func (srv *authService) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.TokenOutput, error) {
	claims, err := srv.tokenService.VerifyToken(input.RefreshToken, service.TokenKindRefresh)
	if err != nil {
		srv.log(ctx).Debug("Refresh rejected", slog.Any("error", err))

		return nil, domainerrors.ErrTokenInvalid
	}

	return srv.issue(claims.SubjectID())
}

func (srv *authService) issue(subject string) (*usecase.TokenOutput, error) {
	pair, err := srv.tokenService.IssueTokens(subject)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue tokens")
	}

	return &usecase.TokenOutput{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    usecase.TokenTypeBearer,
		ExpiresIn:    int64(srv.tokenService.AccessTokenTTL() / time.Second),
	}, nil
}

// publishRegistered is best effort: a broker outage must not undo a
// committed registration.
func (srv *authService) publishRegistered(ctx context.Context, credential *entity.Credential) {
	event := &service.AccountEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		Type:       service.AccountEventRegistered,
		Subject:    credential.Subject,
		Role:       credential.Role.String(),
		OccurredAt: srv.now().UTC(),
	}

	if err := srv.publisher.PublishAccountEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish account event",
			slog.String("type", string(event.Type)),
			slog.Any("error", err),
		)
	}
}

func conflictFromDuplicate(err error) domainerrors.ValidationErrors {
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		return domainerrors.ValidationErrors{{
			Field:    "email",
			Code:     domainerrors.CodeEmail,
			Message:  domainerrors.MessageEmailTaken,
			Category: domainerrors.CategoryConflict,
		}}
	case errors.Is(err, repository.ErrDuplicateSubject):
		return domainerrors.ValidationErrors{{
			Field:    "cpf_cnpj",
			Code:     domainerrors.CodeIdentifier,
			Message:  domainerrors.MessageIdentifierTaken,
			Category: domainerrors.CategoryConflict,
		}}
	default:
		return nil
	}
}
