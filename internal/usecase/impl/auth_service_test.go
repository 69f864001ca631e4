package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"handly/config"
	"handly/internal/domain/entity"
	domainerrors "handly/internal/domain/errors"
	"handly/internal/domain/repository"
	"handly/internal/domain/service"
	"handly/internal/infra/auth"
	mockRepo "handly/internal/mocks/repository"
	mockService "handly/internal/mocks/service"
	mockUsecase "handly/internal/mocks/usecase"
	"handly/internal/usecase"
	"handly/internal/usecase/validation"
)

type authServiceFixtures struct {
	service       usecase.AuthUsecase
	validator     *mockUsecase.MockCredentialValidator
	authenticator *mockUsecase.MockAuthenticator
	repo          *mockRepo.MockCredentialRepository
	hasher        *mockService.MockPasswordHasher
	tokens        *mockService.MockTokenService
	publisher     *mockService.MockEventPublisher
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	f := authServiceFixtures{
		validator:     mockUsecase.NewMockCredentialValidator(t),
		authenticator: mockUsecase.NewMockAuthenticator(t),
		repo:          mockRepo.NewMockCredentialRepository(t),
		hasher:        mockService.NewMockPasswordHasher(t),
		tokens:        mockService.NewMockTokenService(t),
		publisher:     mockService.NewMockEventPublisher(t),
	}

	f.service = NewAuthService(AuthServiceParams{
		Validator:      f.validator,
		Authenticator:  f.authenticator,
		CredentialRepo: f.repo,
		Hasher:         f.hasher,
		TokenService:   f.tokens,
		Publisher:      f.publisher,
		Logger:         testLogger(),
	})

	return f
}

func providerInput() *usecase.RegisterInput {
	return &usecase.RegisterInput{
		Name:       "Maria Souza",
		Email:      "maria@exemplo.com",
		Password:   "senhaForte1",
		Identifier: "12345678901",
		Role:       "provider",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	input := providerInput()

	fx.validator.EXPECT().ValidateRegistration(ctx, input).Return(nil, nil)
	fx.hasher.EXPECT().Hash("senhaForte1").Return("$argon2id$hash", nil)
	fx.repo.EXPECT().Create(ctx, mock.MatchedBy(func(c *entity.Credential) bool {
		return c.Subject == "12345678901" &&
			c.Email == "maria@exemplo.com" &&
			c.PasswordHash == "$argon2id$hash" &&
			c.Role == entity.RoleProvider
	})).Return(nil)
	fx.publisher.EXPECT().PublishAccountEvent(ctx, mock.MatchedBy(func(e *service.AccountEvent) bool {
		return e.Type == service.AccountEventRegistered && e.Subject == "12345678901" && e.Role == "provider"
	})).Return(nil)

	out, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "12345678901", out.Credential.Subject)
	assert.Equal(t, "$argon2id$hash", out.Credential.PasswordHash)
}

func TestAuthService_Register_CustomerGetsGeneratedSubject(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	input := providerInput()
	input.Role = "customer"
	input.Identifier = ""

	fx.validator.EXPECT().ValidateRegistration(ctx, input).Return(nil, nil)
	fx.hasher.EXPECT().Hash(input.Password).Return("$argon2id$hash", nil)
	fx.repo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Credential")).Return(nil)
	fx.publisher.EXPECT().PublishAccountEvent(ctx, mock.Anything).Return(nil)

	out, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	_, parseErr := uuid.Parse(out.Credential.Subject)
	assert.NoError(t, parseErr)
	assert.Equal(t, entity.RoleCustomer, out.Credential.Role)
}

func TestAuthService_Register_ValidationFailureHasNoSideEffects(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	input := providerInput()

	violations := domainerrors.ValidationErrors{{
		Field:    "name",
		Code:     domainerrors.CodeName,
		Message:  domainerrors.MessageMalformed,
		Category: domainerrors.CategoryFormat,
	}}
	fx.validator.EXPECT().ValidateRegistration(ctx, input).Return(violations, nil)

	out, err := fx.service.Register(ctx, input)

	assert.Nil(t, out)
	var got domainerrors.ValidationErrors
	require.True(t, errors.As(err, &got))
	assert.Equal(t, violations, got)
	// hasher, repo and publisher mocks carry no expectations
}

func TestAuthService_Register_ValidatorSystemError(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	input := providerInput()

	fx.validator.EXPECT().ValidateRegistration(ctx, input).Return(nil, errors.New("db down"))

	_, err := fx.service.Register(ctx, input)

	require.Error(t, err)
	var appErr domainerrors.AppError
	assert.False(t, errors.As(err, &appErr))
}

func TestAuthService_Register_HashFailure(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	input := providerInput()

	fx.validator.EXPECT().ValidateRegistration(ctx, input).Return(nil, nil)
	fx.hasher.EXPECT().Hash(input.Password).Return("", errors.New("entropy exhausted"))

	_, err := fx.service.Register(ctx, input)

	assert.ErrorIs(t, err, domainerrors.ErrPasswordHashFailed)
}

func TestAuthService_Register_DuplicateOnInsert(t *testing.T) {
	tests := []struct {
		name      string
		repoErr   error
		wantField string
		wantCode  string
	}{
		{name: "email", repoErr: repository.ErrDuplicateEmail, wantField: "email", wantCode: domainerrors.CodeEmail},
		{name: "subject", repoErr: repository.ErrDuplicateSubject, wantField: "cpf_cnpj", wantCode: domainerrors.CodeIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAuthService(t)
			ctx := context.Background()
			input := providerInput()

			fx.validator.EXPECT().ValidateRegistration(ctx, input).Return(nil, nil)
			fx.hasher.EXPECT().Hash(input.Password).Return("$argon2id$hash", nil)
			fx.repo.EXPECT().Create(ctx, mock.Anything).Return(errors.Wrap(tt.repoErr, "insert"))

			_, err := fx.service.Register(ctx, input)

			var got domainerrors.ValidationErrors
			require.True(t, errors.As(err, &got))
			require.Len(t, got, 1)
			assert.Equal(t, tt.wantField, got[0].Field)
			assert.Equal(t, tt.wantCode, got[0].Code)
			assert.Equal(t, domainerrors.CategoryConflict, got[0].Category)
		})
	}
}

func TestAuthService_Register_PublishFailureIsIgnored(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	input := providerInput()

	fx.validator.EXPECT().ValidateRegistration(ctx, input).Return(nil, nil)
	fx.hasher.EXPECT().Hash(input.Password).Return("$argon2id$hash", nil)
	fx.repo.EXPECT().Create(ctx, mock.Anything).Return(nil)
	fx.publisher.EXPECT().PublishAccountEvent(ctx, mock.Anything).Return(errors.New("broker unavailable"))

	out, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	assert.NotNil(t, out)
}

func TestAuthService_Login_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	input := &usecase.LoginInput{Email: "maria@exemplo.com", Password: "senhaForte1"}

	fx.validator.EXPECT().ValidateLogin(ctx, input).Return(nil)
	fx.authenticator.EXPECT().Authenticate(ctx, input.Email, input.Password).Return(&entity.Credential{Subject: "12345678901"}, nil)
	fx.tokens.EXPECT().IssueTokens("12345678901").Return(&service.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil)
	fx.tokens.EXPECT().AccessTokenTTL().Return(time.Hour)

	out, err := fx.service.Login(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, &usecase.TokenOutput{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		ExpiresIn:    3600,
	}, out)
}

func TestAuthService_Login_InvalidPayload(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	input := &usecase.LoginInput{Email: "", Password: "senhaForte1"}

	fx.validator.EXPECT().ValidateLogin(ctx, input).Return(domainerrors.ValidationErrors{{
		Field: "email", Code: domainerrors.CodeEmail, Message: domainerrors.MessageMissing,
	}})

	_, err := fx.service.Login(ctx, input)

	var got domainerrors.ValidationErrors
	require.True(t, errors.As(err, &got))
	assert.Equal(t, []string{domainerrors.CodeEmail}, got.Codes())
}

func TestAuthService_Login_BadCredentialsIssueNothing(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	input := &usecase.LoginInput{Email: "maria@exemplo.com", Password: "senhaErrada1"}

	fx.validator.EXPECT().ValidateLogin(ctx, input).Return(nil)
	fx.authenticator.EXPECT().Authenticate(ctx, input.Email, input.Password).Return(nil, domainerrors.ErrInvalidCredentials)

	out, err := fx.service.Login(ctx, input)

	assert.Nil(t, out)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Refresh_RejectsInvalidToken(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.tokens.EXPECT().VerifyToken("stale", service.TokenKindRefresh).Return(nil, errors.Wrap(domainerrors.ErrTokenInvalid, "expired"))

	out, err := fx.service.Refresh(ctx, &usecase.RefreshInput{RefreshToken: "stale"})

	assert.Nil(t, out)
	assert.Equal(t, domainerrors.ErrTokenInvalid, err)
}

// The refresh round trip runs against the real token service.
func TestAuthService_RefreshFlow(t *testing.T) {
	tokens, err := auth.NewJWTService(&config.Config{
		SecretKey: config.SecretKeyConfig{Signing: "refresh-flow-signing-secret"},
	}, testLogger())
	require.NoError(t, err)

	svc := NewAuthService(AuthServiceParams{TokenService: tokens, Logger: testLogger()})

	first, err := tokens.IssueTokens("12345678901")
	require.NoError(t, err)

	out, err := svc.Refresh(context.Background(), &usecase.RefreshInput{RefreshToken: first.RefreshToken})
	require.NoError(t, err)

	claims, err := tokens.VerifyToken(out.AccessToken, service.TokenKindAccess)
	require.NoError(t, err)
	assert.Equal(t, "12345678901", claims.SubjectID())

	// An access token cannot be used to refresh.
	_, err = svc.Refresh(context.Background(), &usecase.RefreshInput{RefreshToken: out.AccessToken})
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

// Registration and login run against the real pipeline and hasher; only
// storage is mocked.
func TestAuthService_RegisterThenLogin(t *testing.T) {
	repo := mockRepo.NewMockCredentialRepository(t)
	publisher := mockService.NewMockEventPublisher(t)
	ctx := context.Background()

	hasher, err := auth.NewArgon2Hasher(config.Argon2Config{
		Memory: 8 * 1024, Time: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32,
	})
	require.NoError(t, err)
	tokens, err := auth.NewJWTService(&config.Config{
		SecretKey: config.SecretKeyConfig{Signing: "register-login-signing-secret"},
	}, testLogger())
	require.NoError(t, err)

	svc := NewAuthService(AuthServiceParams{
		Validator: validation.New(repo, false),
		Authenticator: NewAuthenticator(AuthenticatorParams{
			CredentialRepo: repo, Hasher: hasher, Logger: testLogger(),
		}),
		CredentialRepo: repo,
		Hasher:         hasher,
		TokenService:   tokens,
		Publisher:      publisher,
		Logger:         testLogger(),
	})

	var stored *entity.Credential
	repo.EXPECT().ExistsByEmail(ctx, "maria@exemplo.com").Return(false, nil)
	repo.EXPECT().Create(ctx, mock.Anything).Run(func(_ context.Context, c *entity.Credential) {
		stored = c
	}).Return(nil)
	publisher.EXPECT().PublishAccountEvent(ctx, mock.Anything).Return(nil)

	_, err = svc.Register(ctx, providerInput())
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "senhaForte1", stored.PasswordHash)

	repo.EXPECT().FindByEmail(ctx, "maria@exemplo.com").Return(stored, nil)

	out, err := svc.Login(ctx, &usecase.LoginInput{Email: "maria@exemplo.com", Password: "senhaForte1"})
	require.NoError(t, err)

	claims, err := tokens.VerifyToken(out.AccessToken, service.TokenKindAccess)
	require.NoError(t, err)
	assert.Equal(t, "12345678901", claims.SubjectID())
	assert.EqualValues(t, 3600, out.ExpiresIn)
}
