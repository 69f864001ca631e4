// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"handly/internal/domain/entity"
	domainerrors "handly/internal/domain/errors"
)

// --- Input DTOs ---

// RegisterInput is the raw registration payload. The presence and format
// tags drive the two phases of the validation pipeline.
type RegisterInput struct {
	Name       string `json:"name" presence:"notblank" format:"max=100,personname"`
	Email      string `json:"email" presence:"notblank" format:"max=255,mailaddr"`
	Password   string `json:"password" presence:"notblank" format:"password"`
	Identifier string `json:"cpf_cnpj" presence:"identifier" format:"omitempty,taxid"`
	Role       string `json:"role" presence:"notblank" format:"role"`
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string `json:"email" presence:"notblank" format:"max=255,mailaddr"`
	Password string `json:"password" presence:"notblank" format:"password"`
}

// RefreshInput carries a refresh token to exchange for a new pair.
type RefreshInput struct {
	RefreshToken string `json:"refresh_token" validate:"required,notblank"`
}

// --- Output DTOs ---

// RegisterOutput returns the newly created credential record.
type RegisterOutput struct {
	Credential *entity.Credential
}

// TokenOutput is returned by both login and refresh.
type TokenOutput struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// TokenTypeBearer is the only token type handed out.
const TokenTypeBearer = "Bearer"

// AuthUsecase defines the interface for account and token operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*TokenOutput, error)
	Refresh(ctx context.Context, input *RefreshInput) (*TokenOutput, error)
}

// Authenticator turns an email/password pair into a stored credential. It
// never issues tokens.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*entity.Credential, error)
}

// CredentialValidator runs the registration and login rule checks. A nil
// result means the payload passed.
type CredentialValidator interface {
	ValidateRegistration(ctx context.Context, input *RegisterInput) (domainerrors.ValidationErrors, error)
	ValidateLogin(ctx context.Context, input *LoginInput) domainerrors.ValidationErrors
}
