// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"handly/internal/delivery/api/response"
	"handly/internal/domain/entity"
	domainerrors "handly/internal/domain/errors"
	"handly/internal/errors"
	"handly/internal/usecase"
)

// AuthHandler serves registration, login and token refresh.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, logger: logger}
}

// UserResponse is the public view of a credential. The hash never leaves
// the server.
type UserResponse struct {
	CPFCNPJ    string    `json:"cpf_cnpj"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	ProfilePic string    `json:"profile_pic"`
	CreatedAt  time.Time `json:"created_at"`
}

func newUserResponse(c *entity.Credential) *UserResponse {
	return &UserResponse{
		CPFCNPJ:    c.Subject,
		Name:       c.Name,
		Email:      c.Email,
		Role:       c.Role.String(),
		ProfilePic: c.ProfilePic,
		CreatedAt:  c.CreatedAt,
	}
}

// Register handles POST /users.
func (h *AuthHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrValidationFailed
	}

	output, err := h.uc.Register(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newUserResponse(output.Credential))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrValidationFailed
	}

	output, err := h.uc.Login(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output)
}

// Refresh handles POST /auth/refresh. An unreadable body or an absent token
// is rejected like any other unusable token.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var input usecase.RefreshInput
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrTokenInvalid
	}
	if err := c.Validate(&input); err != nil {
		return domainerrors.ErrTokenInvalid
	}

	output, err := h.uc.Refresh(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output)
}
