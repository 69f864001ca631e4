package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"handly/internal/delivery/api/response"
	deliverycontext "handly/internal/delivery/context"
	domainerrors "handly/internal/domain/errors"
	"handly/internal/errors"
	"handly/internal/usecase"
)

// ProtectedHandler serves routes behind the auth middleware.
type ProtectedHandler struct {
	profiles usecase.ProfileUsecase
}

// NewProtectedHandler is the constructor for ProtectedHandler, injected by Fx.
func NewProtectedHandler(profiles usecase.ProfileUsecase) *ProtectedHandler {
	return &ProtectedHandler{profiles: profiles}
}

// ProfileResponse is returned by GET /protected/profile.
type ProfileResponse struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	ProfilePic string `json:"profile_pic"`
}

// WhoAmI echoes the token subject.
func (h *ProtectedHandler) WhoAmI(c echo.Context) error {
	subject, ok := deliverycontext.GetSubject(c)
	if !ok {
		return domainerrors.ErrTokenInvalid
	}

	return response.Success(c, http.StatusOK, map[string]string{"user_key": subject})
}

// Profile returns the stored record of the token subject.
func (h *ProtectedHandler) Profile(c echo.Context) error {
	subject, ok := deliverycontext.GetSubject(c)
	if !ok {
		return domainerrors.ErrTokenInvalid
	}

	credential, err := h.profiles.GetProfile(c.Request().Context(), subject)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, &ProfileResponse{
		Name:       credential.Name,
		Email:      credential.Email,
		Role:       credential.Role.String(),
		ProfilePic: credential.ProfilePic,
	})
}
