package middleware

import (
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"

	deliverycontext "handly/internal/delivery/context"
	domainerrors "handly/internal/domain/errors"
	"handly/internal/domain/service"
)

const bearerPrefix = "Bearer "

// AuthMiddleware admits requests that carry a valid access token.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, logger: logger}
}

// Authenticate rejects every failure with the same ErrTokenInvalid: the
// caller never learns whether the header, signature, expiry or kind was wrong.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return domainerrors.ErrTokenInvalid
		}

		claims, err := m.tokenSvc.VerifyToken(token, service.TokenKindAccess)
		if err != nil {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).
				Debug("Access token rejected", slog.String("path", c.Request().URL.Path))

			return domainerrors.ErrTokenInvalid
		}

		deliverycontext.SetSubject(c, claims.SubjectID())

		return next(c)
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <t>" header.
// The scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(bearerPrefix):])

	return token, token != ""
}
