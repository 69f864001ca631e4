// Package context carries request-scoped values between the HTTP layer and
// the services: request id, child logger and the authenticated subject.
package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	KeyRequestID ContextKey = "request_id"
	KeyLogger    ContextKey = "logger"
	KeySubject   ContextKey = "subject"

	// HeaderXRequestID is the HTTP header name for request ID.
	HeaderXRequestID = "X-Request-Id"
)

func value[T comparable](ctx context.Context, key ContextKey) (T, bool) {
	var zero T
	v, ok := ctx.Value(key).(T)

	return v, ok && v != zero
}

func echoValue[T comparable](c echo.Context, key ContextKey) (T, bool) {
	var zero T
	v, ok := c.Get(string(key)).(T)

	return v, ok && v != zero
}

// GetRequestID returns the id set by the request-id middleware. Outside of
// it, e.g. for a bare echo context in tests, a fresh id is generated.
func GetRequestID(c echo.Context) string {
	if id, ok := echoValue[string](c, KeyRequestID); ok {
		return id
	}
	if id, ok := value[string](c.Request().Context(), KeyRequestID); ok {
		return id
	}

	return uuid.NewString()
}

// SetRequestID sets the request ID in echo.Context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// GetRequestIDFromContext returns "" when no id was attached.
func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := value[string](ctx, KeyRequestID)

	return id
}

// WithRequestID returns a new context with the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// GetLogger returns nil when no request logger was attached.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, _ := value[*slog.Logger](ctx, KeyLogger)

	return logger
}

// GetLoggerOrDefault prefers the request-scoped logger over fallback.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

// WithLogger returns a new context with the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

// SetSubject stores the verified token subject in echo.Context.
func SetSubject(c echo.Context, subject string) {
	c.Set(string(KeySubject), subject)
}

// GetSubject returns the subject set by the auth middleware.
func GetSubject(c echo.Context) (string, bool) {
	return echoValue[string](c, KeySubject)
}
