package context

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newEchoContext() echo.Context {
	return echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
}

func TestRequestID(t *testing.T) {
	c := newEchoContext()
	generated := GetRequestID(c)
	assert.Len(t, generated, 36)
	assert.NotEqual(t, generated, GetRequestID(c))

	SetRequestID(c, "req-1")
	assert.Equal(t, "req-1", GetRequestID(c))

	c = newEchoContext()
	c.SetRequest(c.Request().WithContext(WithRequestID(c.Request().Context(), "req-2")))
	assert.Equal(t, "req-2", GetRequestID(c))
	assert.Equal(t, "req-2", GetRequestIDFromContext(c.Request().Context()))
	assert.Empty(t, GetRequestIDFromContext(context.Background()))
}

func TestLogger(t *testing.T) {
	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))
	scoped := fallback.With(slog.String("request_id", "req-1"))

	assert.Nil(t, GetLogger(context.Background()))
	assert.Same(t, fallback, GetLoggerOrDefault(context.Background(), fallback))
	assert.Same(t, scoped, GetLoggerOrDefault(WithLogger(context.Background(), scoped), fallback))
}

func TestSubject(t *testing.T) {
	c := newEchoContext()
	_, ok := GetSubject(c)
	assert.False(t, ok)

	SetSubject(c, "")
	_, ok = GetSubject(c)
	assert.False(t, ok)

	SetSubject(c, "12345678901")
	subject, ok := GetSubject(c)
	assert.True(t, ok)
	assert.Equal(t, "12345678901", subject)
}
