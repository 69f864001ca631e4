package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	deliverycontext "handly/internal/delivery/context"
	domainerrors "handly/internal/domain/errors"
	"handly/internal/domain/service"
	"handly/internal/errors"
	mockService "handly/internal/mocks/service"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{header: "Bearer abc", want: "abc", ok: true},
		{header: "bearer abc", want: "abc", ok: true},
		{header: "Bearer   abc  ", want: "abc", ok: true},
		{header: "Bearer ", ok: false},
		{header: "Bearer", ok: false},
		{header: "Basic abc", ok: false},
		{header: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, ok := bearerToken(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("sets subject", func(t *testing.T) {
		tokens := mockService.NewMockTokenService(t)
		claims := &service.Claims{Kind: service.TokenKindAccess}
		claims.Subject = "12345678901"
		tokens.EXPECT().VerifyToken("abc", service.TokenKindAccess).Return(claims, nil)

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer abc")
		c := e.NewContext(req, httptest.NewRecorder())

		var seen string
		err := NewAuthMiddleware(tokens, logger).Authenticate(func(c echo.Context) error {
			seen, _ = deliverycontext.GetSubject(c)

			return nil
		})(c)

		require.NoError(t, err)
		assert.Equal(t, "12345678901", seen)
	})

	t.Run("rejection never reaches handler", func(t *testing.T) {
		tokens := mockService.NewMockTokenService(t)
		tokens.EXPECT().VerifyToken("abc", service.TokenKindAccess).Return(nil, errors.New("token is expired"))

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer abc")
		c := e.NewContext(req, httptest.NewRecorder())

		err := NewAuthMiddleware(tokens, logger).Authenticate(func(echo.Context) error {
			t.Fatal("handler must not run")

			return nil
		})(c)

		assert.Same(t, domainerrors.ErrTokenInvalid, err)
	})
}

func TestErrorMiddleware_HandleHTTPError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
		wantLogged bool
	}{
		{
			name:       "validation details kept",
			err:        errors.WithStack(domainerrors.ValidationErrors{{Field: "name", Code: domainerrors.CodeName, Message: "m", Category: domainerrors.CategoryFormat}}),
			wantStatus: http.StatusBadRequest,
			wantBody:   `"details":[{"field":"name","code":"RN0001","message":"m","category":"format"}]`,
		},
		{
			name:       "unauthorized",
			err:        domainerrors.ErrTokenInvalid,
			wantStatus: http.StatusUnauthorized,
			wantBody:   `"code":"UNAUTHORIZED"`,
		},
		{
			name:       "database error logged, cause hidden",
			err:        domainerrors.NewDatabaseExecuteError(errors.New("relation users does not exist"), "find"),
			wantStatus: http.StatusInternalServerError,
			wantLogged: true,
		},
		{
			name:       "echo error",
			err:        echo.ErrMethodNotAllowed,
			wantStatus: http.StatusMethodNotAllowed,
			wantBody:   `"code":"HTTP_ERROR"`,
		},
		{
			name:       "unknown error",
			err:        errors.New("relation users does not exist"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `"code":"INTERNAL_ERROR"`,
			wantLogged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := &bytes.Buffer{}
			m := NewErrorMiddleware(slog.New(slog.NewTextHandler(logs, nil)))

			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/x", nil), rec)

			m.HandleHTTPError(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			assert.NotContains(t, rec.Body.String(), "relation users")
			assert.Equal(t, tt.wantLogged, logs.Len() > 0)
		})
	}
}
