package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"handly/internal/delivery/api/response"
)

// HealthCheck reports liveness only; it touches no dependency.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
