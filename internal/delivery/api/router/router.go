// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"handly/internal/delivery/api/middleware"
	"handly/internal/delivery/api/router/handler"
)

type RouterParams struct {
	fx.In

	AuthHandler      *handler.AuthHandler
	ProtectedHandler *handler.ProtectedHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler      *handler.AuthHandler
	protectedHandler *handler.ProtectedHandler
	authMiddleware   *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:      params.AuthHandler,
		protectedHandler: params.ProtectedHandler,
		authMiddleware:   params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	e.POST("/users", r.authHandler.Register)

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/refresh", r.authHandler.Refresh)
	}

	protectedGroup := e.Group("/protected")
	protectedGroup.Use(r.authMiddleware.Authenticate)
	{
		protectedGroup.GET("", r.protectedHandler.WhoAmI)
		protectedGroup.GET("/profile", r.protectedHandler.Profile)
	}
}
