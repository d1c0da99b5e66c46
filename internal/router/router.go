// Package router wires handlers and middleware onto the Echo instance.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/vallicrm/training-seat-disposition/internal/handler"
	"github.com/vallicrm/training-seat-disposition/internal/middleware"
)

// RegisterRoutes registers routes that need no authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the auth endpoints. Register, login, refresh
// and logout live under /v1/auth without a token; /v1/me requires one.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("ADMIN", "PLANNER"))
	auth.GET("/me", a.Me)
}

// RegisterDisposition registers the disposition endpoints under /v1,
// all behind JWT auth and the staff role check. rateLimit guards the
// generation endpoints; cache fronts the reads. Either may be nil.
func RegisterDisposition(e *echo.Echo, d *handler.DispositionHandler, s *handler.SeatEditHandler, jwtSecret string, rateLimit, cache echo.MiddlewareFunc) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("ADMIN", "PLANNER"))

	writeMW := []echo.MiddlewareFunc{}
	if rateLimit != nil {
		writeMW = append(writeMW, rateLimit)
	}
	readMW := []echo.MiddlewareFunc{}
	if cache != nil {
		readMW = append(readMW, cache)
	}

	// Generation and regeneration are the expensive writes.
	g.POST("/sessions/:id/disposition", d.Generate, writeMW...)
	g.PATCH("/sessions/:id/layout", d.ChangeBlock, writeMW...)

	// Reads.
	g.GET("/sessions/:id/layout", d.GetLayout, readMW...)
	g.GET("/sessions/:id/seats", d.GetSeats, readMW...)
	g.GET("/sessions/:id/history", d.GetHistory, readMW...)

	// Manual editing.
	g.POST("/sessions/:id/rows", s.AddRow)
	g.POST("/seats/:id/lock", s.ToggleLock)
	g.POST("/seats/:id/swap", s.Swap)
}
