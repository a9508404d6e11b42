package api

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"onboarding/backend/internal/config"
	"onboarding/backend/internal/repository"
)

// NewEcho builds the Echo application with middleware and all REST routes
// mounted under /api/v1.
func NewEcho(cfg *config.Config, store repository.Store) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.Debug

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	h := NewHandler(cfg, store)

	v1 := e.Group("/api/v1")
	v1.GET("/health", h.HandleHealth)
	v1.GET("/health/ping", h.HandlePing)
	v1.GET("/skin-cancer", h.HandleListSkinCancer)

	return e
}
