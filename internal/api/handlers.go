// Package api contains the HTTP handlers for the onboarding backend.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"onboarding/backend/internal/config"
	"onboarding/backend/internal/repository"
)

// Handler holds the dependencies for the REST API.
type Handler struct {
	cfg   *config.Config
	store repository.Store
}

// NewHandler creates a new Handler.
func NewHandler(cfg *config.Config, store repository.Store) *Handler {
	return &Handler{cfg: cfg, store: store}
}

// HealthStatus is the health check response.
type HealthStatus struct {
	Status       string                      `json:"status"`
	Version      string                      `json:"version"`
	Environment  string                      `json:"environment"`
	Timestamp    time.Time                   `json:"timestamp"`
	Dependencies map[string]DependencyStatus `json:"dependencies"`
}

// DependencyStatus reports the health of one external dependency.
type DependencyStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HandleHealth returns the application health including database
// connectivity. It always answers 200; a broken dependency is reported in
// the body.
// (GET /api/v1/health)
func (h *Handler) HandleHealth(c echo.Context) error {
	ctx := c.Request().Context()

	db := DependencyStatus{Status: "healthy", Message: "Connected successfully"}
	if err := h.store.Ping(ctx); err != nil {
		db = DependencyStatus{Status: "unhealthy", Message: err.Error()}
	}

	return c.JSON(http.StatusOK, HealthStatus{
		Status:      "healthy",
		Version:     h.cfg.AppVersion,
		Environment: h.cfg.Profile,
		Timestamp:   time.Now(),
		Dependencies: map[string]DependencyStatus{
			"database": db,
		},
	})
}

// HandlePing is a liveness check that needs no database connection.
// (GET /api/v1/health/ping)
func (h *Handler) HandlePing(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"ping": "pong"})
}

// HandleListSkinCancer returns skin cancer statistics filtered by the
// data_type, cancer_group, year, sex, age_group and limit query parameters.
// (GET /api/v1/skin-cancer)
func (h *Handler) HandleListSkinCancer(c echo.Context) error {
	ctx := c.Request().Context()

	filter := repository.SkinCancerFilter{
		DataType:    c.QueryParam("data_type"),
		CancerGroup: c.QueryParam("cancer_group"),
		Sex:         c.QueryParam("sex"),
		AgeGroup:    c.QueryParam("age_group"),
	}
	if v := c.QueryParam("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid year: "+v)
		}
		filter.Year = year
	}
	if v := c.QueryParam("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid limit: "+v)
		}
		filter.Limit = limit
	}

	records, err := h.store.ListSkinCancerRecords(ctx, filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, records)
}
