package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/M1doriya/Analysis-PRO/internal/buildinfo"
)

// HealthCheckHandler handles the health check endpoint
type HealthCheckHandler struct{}

// NewHealthCheckHandler creates a new health check handler
func NewHealthCheckHandler() *HealthCheckHandler {
	return &HealthCheckHandler{}
}

// HealthCheck adds the health check endpoint
// @Summary Health check
// @Description Check API liveness. The analysis engine is stateless, so a
// @Description responding process is a healthy process.
// @Tags Health
// @Produce json
// @Success 200 {object} object{status=string,version=string,time=string} "Service is healthy"
// @Router /health [get]
func (h *HealthCheckHandler) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": buildinfo.Version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
