package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/mipp-portal/internal/middleware"
	"github.com/deppfellow/mipp-portal/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// HealthHandler reports whether PostgreSQL and Redis are reachable.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

type healthCheck struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]healthCheck `json:"checks"`
}

func (h *HealthHandler) recordError(attrs map[string]interface{}) {
	if app := h.server.LoggerService.GetApplication(); app != nil {
		attrs["operation"] = "health_check"
		app.RecordCustomEvent("HealthCheckError", attrs)
	}
}

func (h *HealthHandler) timeout() time.Duration {
	if obs := h.server.Config.Observability; obs != nil && obs.HealthChecks.Timeout > 0 {
		return obs.HealthChecks.Timeout
	}
	return 5 * time.Second
}

// enabled defaults to true when no observability block is loaded.
func (h *HealthHandler) enabled(name string) bool {
	obs := h.server.Config.Observability
	return obs == nil || obs.HealthCheckEnabled(name)
}

// probe runs one dependency check and records it under name.
func (h *HealthHandler) probe(logger zerolog.Logger, name string, ping func(ctx context.Context) error) healthCheck {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout())
	defer cancel()

	start := time.Now()
	err := ping(ctx)
	elapsed := time.Since(start)

	if err != nil {
		logger.Error().
			Err(err).
			Str("check", name).
			Dur("response_time", elapsed).
			Msg("health check failed")

		h.recordError(map[string]interface{}{
			"check_type":       name,
			"error_type":       name + "_unhealthy",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})

		return healthCheck{Status: "unhealthy", ResponseTime: elapsed.String(), Error: err.Error()}
	}

	logger.Debug().
		Str("check", name).
		Dur("response_time", elapsed).
		Msg("health check passed")

	return healthCheck{Status: "healthy", ResponseTime: elapsed.String()}
}

// CheckHealth answers 200 when every dependency responds and 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := healthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      map[string]healthCheck{},
	}

	if h.server.DB != nil && h.enabled("database") {
		response.Checks["database"] = h.probe(logger, "database", h.server.DB.Pool.Ping)
	}

	if h.server.Redis != nil && h.enabled("redis") {
		response.Checks["redis"] = h.probe(logger, "redis", func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		})
	}

	status := http.StatusOK
	for _, check := range response.Checks {
		if check.Status != "healthy" {
			status = http.StatusServiceUnavailable
			response.Status = "unhealthy"
		}
	}

	if status != http.StatusOK {
		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordError(map[string]interface{}{
			"check_type":        "overall",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})
	}

	if err := c.JSON(status, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}
