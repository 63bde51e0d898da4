package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Checker reports whether a backing dependency is reachable.
type Checker interface {
	Check(ctx context.Context) error
}

// Checks names the dependencies reported by /health.
type Checks map[string]Checker

type HealthHandler struct {
	checks Checks
}

func NewHealthHandler(checks Checks) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// @Summary Health check
// @Description Check if the service and its queue backend are healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 503 {object} map[string]any
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	status := http.StatusOK
	deps := make(map[string]string, len(h.checks))
	for name, chk := range h.checks {
		if err := chk.Check(ctx); err != nil {
			deps[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}

	body := gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	}
	if status != http.StatusOK {
		body["status"] = "degraded"
		body["message"] = "A dependency is unavailable"
	}
	if len(deps) > 0 {
		body["dependencies"] = deps
	}
	c.JSON(status, body)
}
