package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"ordbok-backend/application/ports"
	"ordbok-backend/pkg/common"
)

// DefaultReadinessTimeout bounds each readiness probe
const DefaultReadinessTimeout = 2 * time.Second

// HealthHandler serves liveness and readiness checks
type HealthHandler struct {
	checkers []ports.HealthChecker
	timeout  time.Duration
	logger   *zap.Logger
}

// NewHealthHandler creates a health handler over the given dependencies
func NewHealthHandler(checkers []ports.HealthChecker, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		checkers: checkers,
		timeout:  DefaultReadinessTimeout,
		logger:   logger,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	_ = common.RespondJSON(w, r, http.StatusOK, map[string]string{"status": "healthy"})
}

// Ready handles GET /ready. Every dependency is probed; any failure makes
// the service not ready.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string, len(h.checkers))
	ready := true

	for _, checker := range h.checkers {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		err := checker.Ping(ctx)
		cancel()

		if err != nil {
			ready = false
			checks[checker.Name()] = err.Error()
			h.logger.Warn("Readiness check failed", zap.String("dependency", checker.Name()), zap.Error(err))
			continue
		}
		checks[checker.Name()] = "ok"
	}

	status, code := "ready", http.StatusOK
	if !ready {
		status, code = "not ready", http.StatusServiceUnavailable
	}
	_ = common.RespondJSON(w, r, code, map[string]interface{}{
		"status": status,
		"checks": checks,
	})
}
