package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// HealthCheck handles GET /health
// @Summary Health check
// @Description Returns service health, Postgres connectivity, and Redis cache availability
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string "Service is healthy"
// @Failure 503 {object} map[string]string "Backing store unreachable"
// @Router /health [get]
func (h *LinkHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{
		"status":   "healthy",
		"database": "connected",
		"redis":    "disabled",
	}

	if h.store == nil {
		status["status"] = "unhealthy"
		status["database"] = "unconfigured"
	} else if err := h.store.Ping(ctx); err != nil {
		log.Error().Err(err).Msg("Database health check failed")
		status["status"] = "unhealthy"
		status["database"] = "unavailable"
	}

	if h.redis != nil {
		status["redis"] = "connected"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			// Cache loss degrades latency, not correctness
			log.Warn().Err(err).Msg("Redis health check failed")
			status["redis"] = "unavailable"
		}
	}

	code := http.StatusOK
	if status["status"] != "healthy" {
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(status); err != nil {
		log.Error().Err(err).Msg("Failed to encode health response")
	}
}

// CacheMetrics handles GET /cache/metrics
// @Summary Link cache performance metrics
// @Description Returns in-process cache metrics including hit rate and evictions
// @Tags System
// @Produce json
// @Success 200 {object} cache.MetricsSnapshot "Cache metrics"
// @Failure 503 {object} handler.ErrorResponse "Cache is disabled"
// @Router /cache/metrics [get]
func (h *LinkHandler) CacheMetrics(w http.ResponseWriter, r *http.Request) {
	if !h.config.Cache.Enabled || h.cache == nil {
		SendJSONError(w, http.StatusServiceUnavailable, errors.New("cache is disabled"), "")
		return
	}

	SendJSONSuccess(w, http.StatusOK, h.cache.GetMetricsSnapshot())
}
