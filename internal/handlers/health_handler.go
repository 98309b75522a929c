package handlers

import (
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskhive/taskhive/internal/database"
	redisclient "github.com/taskhive/taskhive/internal/redis"
)

type HealthHandler struct {
	pool    *pgxpool.Pool
	redis   *redisclient.Client
	started time.Time
}

func NewHealthHandler(pool *pgxpool.Pool, redis *redisclient.Client) *HealthHandler {
	return &HealthHandler{
		pool:    pool,
		redis:   redis,
		started: time.Now(),
	}
}

// Root answers the unauthenticated landing probe.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"service": "taskhive",
		"status":  "running",
	})
}

// Health reports the backing store status. Degraded dependencies flip the
// status but the endpoint itself still answers 200 so probes can read the
// detail.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	checks := map[string]interface{}{}

	if h.pool != nil {
		if err := h.pool.Ping(r.Context()); err != nil {
			status = "degraded"
			checks["database"] = map[string]interface{}{"status": "down", "error": err.Error()}
		} else {
			checks["database"] = map[string]interface{}{"status": "up", "pool": database.Stats(h.pool)}
		}
	} else {
		checks["database"] = map[string]interface{}{"status": "up", "backend": "memory"}
	}

	if h.redis != nil {
		if err := h.redis.Ping(r.Context()); err != nil {
			status = "degraded"
			checks["redis"] = map[string]interface{}{"status": "down", "error": err.Error()}
		} else {
			checks["redis"] = map[string]interface{}{"status": "up", "pool": h.redis.PoolStats()}
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": status,
		"uptime": time.Since(h.started).String(),
		"checks": checks,
	})
}
