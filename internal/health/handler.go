// AngelaMos | 2026
// handler.go

package health

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/gigbook/internal/core"
)

const checkTimeout = 5 * time.Second

type Checker interface {
	Ping(ctx context.Context) error
}

type Config struct {
	DB            Checker
	Redis         Checker
	DBStats       func() core.DBPoolStats
	RedisStats    func() core.RedisPoolStats
	SchemaVersion func(ctx context.Context) (int64, error)
}

type Handler struct {
	db            Checker
	redis         Checker
	dbStats       func() core.DBPoolStats
	redisStats    func() core.RedisPoolStats
	schemaVersion func(ctx context.Context) (int64, error)
	ready         atomic.Bool
	shutdown      atomic.Bool
}

func NewHandler(cfg Config) *Handler {
	h := &Handler{
		db:            cfg.DB,
		redis:         cfg.Redis,
		dbStats:       cfg.DBStats,
		redisStats:    cfg.RedisStats,
		schemaVersion: cfg.SchemaVersion,
	}
	h.ready.Store(true)
	return h
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.Liveness)
	r.Get("/livez", h.Liveness)
	r.Get("/readyz", h.Readiness)
}

func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	if h.shutdown.Load() {
		h.writeStatus(w, http.StatusServiceUnavailable, StatusResponse{
			Status: "shutting_down",
		})
		return
	}

	h.writeStatus(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// Readiness pings both stores concurrently. Any failed check turns the
// response into a 503 "degraded".
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.shutdown.Load() {
		h.writeStatus(w, http.StatusServiceUnavailable, StatusResponse{
			Status: "shutting_down",
		})
		return
	}

	if !h.ready.Load() {
		h.writeStatus(w, http.StatusServiceUnavailable, StatusResponse{
			Status: "not_ready",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	checks := h.runHealthChecks(ctx)

	status := "ok"
	statusCode := http.StatusOK
	for _, check := range checks {
		if !check.Healthy {
			status = "degraded"
			statusCode = http.StatusServiceUnavailable
			break
		}
	}

	resp := ReadinessResponse{
		Status:  status,
		Checks:  checks,
		Pools:   h.poolStats(),
		Runtime: readRuntimeStats(),
	}

	if h.schemaVersion != nil {
		if version, err := h.schemaVersion(ctx); err == nil {
			resp.SchemaVersion = &version
		}
	}

	h.writeStatus(w, statusCode, resp)
}

func (h *Handler) runHealthChecks(ctx context.Context) []HealthCheck {
	probes := []struct {
		name    string
		checker Checker
	}{
		{"database", h.db},
		{"redis", h.redis},
	}

	var wg sync.WaitGroup
	checks := make([]HealthCheck, len(probes))

	for i, p := range probes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			checks[i] = ping(ctx, p.name, p.checker)
		}()
	}

	wg.Wait()
	return checks
}

func ping(ctx context.Context, name string, checker Checker) HealthCheck {
	check := HealthCheck{Name: name, Healthy: true}

	if checker == nil {
		check.Healthy = false
		check.Message = name + " checker not configured"
		return check
	}

	start := time.Now()
	err := checker.Ping(ctx)
	check.Latency = time.Since(start).String()

	if err != nil {
		check.Healthy = false
		check.Message = "ping failed"
	}

	return check
}

func (h *Handler) poolStats() *PoolStats {
	if h.dbStats == nil && h.redisStats == nil {
		return nil
	}

	stats := &PoolStats{}
	if h.dbStats != nil {
		db := h.dbStats()
		stats.Database = &db
	}
	if h.redisStats != nil {
		rs := h.redisStats()
		stats.Redis = &rs
	}
	return stats
}

func readRuntimeStats() RuntimeStats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return RuntimeStats{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		MemAlloc:     mem.Alloc,
		NumGC:        mem.NumGC,
	}
}

func (h *Handler) SetReady(ready bool) {
	h.ready.Store(ready)
}

func (h *Handler) SetShutdown(shutdown bool) {
	h.shutdown.Store(shutdown)
}

func (h *Handler) writeStatus(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(status)
	//nolint:errcheck // best-effort response
	_ = json.NewEncoder(w).Encode(data)
}

type StatusResponse struct {
	Status string `json:"status"`
}

type ReadinessResponse struct {
	Status        string        `json:"status"`
	Checks        []HealthCheck `json:"checks"`
	Pools         *PoolStats    `json:"pools,omitempty"`
	Runtime       RuntimeStats  `json:"runtime"`
	SchemaVersion *int64        `json:"schema_version,omitempty"`
}

type HealthCheck struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Latency string `json:"latency,omitempty"`
	Message string `json:"message,omitempty"`
}

type PoolStats struct {
	Database *core.DBPoolStats    `json:"database,omitempty"`
	Redis    *core.RedisPoolStats `json:"redis,omitempty"`
}

type RuntimeStats struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	MemAlloc     uint64 `json:"mem_alloc"`
	NumGC        uint32 `json:"num_gc"`
}
