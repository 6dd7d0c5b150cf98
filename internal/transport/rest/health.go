package rest

import (
	"context"
	"net/http"
	"time"
)

const healthTimeout = 3 * time.Second

type dbPinger interface {
	Ping(ctx context.Context) error
}

// openBatchCounter reports import batches that were started but never
// finished, which is what an interrupted import leaves behind.
type openBatchCounter interface {
	CountOpen(ctx context.Context) (int, error)
}

// HealthHandler serves /live, /ready and /health.
type HealthHandler struct {
	db      dbPinger
	imports openBatchCounter
	version string
}

func NewHealthHandler(db dbPinger, imports openBatchCounter, version string) *HealthHandler {
	return &HealthHandler{db: db, imports: imports, version: version}
}

// HealthResponse is the body of every health endpoint.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is one checked dependency. OpenBatches is only set for the
// import log.
type CompStatus struct {
	Status      string `json:"status"`
	Latency     string `json:"latency,omitempty"`
	OpenBatches *int   `json:"open_batches,omitempty"`
}

func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Ready answers 503 while the database is unreachable, so imports are not
// routed to an instance that would fail every entry.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	status, code := "ok", http.StatusOK
	if err := h.db.Ping(ctx); err != nil {
		status, code = "down", http.StatusServiceUnavailable
	}
	writeJSON(w, code, HealthResponse{Status: status, Timestamp: time.Now()})
}

// Health reports the database with its ping latency and the import log with
// the number of unfinished batches. Unfinished batches degrade the report
// but keep it at 200; only an unreachable dependency turns it into 503.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	resp := HealthResponse{
		Status:     "ok",
		Version:    h.version,
		Components: make(map[string]CompStatus, 2),
	}

	start := time.Now()
	if err := h.db.Ping(ctx); err != nil {
		resp.Components["database"] = CompStatus{Status: "down"}
		resp.Status = "down"
	} else {
		resp.Components["database"] = CompStatus{Status: "ok", Latency: time.Since(start).String()}
	}

	open, err := h.imports.CountOpen(ctx)
	switch {
	case err != nil:
		resp.Components["imports"] = CompStatus{Status: "down"}
		resp.Status = "down"
	case open > 0:
		resp.Components["imports"] = CompStatus{Status: "degraded", OpenBatches: &open}
		if resp.Status == "ok" {
			resp.Status = "degraded"
		}
	default:
		resp.Components["imports"] = CompStatus{Status: "ok", OpenBatches: &open}
	}

	code := http.StatusOK
	if resp.Status == "down" {
		code = http.StatusServiceUnavailable
	}
	resp.Timestamp = time.Now()
	writeJSON(w, code, resp)
}
