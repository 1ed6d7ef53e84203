package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/yndnr/redikv/internal/infra/buildinfo"
	"github.com/yndnr/redikv/internal/storage/memory"
	"github.com/yndnr/redikv/internal/telemetry/logger"
	"github.com/yndnr/redikv/internal/telemetry/metric"
)

// DefaultMetricsPath is used when RouterConfig.MetricsPath is empty.
const DefaultMetricsPath = "/metrics"

// StatsSource reports keyspace counters.
type StatsSource interface {
	Stats() memory.Stats
}

// RouterConfig holds the dependencies of the admin routes.
type RouterConfig struct {
	// Metrics serves the Prometheus endpoint. Nil disables it.
	Metrics     *metric.Registry
	MetricsPath string

	// Stats backs /stats. Nil disables it.
	Stats StatsSource

	// Ready reports readiness. Nil means always ready.
	Ready func() bool

	// Connections reports open client connections for /stats. May be nil.
	Connections func() int

	Logger logger.Logger
}

// NewRouter builds the admin handler.
func NewRouter(cfg RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.Discard()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", handleHealth)
	mux.HandleFunc("GET /ready", readyHandler(cfg.Ready))
	if cfg.Stats != nil {
		mux.HandleFunc("GET /stats", statsHandler(cfg.Stats, cfg.Connections))
	}
	if cfg.Metrics != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = DefaultMetricsPath
		}
		mux.Handle("GET "+path, cfg.Metrics.Handler())
	}

	return Chain(mux, Recover(log), RequestID(), AccessLog(log))
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func readyHandler(ready func() bool) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if ready != nil && !ready() {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// StatsResponse is the body of GET /stats.
type StatsResponse struct {
	Keys         int            `json:"keys"`
	Hashes       int            `json:"hashes"`
	Fields       int            `json:"fields"`
	Shards       int            `json:"shards"`
	MaxShardKeys int            `json:"max_shard_keys"`
	Connections  int            `json:"connections"`
	Build        buildinfo.Info `json:"build"`
}

func statsHandler(src StatsSource, conns func() int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		st := src.Stats()
		body := StatsResponse{
			Keys:         st.Keys,
			Hashes:       st.Hashes,
			Fields:       st.Fields,
			Shards:       st.Shards,
			MaxShardKeys: st.MaxShardKeys,
			Build:        buildinfo.Get(),
		}
		if conns != nil {
			body.Connections = conns()
		}
		writeJSON(w, http.StatusOK, body)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
