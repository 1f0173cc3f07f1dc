package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/bher20/pricelookup/internal/api/swagger"
	"github.com/bher20/pricelookup/internal/metrics"
	"github.com/bher20/pricelookup/internal/prices"
	"github.com/bher20/pricelookup/internal/storage"
	"github.com/bher20/pricelookup/internal/ui"
)

// DefaultMaxUploadBytes is used when Options.MaxUploadBytes is zero.
const DefaultMaxUploadBytes = 32 << 20

// Options carries the process-wide dependencies of the HTTP surface.
type Options struct {
	Service *prices.Service

	// Storage is the handle owned by Service; it is only pinged for readiness.
	Storage storage.Storage

	Logger         *zap.Logger
	MaxUploadBytes int64
}

// NewHandler returns the mux wrapped with request logging.
func NewHandler(opts Options) http.Handler {
	return withRequestLog(logger(opts), NewMux(opts))
}

// NewMux constructs the HTTP mux, wiring in the price API, metrics, health
// endpoints, API docs and the web UI.
func NewMux(opts Options) *http.ServeMux {
	log := logger(opts)
	maxUpload := opts.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUploadBytes
	}

	mux := http.NewServeMux()

	// Metrics endpoint.
	mux.Handle("/metrics", promhttp.Handler())

	// Health / readiness / liveness.
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/readyz", handleReady(opts.Storage, log))
	mux.HandleFunc("/livez", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("live"))
	})

	// Price API.
	mux.Handle("/api/grades", instrument("/api/grades", handleGrades(opts.Service, log)))
	mux.Handle("/api/prices", instrument("/api/prices", handlePrices(opts.Service, log)))
	mux.Handle("/api/upload", instrument("/api/upload", handleUpload(opts.Service, maxUpload, log)))

	// API docs
	mux.Handle("/swagger/", http.StripPrefix("/swagger", swagger.Handler("/swagger")))

	// Web UI
	mux.Handle("/", ui.Handler())

	return mux
}

func logger(opts Options) *zap.Logger {
	if opts.Logger == nil {
		return zap.NewNop()
	}
	return opts.Logger
}

// handleReady pings the shared storage handle and refreshes pool gauges.
func handleReady(st storage.Storage, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if st == nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		if err := st.Ping(r.Context()); err != nil {
			log.Warn("readyz: db ping failed", zap.Error(err))
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		if pr, ok := st.(storage.PoolReporter); ok {
			if stats, err := pr.PoolStats(); err == nil {
				metrics.UpdateDBPoolMetrics(pr.Driver(), stats.Total, stats.Idle, stats.Acquired, stats.Acquires)
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	}
}
