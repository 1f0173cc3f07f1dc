package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricelookup_requests_total",
			Help: "Total number of requests per API path",
		},
		[]string{"path"},
	)

	RequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pricelookup_request_duration_seconds",
			Help:    "Request duration in seconds per API path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	RequestErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricelookup_request_errors_total",
			Help: "Total number of error responses per API path and status code",
		},
		[]string{"path", "code"},
	)
)

var (
	ImportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricelookup_imports_total",
			Help: "Spreadsheet imports by outcome (ok or the failure kind)",
		},
		[]string{"result"},
	)

	ImportDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pricelookup_import_duration_seconds",
			Help:    "Duration of spreadsheet imports, successful or not",
			Buckets: prometheus.DefBuckets,
		},
	)

	SnapshotRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pricelookup_snapshot_rows",
			Help: "Rows written by the last successful import",
		},
	)

	LastImportTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pricelookup_last_import_timestamp",
			Help: "Unix timestamp of the last successful import",
		},
	)
)

// RecordImport updates the import collectors. kind is empty on success.
func RecordImport(kind string, startedAt time.Time, rows int) {
	ImportDurationSeconds.Observe(time.Since(startedAt).Seconds())
	if kind != "" {
		ImportsTotal.WithLabelValues(kind).Inc()
		return
	}
	ImportsTotal.WithLabelValues("ok").Inc()
	SnapshotRows.Set(float64(rows))
	LastImportTimestamp.Set(float64(time.Now().Unix()))
}

var (
	DBPoolTotalConns = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pricelookup_db_pool_total_conns",
			Help: "Total number of connections in the DB pool per driver",
		},
		[]string{"driver"},
	)

	DBPoolIdleConns = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pricelookup_db_pool_idle_conns",
			Help: "Idle connections in the DB pool per driver",
		},
		[]string{"driver"},
	)

	DBPoolAcquiredConns = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pricelookup_db_pool_acquired_conns",
			Help: "Currently acquired (in-use) connections per driver",
		},
		[]string{"driver"},
	)

	DBPoolAcquires = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pricelookup_db_pool_acquires",
			Help: "Cumulative connection acquires (pgx) or waits (database/sql) per driver",
		},
		[]string{"driver"},
	)
)

func UpdateDBPoolMetrics(driver string, total, idle, acquired, acquires int64) {
	DBPoolTotalConns.WithLabelValues(driver).Set(float64(total))
	DBPoolIdleConns.WithLabelValues(driver).Set(float64(idle))
	DBPoolAcquiredConns.WithLabelValues(driver).Set(float64(acquired))
	DBPoolAcquires.WithLabelValues(driver).Set(float64(acquires))
}
