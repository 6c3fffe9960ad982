package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Wallet metrics
	EntriesRecorded    *prometheus.CounterVec
	EntryAmount        *prometheus.HistogramVec
	RecordDuration     prometheus.Histogram
	RecordErrors       *prometheus.CounterVec
	WalletsProvisioned *prometheus.CounterVec
	WalletsReset       prometheus.Counter
	VerifyRuns         *prometheus.CounterVec

	// User metrics
	UsersCreated prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec

	// Outbox metrics
	EventsPublished *prometheus.CounterVec
	OutboxBacklog   prometheus.Gauge

	// Audit metrics
	AuditLogsCreated *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics on the default registerer.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates and registers all Prometheus metrics on the given
// registerer. Tests pass a fresh registry to avoid duplicate registration.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Wallet metrics
		EntriesRecorded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletd_entries_recorded_total",
				Help: "Total number of ledger entries recorded by kind",
			},
			[]string{"kind"},
		),
		EntryAmount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "walletd_entry_amount_cents",
				Help:    "Absolute entry amounts in cents",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"kind"},
		),
		RecordDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "walletd_record_duration_seconds",
			Help:    "Duration of record operations",
			Buckets: prometheus.DefBuckets,
		}),
		RecordErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletd_record_errors_total",
				Help: "Total number of record errors by type",
			},
			[]string{"error_type"},
		),
		WalletsProvisioned: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletd_wallets_provisioned_total",
				Help: "Total number of wallets provisioned by tier",
			},
			[]string{"tier"},
		),
		WalletsReset: factory.NewCounter(prometheus.CounterOpts{
			Name: "walletd_wallets_reset_total",
			Help: "Total number of wallet resets",
		}),
		VerifyRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletd_verify_runs_total",
				Help: "Total ledger verification runs by result",
			},
			[]string{"result"},
		),

		// User metrics
		UsersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "walletd_users_created_total",
			Help: "Total number of users created",
		}),

		// API metrics
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletd_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "walletd_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBQueries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletd_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "walletd_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name: "walletd_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletd_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "walletd_cache_hits_total",
			Help: "Total account cache hits",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "walletd_cache_misses_total",
			Help: "Total account cache misses",
		}),

		// Authentication metrics
		AuthAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletd_auth_attempts_total",
				Help: "Total authentication attempts by status",
			},
			[]string{"status"},
		),

		// Rate limiting metrics
		RateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletd_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),

		// Outbox metrics
		EventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletd_events_published_total",
				Help: "Total outbox events published by type",
			},
			[]string{"event_type"},
		),
		OutboxBacklog: factory.NewGauge(prometheus.GaugeOpts{
			Name: "walletd_outbox_backlog",
			Help: "Unpublished outbox events at last poll",
		}),

		// Audit metrics
		AuditLogsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletd_audit_logs_total",
				Help: "Total audit logs created",
			},
			[]string{"action", "status"},
		),
	}
}
