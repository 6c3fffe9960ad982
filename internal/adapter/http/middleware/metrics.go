package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tradesim/walletd/internal/infrastructure/metrics"
)

// MetricsMiddleware records HTTP request metrics.
type MetricsMiddleware struct {
	metrics *metrics.Metrics
}

// NewMetricsMiddleware creates a new MetricsMiddleware.
func NewMetricsMiddleware(m *metrics.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

// Wrap wraps an http.Handler with metrics recording.
func (m *MetricsMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &metricsRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		path := normalizePath(r.URL.Path)

		m.metrics.HTTPRequests.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		m.metrics.HTTPDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

type metricsRecorder struct {
	http.ResponseWriter

	statusCode int
}

func (r *metricsRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// normalizePath collapses path IDs to keep label cardinality bounded.
// /api/v1/wallets/01ABC123/entries -> /api/v1/wallets/:userID/entries
func normalizePath(path string) string {
	for _, prefix := range []string{"/api/v1/wallets/", "/api/v1/users/"} {
		if !strings.HasPrefix(path, prefix) {
			continue
		}

		rest := path[len(prefix):]
		if rest == "" {
			return path
		}

		id, suffix, _ := strings.Cut(rest, "/")
		if id == "" {
			return path
		}

		placeholder := ":userID"
		if prefix == "/api/v1/users/" {
			placeholder = ":id"
		}

		if suffix == "" {
			return prefix + placeholder
		}
		return prefix + placeholder + "/" + suffix
	}

	return path
}
