package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kys",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "kys",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "path"})

	chartRenders = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kys",
		Subsystem: "charts",
		Name:      "renders_total",
		Help:      "Charts drawn, by kind and outcome",
	}, []string{"kind", "status"})

	markerEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kys",
		Subsystem: "map",
		Name:      "marker_events_total",
		Help:      "Map click and field edit events handled by the marker linker",
	}, []string{"event", "status"})

	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kys",
		Subsystem: "auth",
		Name:      "login_attempts_total",
		Help:      "Login form submissions by outcome",
	}, []string{"status"})

	activeMapSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "kys",
		Subsystem: "map",
		Name:      "active_sessions",
		Help:      "Marker linkers currently held in memory",
	})
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware records request counts and latency per route pattern.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}
