package obs

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Shared HTTP metrics.
var (
	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "http_in_flight_requests",
		Help: "In-flight HTTP requests.",
	})

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Storefront counters. Labels stay low-cardinality: outcome is
	// success|failure only.
	signupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_signups_total",
			Help: "Signup attempts by outcome.",
		},
		[]string{"outcome"},
	)

	signinsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_signins_total",
			Help: "Signin attempts by outcome.",
		},
		[]string{"outcome"},
	)

	passwordResetsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_password_resets_total",
			Help: "Password reset requests and redemptions by stage and outcome.",
		},
		[]string{"stage", "outcome"},
	)

	cartMergesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "store_cart_merges_total",
		Help: "Cart line-item upserts performed.",
	})
)

// Init registers all metrics in the default registry.
func Init() {
	prometheus.MustRegister(
		httpInFlight, httpRequestsTotal, httpRequestDuration,
		signupsTotal, signinsTotal, passwordResetsTotal, cartMergesTotal,
	)
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

func outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

// CountSignup records a signup attempt.
func CountSignup(ok bool) { signupsTotal.WithLabelValues(outcome(ok)).Inc() }

// CountSignin records a signin attempt.
func CountSignin(ok bool) { signinsTotal.WithLabelValues(outcome(ok)).Inc() }

// CountPasswordReset records a reset workflow step; stage is "request" or "redeem".
func CountPasswordReset(stage string, ok bool) {
	passwordResetsTotal.WithLabelValues(stage, outcome(ok)).Inc()
}

// CountCartMerge records a completed cart upsert.
func CountCartMerge() { cartMergesTotal.Inc() }

// CanonicalPath collapses resource identifiers so metric labels stay bounded.
func CanonicalPath(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "/"
	}
	for _, prefix := range []string{"/v1/items/", "/v1/orders/", "/v1/cart/"} {
		if rest, ok := strings.CutPrefix(path, prefix); ok && rest != "" && !strings.Contains(rest, "/") {
			return prefix + ":id"
		}
	}
	if rest, ok := strings.CutPrefix(path, "/v1/users/"); ok && strings.HasSuffix(rest, "/permissions") {
		id := strings.TrimSuffix(rest, "/permissions")
		if id != "" && !strings.Contains(id, "/") {
			return "/v1/users/:id/permissions"
		}
	}
	return path
}

// Instrument wraps a handler with RPS/latency/in-flight measurements.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := CanonicalPath(r.URL.Path)
		method := r.Method

		httpInFlight.Inc()
		start := time.Now()

		sw := &statusWriter{ResponseWriter: w, code: 200}
		next.ServeHTTP(sw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(sw.code)

		httpRequestDuration.WithLabelValues(method, path, status).Observe(duration)
		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpInFlight.Dec()
	})
}

// statusWriter captures the response code for metric labels.
type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}
