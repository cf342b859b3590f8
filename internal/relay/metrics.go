package relay

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the relay's Prometheus collectors. A fresh registry is
// created per server so tests can run in parallel without collisions.
type Metrics struct {
	Registry *prometheus.Registry

	generations     *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		generations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dressup_relay_generations_total",
			Help: "Outfit generation attempts by outcome.",
		}, []string{"outcome"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dressup_relay_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "code"}),
	}
}

// ObserveGeneration records one generation attempt. Outcomes are "success",
// "failure" and "timeout".
func (m *Metrics) ObserveGeneration(outcome string) {
	m.generations.WithLabelValues(outcome).Inc()
}

// Instrument is a chi middleware recording request latency per route.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		m.requestDuration.
			WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(ww.Status())).
			Observe(time.Since(start).Seconds())
	})
}
