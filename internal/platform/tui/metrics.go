package tui

import (
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/split-horizon/internal/runner"
)

// Metrics holds the Prometheus collectors for the SSH server.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	sessionsActive prometheus.Gauge
	sessionsTotal  prometheus.Counter
	runsTotal      *prometheus.CounterVec
	sections       prometheus.Counter
	distance       prometheus.Histogram
}

// NewMetrics creates the collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		sessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "horizon",
			Name:      "sessions_active",
			Help:      "SSH sessions currently connected.",
		}),
		sessionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "horizon",
			Name:      "sessions_total",
			Help:      "SSH sessions accepted since start.",
		}),
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "horizon",
			Name:      "runs_total",
			Help:      "Finished runs by level and outcome.",
		}, []string{"level", "outcome"}),
		sections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "horizon",
			Name:      "sections_emitted_total",
			Help:      "Track sections generated by finished runs.",
		}),
		distance: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "horizon",
			Name:      "run_distance",
			Help:      "Distance travelled per finished run.",
			Buckets:   prometheus.ExponentialBuckets(10, 2, 10),
		}),
	}
	m.registry.MustRegister(m.sessionsActive, m.sessionsTotal, m.runsTotal, m.sections, m.distance)
	return m
}

// SessionStarted records a new connection.
func (m *Metrics) SessionStarted() {
	if m == nil {
		return
	}
	m.sessionsTotal.Inc()
	m.sessionsActive.Inc()
}

// SessionEnded records a closed connection.
func (m *Metrics) SessionEnded() {
	if m == nil {
		return
	}
	m.sessionsActive.Dec()
}

// ObserveRun records a finished run.
func (m *Metrics) ObserveRun(st runner.Stats) {
	if m == nil {
		return
	}
	outcome := "crashed"
	if st.Complete {
		outcome = "completed"
	}
	m.runsTotal.WithLabelValues(st.Level, outcome).Inc()
	m.sections.Add(float64(st.Sections))
	m.distance.Observe(st.Distance)
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the collectors in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// StartHTTP serves /metrics on addr in the background. The returned server
// is shut down by the caller.
func (m *Metrics) StartHTTP(addr string, logger *log.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("metrics available", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server error", "error", err)
		}
	}()
	return srv
}
