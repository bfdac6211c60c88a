package relayer

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type PromMetrics struct {
	Submissions    *prometheus.CounterVec
	BackendLatency *prometheus.HistogramVec
	InFlight       prometheus.Gauge
	ActiveSessions prometheus.Gauge
	registry       *prometheus.Registry
}

// NewPromMetrics builds the collectors on a private registry without serving them.
func NewPromMetrics() *PromMetrics {
	reg := prometheus.NewRegistry()

	// labels
	var (
		submissionLabels = []string{"outcome"}
		backendLabels    = []string{"outcome"}
	)

	m := &PromMetrics{
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ata_devtool_submissions_total",
			Help: "Form submissions by outcome: validation_error, backend_error, transport_error, verified, created",
		}, submissionLabels),
		BackendLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ata_devtool_backend_request_duration_seconds",
			Help:    "Duration of /api/createAta calls",
			Buckets: prometheus.DefBuckets,
		}, backendLabels),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ata_devtool_requests_in_flight",
			Help: "Backend calls currently awaiting a response",
		}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ata_devtool_active_sessions",
			Help: "Web form sessions currently held in memory",
		}),
		registry: reg,
	}

	reg.MustRegister(m.Submissions)
	reg.MustRegister(m.BackendLatency)
	reg.MustRegister(m.InFlight)
	reg.MustRegister(m.ActiveSessions)

	return m
}

// InitPromMetrics builds the collectors and exposes them on address:port/metrics.
func InitPromMetrics(address string, port int16) *PromMetrics {
	m := NewPromMetrics()

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		server := &http.Server{
			Addr:        fmt.Sprintf("%s:%d", address, port),
			Handler:     mux,
			ReadTimeout: 3 * time.Second,
		}
		log.Fatal(server.ListenAndServe())
	}()

	return m
}

func (m *PromMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *PromMetrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *PromMetrics) IncSubmission(outcome string) {
	m.Submissions.WithLabelValues(outcome).Inc()
}

func (m *PromMetrics) ObserveBackendRequest(outcome string, d time.Duration) {
	m.BackendLatency.WithLabelValues(outcome).Observe(d.Seconds())
}

func (m *PromMetrics) IncInFlight() {
	m.InFlight.Inc()
}

func (m *PromMetrics) DecInFlight() {
	m.InFlight.Dec()
}

func (m *PromMetrics) SetActiveSessions(n int) {
	m.ActiveSessions.Set(float64(n))
}
