package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups all Prometheus instruments used by the service.
type Metrics struct {
	ActiveConnections prometheus.Gauge
	ChatTurns         *prometheus.CounterVec
	FallbackGenres    *prometheus.CounterVec
	BackendLatency    prometheus.Histogram
	SnapshotErrors    prometheus.Counter
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		ActiveConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_connections",
			Help:      "Number of active chat websocket connections.",
		}),
		ChatTurns: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_turns_total",
			Help:      "Completed chat turns by outcome.",
		}, []string{"outcome"}),
		FallbackGenres: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallback_genres_total",
			Help:      "Local fallback classifications by genre.",
		}, []string{"genre"}),
		BackendLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_ms",
			Help:      "Backend chat request latency in milliseconds.",
			Buckets:   []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000},
		}),
		SnapshotErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_errors_total",
			Help:      "Failed session snapshot saves.",
		}),
	}
}

// ObserveTurn records a completed turn. Safe on a nil receiver so the
// controller can run without metrics in tests.
func (m *Metrics) ObserveTurn(outcome string) {
	if m == nil {
		return
	}
	m.ChatTurns.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveFallbackGenre(genre string) {
	if m == nil {
		return
	}
	m.FallbackGenres.WithLabelValues(genre).Inc()
}

func (m *Metrics) ObserveBackendLatency(d time.Duration) {
	if m == nil {
		return
	}
	m.BackendLatency.Observe(float64(d.Milliseconds()))
}

func (m *Metrics) ObserveSnapshotError() {
	if m == nil {
		return
	}
	m.SnapshotErrors.Inc()
}

func (m *Metrics) ConnectionOpened() {
	if m == nil {
		return
	}
	m.ActiveConnections.Inc()
}

func (m *Metrics) ConnectionClosed() {
	if m == nil {
		return
	}
	m.ActiveConnections.Dec()
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
