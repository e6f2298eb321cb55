package ops

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records per-operation counters for a Runner. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	operationsTotal *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	inputBytes      prometheus.Counter
	outputBytes     prometheus.Counter
	pixelsTotal     prometheus.Counter
}

// NewMetrics creates the collectors on a private registry that also carries
// the Go runtime and process collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		operationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "image_transform_operations_total",
			Help: "Total image operations by name and final status.",
		}, []string{"operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "image_transform_operation_duration_seconds",
			Help:    "Wall time of each image operation, decode and encode included.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		inputBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "image_transform_input_bytes_total",
			Help: "Total encoded bytes received.",
		}),
		outputBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "image_transform_output_bytes_total",
			Help: "Total encoded bytes produced.",
		}),
		pixelsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "image_transform_pixels_processed_total",
			Help: "Total decoded pixels across successful operations.",
		}),
	}

	registry.MustRegister(
		m.operationsTotal,
		m.duration,
		m.inputBytes,
		m.outputBytes,
		m.pixelsTotal,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) observe(operation string, elapsed time.Duration, in, out, pixels int, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.operationsTotal.WithLabelValues(operation, status).Inc()
	m.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
	m.inputBytes.Add(float64(in))
	if err == nil {
		m.outputBytes.Add(float64(out))
		m.pixelsTotal.Add(float64(pixels))
	}
}
