package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	barcodesTotal  *prometheus.CounterVec
	lookupsTotal   *prometheus.CounterVec
	lookupDuration prometheus.Histogram
	materialsTotal *prometheus.CounterVec
}

func New(service string) *Metrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "regreen",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
		[]string{"method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "regreen",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
		[]string{"method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "regreen",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	barcodesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "regreen",
			Subsystem: "barcode",
			Name:      "decoded_total",
			Help:      "Barcode decode attempts by outcome and symbology.",
		},
		[]string{"outcome", "symbology"},
	)
	lookupsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "regreen",
			Subsystem: "product",
			Name:      "lookups_total",
			Help:      "Product lookups by outcome.",
		},
		[]string{"outcome"},
	)
	lookupDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "regreen",
			Subsystem: "product",
			Name:      "lookup_duration_seconds",
			Help:      "Product lookup duration in seconds.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 15},
		},
	)
	materialsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "regreen",
			Subsystem: "material",
			Name:      "classified_total",
			Help:      "Classified packaging materials.",
		},
		[]string{"material", "rule"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		barcodesTotal,
		lookupsTotal,
		lookupDuration,
		materialsTotal,
	)

	return &Metrics{
		registry:        registry,
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		requestInFlight: requestInFlight,
		barcodesTotal:   barcodesTotal,
		lookupsTotal:    lookupsTotal,
		lookupDuration:  lookupDuration,
		materialsTotal:  materialsTotal,
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency per route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.requestTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) RecordBarcode(outcome, symbology string) {
	if m == nil {
		return
	}
	if symbology == "" {
		symbology = "none"
	}
	m.barcodesTotal.WithLabelValues(outcome, symbology).Inc()
}

func (m *Metrics) RecordLookup(outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	if outcome == "" {
		outcome = "unknown"
	}
	m.lookupsTotal.WithLabelValues(outcome).Inc()
	m.lookupDuration.Observe(duration.Seconds())
}

func (m *Metrics) RecordMaterial(material, rule string) {
	if m == nil {
		return
	}
	m.materialsTotal.WithLabelValues(material, rule).Inc()
}
