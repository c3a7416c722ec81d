// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "stt_normalization"

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	// Normalization metrics
	DocumentsTotal    *prometheus.CounterVec
	NormalizeDuration *prometheus.HistogramVec
	WordsNormalized   *prometheus.CounterVec
	WordsDropped      *prometheus.CounterVec
	BlocksBuilt       *prometheus.CounterVec

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Kafka publish metrics
	KafkaPublishTotal   *prometheus.CounterVec
	KafkaPublishErrors  *prometheus.CounterVec
	KafkaPublishLatency *prometheus.HistogramVec
}

// DefaultMetrics is the global metrics instance.
var DefaultMetrics = NewMetrics()

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		DocumentsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_total",
			Help:      "Total number of normalization passes by outcome",
		}, []string{"provider", "outcome"}),
		NormalizeDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "normalize_duration_seconds",
			Help:      "Duration of one normalization pass in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"provider"}),
		WordsNormalized: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "words_total",
			Help:      "Total number of words normalized",
		}, []string{"provider"}),
		WordsDropped: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "words_dropped_total",
			Help:      "Total number of words dropped in diarization gaps",
		}, []string{"provider"}),
		BlocksBuilt: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blocks_built_total",
			Help:      "Total number of content blocks built",
		}, []string{"provider"}),

		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"route", "code"}),
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"route"}),

		KafkaPublishTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_total",
			Help:      "Total number of Kafka messages published",
		}, []string{"topic", "event_type"}),
		KafkaPublishErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_errors_total",
			Help:      "Total number of Kafka publish errors",
		}, []string{"topic", "event_type"}),
		KafkaPublishLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kafka_publish_latency_seconds",
			Help:      "Kafka publish latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"topic"}),
	}
}

// RecordNormalization records one completed normalization pass.
func (m *Metrics) RecordNormalization(provider, outcome string, words, dropped, blocks int, durationSeconds float64) {
	m.DocumentsTotal.WithLabelValues(provider, outcome).Inc()
	m.NormalizeDuration.WithLabelValues(provider).Observe(durationSeconds)
	if words > 0 {
		m.WordsNormalized.WithLabelValues(provider).Add(float64(words))
	}
	if dropped > 0 {
		m.WordsDropped.WithLabelValues(provider).Add(float64(dropped))
	}
	if blocks > 0 {
		m.BlocksBuilt.WithLabelValues(provider).Add(float64(blocks))
	}
}

// RecordHTTPRequest records an HTTP request by route and status code.
func (m *Metrics) RecordHTTPRequest(route, code string, durationSeconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(route, code).Inc()
	m.HTTPRequestDuration.WithLabelValues(route).Observe(durationSeconds)
}

// RecordKafkaPublish records a Kafka publish attempt.
func (m *Metrics) RecordKafkaPublish(topic, eventType string, err error, latencySeconds float64) {
	m.KafkaPublishTotal.WithLabelValues(topic, eventType).Inc()
	m.KafkaPublishLatency.WithLabelValues(topic).Observe(latencySeconds)
	if err != nil {
		m.KafkaPublishErrors.WithLabelValues(topic, eventType).Inc()
	}
}
