package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the TTS export service
type Metrics struct {
	// Synthesis pipeline metrics
	SynthesisRequests prometheus.Counter
	SynthesisFailures prometheus.Counter
	SynthesisDuration prometheus.Histogram
	ActiveSyntheses   prometheus.Gauge

	// Provider metrics
	ProviderRequests  prometheus.Counter
	ProviderSuccesses prometheus.Counter
	ProviderFailures  prometheus.Counter
	ProviderDuration  prometheus.Histogram

	// Codec metrics
	PayloadBytes   prometheus.Histogram
	SamplesDecoded prometheus.Histogram
	WAVEncoded     prometheus.Counter
	WAVBytes       prometheus.Histogram
	MP3Encoded     prometheus.Counter
	MP3Bytes       prometheus.Histogram
	MP3Failures    prometheus.Counter

	// HTTP API metrics
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPErrors          *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics() *Metrics {
	return &Metrics{
		// Synthesis pipeline metrics
		SynthesisRequests: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tts_synthesis_requests_total",
			Help: "Total number of synthesis pipeline runs",
		}),
		SynthesisFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tts_synthesis_failures_total",
			Help: "Total number of synthesis pipeline runs that failed",
		}),
		SynthesisDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tts_synthesis_duration_seconds",
			Help:    "End-to-end duration of synthesis pipeline runs",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10), // 100ms to ~2 minutes
		}),
		ActiveSyntheses: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "tts_active_syntheses",
			Help: "Current number of in-flight synthesis requests",
		}),

		// Provider metrics
		ProviderRequests: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tts_provider_requests_total",
			Help: "Total number of requests sent to the speech provider",
		}),
		ProviderSuccesses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tts_provider_successes_total",
			Help: "Total number of successful provider requests",
		}),
		ProviderFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tts_provider_failures_total",
			Help: "Total number of failed provider requests",
		}),
		ProviderDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tts_provider_duration_seconds",
			Help:    "Duration of provider requests",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10), // 100ms to ~2 minutes
		}),

		// Codec metrics
		PayloadBytes: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tts_payload_bytes",
			Help:    "Size of decoded PCM payloads in bytes",
			Buckets: prometheus.ExponentialBuckets(1024, 2, 14), // 1KB to ~16MB
		}),
		SamplesDecoded: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tts_samples_decoded",
			Help:    "Number of PCM samples per decoded payload",
			Buckets: prometheus.ExponentialBuckets(1024, 2, 14),
		}),
		WAVEncoded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tts_wav_artifacts_total",
			Help: "Total number of WAV artifacts encoded",
		}),
		WAVBytes: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tts_wav_artifact_bytes",
			Help:    "Size of encoded WAV artifacts in bytes",
			Buckets: prometheus.ExponentialBuckets(1024, 2, 14),
		}),
		MP3Encoded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tts_mp3_artifacts_total",
			Help: "Total number of MP3 artifacts encoded",
		}),
		MP3Bytes: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tts_mp3_artifact_bytes",
			Help:    "Size of encoded MP3 artifacts in bytes",
			Buckets: prometheus.ExponentialBuckets(1024, 2, 14),
		}),
		MP3Failures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tts_mp3_failures_total",
			Help: "Total number of MP3 encodes that failed and were dropped",
		}),

		// HTTP API metrics
		HTTPRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tts_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "endpoint", "status_code"}),
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tts_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "endpoint"}),
		HTTPErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tts_http_errors_total",
			Help: "Total number of HTTP errors",
		}, []string{"method", "endpoint", "error_type"}),
	}
}

// RecordSynthesisStart increments the request counter and in-flight gauge
func (m *Metrics) RecordSynthesisStart() {
	m.SynthesisRequests.Inc()
	m.ActiveSyntheses.Inc()
}

// RecordSynthesisSuccess records a completed pipeline run
func (m *Metrics) RecordSynthesisSuccess(durationSeconds float64) {
	m.ActiveSyntheses.Dec()
	m.SynthesisDuration.Observe(durationSeconds)
}

// RecordSynthesisFailure records a failed pipeline run
func (m *Metrics) RecordSynthesisFailure(durationSeconds float64) {
	m.ActiveSyntheses.Dec()
	m.SynthesisFailures.Inc()
	m.SynthesisDuration.Observe(durationSeconds)
}

// RecordProviderRequest increments the provider request counter
func (m *Metrics) RecordProviderRequest() {
	m.ProviderRequests.Inc()
}

// RecordProviderSuccess records a successful provider call
func (m *Metrics) RecordProviderSuccess(durationSeconds float64) {
	m.ProviderSuccesses.Inc()
	m.ProviderDuration.Observe(durationSeconds)
}

// RecordProviderFailure records a failed provider call
func (m *Metrics) RecordProviderFailure(durationSeconds float64) {
	m.ProviderFailures.Inc()
	m.ProviderDuration.Observe(durationSeconds)
}

// RecordPayloadDecoded records a decoded PCM payload
func (m *Metrics) RecordPayloadDecoded(payloadBytes, sampleCount int) {
	m.PayloadBytes.Observe(float64(payloadBytes))
	m.SamplesDecoded.Observe(float64(sampleCount))
}

// RecordWAVEncoded records an encoded WAV artifact
func (m *Metrics) RecordWAVEncoded(sizeBytes int) {
	m.WAVEncoded.Inc()
	m.WAVBytes.Observe(float64(sizeBytes))
}

// RecordMP3Encoded records an encoded MP3 artifact
func (m *Metrics) RecordMP3Encoded(sizeBytes int) {
	m.MP3Encoded.Inc()
	m.MP3Bytes.Observe(float64(sizeBytes))
}

// RecordMP3Failure records a dropped MP3 encode
func (m *Metrics) RecordMP3Failure() {
	m.MP3Failures.Inc()
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, durationSeconds float64) {
	m.HTTPRequests.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(durationSeconds)
}

// RecordHTTPError records an HTTP error
func (m *Metrics) RecordHTTPError(method, endpoint, errorType string) {
	m.HTTPErrors.WithLabelValues(method, endpoint, errorType).Inc()
}
