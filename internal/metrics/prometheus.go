package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the stimulus analyzer
type Metrics struct {
	// Corpus progress metrics
	FilesDiscovered prometheus.Counter
	FilesProcessed  prometheus.Counter
	DecodeFailures  prometheus.Counter

	// Detection metrics
	SpeechDetected    prometheus.Counter
	Fallbacks         prometheus.Counter
	DetectionDuration prometheus.Histogram
	TrimmedTail       prometheus.Histogram
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics() *Metrics {
	return &Metrics{
		FilesDiscovered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stimulus_files_discovered_total",
			Help: "Total number of stimulus files discovered in the corpus",
		}),
		FilesProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stimulus_files_processed_total",
			Help: "Total number of stimulus files successfully processed",
		}),
		DecodeFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stimulus_decode_failures_total",
			Help: "Total number of stimulus files that failed to decode",
		}),
		SpeechDetected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stimulus_speech_detected_total",
			Help: "Total number of stimuli with a detected speech end",
		}),
		Fallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stimulus_duration_fallbacks_total",
			Help: "Total number of stimuli that fell back to full file duration",
		}),
		DetectionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "stimulus_detection_duration_seconds",
			Help:    "Wall time spent decoding and analyzing one stimulus",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~10s
		}),
		TrimmedTail: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "stimulus_trimmed_tail_milliseconds",
			Help:    "Trailing padding removed per stimulus in milliseconds",
			Buckets: prometheus.ExponentialBuckets(10, 2, 10), // 10ms to ~10s
		}),
	}
}

// RecordDiscovered increments the files discovered counter
func (m *Metrics) RecordDiscovered(n int) {
	m.FilesDiscovered.Add(float64(n))
}

// RecordProcessed records one analyzed stimulus and its processing time
func (m *Metrics) RecordProcessed(seconds float64) {
	m.FilesProcessed.Inc()
	m.DetectionDuration.Observe(seconds)
}

// RecordDecodeFailure increments the decode failure counter
func (m *Metrics) RecordDecodeFailure() {
	m.DecodeFailures.Inc()
}

// RecordSpeechEnd records a successful detection and the trimmed tail
func (m *Metrics) RecordSpeechEnd(trimmedMS float64) {
	m.SpeechDetected.Inc()
	if trimmedMS > 0 {
		m.TrimmedTail.Observe(trimmedMS)
	}
}

// RecordFallback increments the full-duration fallback counter
func (m *Metrics) RecordFallback() {
	m.Fallbacks.Inc()
}
