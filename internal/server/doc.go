// Package server provides an optional HTTP endpoint for observing a corpus
// run in flight: health, progress counters, the active configuration, and
// Prometheus metrics.
package server
