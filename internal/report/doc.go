// Package report builds and persists the aggregate duration document: one
// JSON object mapping stimulus keys to corrected durations, together with
// the generation timestamp and the detection parameters used.
package report
