package report

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/Ryuya-dot-com/stimulus-analyzer/internal/vad"
)

// Parameters records the detection settings verbatim so a run can be
// reproduced from its output document.
type Parameters struct {
	ThresholdDB float64 `json:"threshold_db"`
	FrameMS     float64 `json:"frame_ms"`
	MinFrames   int     `json:"min_frames"`
}

// Document is the persisted output: generation metadata, the parameter set,
// and the key -> duration mapping in milliseconds.
type Document struct {
	Generated   string             `json:"_generated"`
	Description string             `json:"_description"`
	Parameters  Parameters         `json:"_parameters"`
	Durations   map[string]float64 `json:"durations"`
}

// New creates an empty document stamped with the current UTC time.
func New(description string, cfg vad.Config) *Document {
	return &Document{
		Generated:   time.Now().UTC().Format(time.RFC3339),
		Description: description,
		Parameters: Parameters{
			ThresholdDB: cfg.ThresholdDB,
			FrameMS:     cfg.FrameMS,
			MinFrames:   cfg.MinFrames,
		},
		Durations: make(map[string]float64),
	}
}

// Add records a duration for a stimulus key, rounded to one decimal place.
func (d *Document) Add(key string, durationMS float64) {
	d.Durations[key] = Round1(durationMS)
}

// Len returns the number of recorded entries.
func (d *Document) Len() int {
	return len(d.Durations)
}

// Write persists the document as indented JSON, creating the output
// directory if needed. Non-ASCII stimulus keys are written as-is rather than
// escaped.
func (d *Document) Write(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to write output document: %w", err)
	}

	return nil
}

// Round1 rounds a millisecond value to one decimal place.
func Round1(ms float64) float64 {
	return math.Round(ms*10) / 10
}
