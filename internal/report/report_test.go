package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Ryuya-dot-com/stimulus-analyzer/internal/vad"
)

func TestRound1(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{123.456, 123.5},
		{123.44, 123.4},
		{0.0, 0.0},
		{699.96, 700.0},
		{500.0, 500.0},
	}

	for _, tt := range tests {
		if got := Round1(tt.input); got != tt.expected {
			t.Errorf("Round1(%v) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestDocumentAddRounds(t *testing.T) {
	doc := New("test", vad.DefaultConfig())
	doc.Add("male_apple", 712.3456)

	if got := doc.Durations["male_apple"]; got != 712.3 {
		t.Errorf("stored duration = %v, want 712.3", got)
	}
	if doc.Len() != 1 {
		t.Errorf("Len() = %d, want 1", doc.Len())
	}
}

func TestDocumentMetadata(t *testing.T) {
	cfg := vad.Config{ThresholdDB: -40.0, FrameMS: 10.0, MinFrames: 4}
	doc := New("speech content durations", cfg)

	if doc.Description != "speech content durations" {
		t.Errorf("description = %q", doc.Description)
	}
	if doc.Parameters.ThresholdDB != -40.0 || doc.Parameters.FrameMS != 10.0 || doc.Parameters.MinFrames != 4 {
		t.Errorf("parameters not recorded verbatim: %+v", doc.Parameters)
	}

	// Generated must be a parseable RFC 3339 UTC timestamp.
	ts, err := time.Parse(time.RFC3339, doc.Generated)
	if err != nil {
		t.Fatalf("generated timestamp %q is not RFC 3339: %v", doc.Generated, err)
	}
	if ts.Location() != time.UTC {
		t.Errorf("generated timestamp is not UTC: %v", ts)
	}
}

func TestDocumentWrite(t *testing.T) {
	doc := New("unit test", vad.DefaultConfig())
	doc.Add("male_cafe", 712.34)
	doc.Add("female_niño", 1001.06)

	path := filepath.Join(t.TempDir(), "out", "durations.json")
	if err := doc.Write(path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var got struct {
		Generated   string             `json:"_generated"`
		Description string             `json:"_description"`
		Parameters  Parameters         `json:"_parameters"`
		Durations   map[string]float64 `json:"durations"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if got.Description != "unit test" {
		t.Errorf("description round-trip failed: %q", got.Description)
	}
	if got.Parameters.MinFrames != 4 {
		t.Errorf("parameters round-trip failed: %+v", got.Parameters)
	}
	if len(got.Durations) != 2 {
		t.Fatalf("expected 2 durations, got %d", len(got.Durations))
	}
	if got.Durations["male_cafe"] != 712.3 {
		t.Errorf("male_cafe = %v, want 712.3", got.Durations["male_cafe"])
	}
	if got.Durations["female_niño"] != 1001.1 {
		t.Errorf("female_niño = %v, want 1001.1", got.Durations["female_niño"])
	}
}
