package audio

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestSignalDuration(t *testing.T) {
	tests := []struct {
		name       string
		samples    int
		sampleRate int
		expected   float64
	}{
		{"one second at 16kHz", 16000, 16000, 1000.0},
		{"half second at 16kHz", 8000, 16000, 500.0},
		{"one second at 44.1kHz", 44100, 44100, 1000.0},
		{"empty signal", 0, 16000, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Signal{Samples: make([]float64, tt.samples), SampleRate: tt.sampleRate}
			if got := s.Duration(); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Duration() = %v ms, want %v ms", got, tt.expected)
			}
		})
	}
}

func TestSignalDurationZeroRate(t *testing.T) {
	s := &Signal{Samples: make([]float64, 100), SampleRate: 0}
	if got := s.Duration(); got != 0 {
		t.Errorf("Duration() with zero sample rate = %v, want 0", got)
	}
}

func TestParseF32LE(t *testing.T) {
	values := []float32{0.0, 0.5, -0.5, 1.0, -1.0, 0.123456}
	data := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(v))
	}

	samples := parseF32LE(data)
	if len(samples) != len(values) {
		t.Fatalf("expected %d samples, got %d", len(values), len(samples))
	}
	for i, v := range values {
		if samples[i] != float64(v) {
			t.Errorf("sample %d: got %v, want %v", i, samples[i], float64(v))
		}
	}
}

func TestParseF32LEDropsTrailingBytes(t *testing.T) {
	data := make([]byte, 10) // 2 full samples + 2 stray bytes
	if got := parseF32LE(data); len(got) != 2 {
		t.Errorf("expected 2 samples from 10 bytes, got %d", len(got))
	}
}

func TestParseF32LEEmpty(t *testing.T) {
	if got := parseF32LE(nil); len(got) != 0 {
		t.Errorf("expected no samples from empty input, got %d", len(got))
	}
}

func TestNewDecoderDefaults(t *testing.T) {
	d := NewDecoder("", "")
	if d.FFmpegPath != "ffmpeg" || d.FFprobePath != "ffprobe" {
		t.Errorf("empty paths should fall back to $PATH lookup, got %q/%q",
			d.FFmpegPath, d.FFprobePath)
	}

	d = NewDecoder("/opt/homebrew/bin/ffmpeg", "/opt/homebrew/bin/ffprobe")
	if d.FFmpegPath != "/opt/homebrew/bin/ffmpeg" {
		t.Errorf("explicit ffmpeg path not kept: %q", d.FFmpegPath)
	}
}
