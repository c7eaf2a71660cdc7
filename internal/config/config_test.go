package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConfigValidation(t *testing.T) {
	valid := func() *Config { return Default() }

	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
		errorMsg    string
	}{
		{
			name:        "valid default configuration",
			mutate:      func(c *Config) {},
			expectError: false,
		},
		{
			name:        "empty corpus root",
			mutate:      func(c *Config) { c.Corpus.Root = "" },
			expectError: true,
			errorMsg:    "root cannot be empty",
		},
		{
			name:        "no voices",
			mutate:      func(c *Config) { c.Corpus.Voices = nil },
			expectError: true,
			errorMsg:    "at least one voice",
		},
		{
			name:        "blank voice name",
			mutate:      func(c *Config) { c.Corpus.Voices = []string{"male", ""} },
			expectError: true,
			errorMsg:    "voice names cannot be empty",
		},
		{
			name:        "empty extension",
			mutate:      func(c *Config) { c.Corpus.Extension = "" },
			expectError: true,
			errorMsg:    "extension cannot be empty",
		},
		{
			name:        "zero frame duration",
			mutate:      func(c *Config) { c.Detection.FrameMS = 0 },
			expectError: true,
			errorMsg:    "frame_ms must be positive",
		},
		{
			name:        "negative frame duration",
			mutate:      func(c *Config) { c.Detection.FrameMS = -10 },
			expectError: true,
			errorMsg:    "frame_ms must be positive",
		},
		{
			name:        "zero min frames",
			mutate:      func(c *Config) { c.Detection.MinFrames = 0 },
			expectError: true,
			errorMsg:    "min_frames must be at least 1",
		},
		{
			name:        "non-negative threshold",
			mutate:      func(c *Config) { c.Detection.ThresholdDB = 0 },
			expectError: true,
			errorMsg:    "threshold_db must be negative",
		},
		{
			name:        "empty output path",
			mutate:      func(c *Config) { c.Output.Path = "" },
			expectError: true,
			errorMsg:    "path cannot be empty",
		},
		{
			name:        "invalid http port when enabled",
			mutate:      func(c *Config) { c.HTTP.Enabled = true; c.HTTP.Port = 0 },
			expectError: true,
			errorMsg:    "port must be between",
		},
		{
			name:        "invalid http port ignored when disabled",
			mutate:      func(c *Config) { c.HTTP.Enabled = false; c.HTTP.Port = 0 },
			expectError: false,
		},
		{
			name:        "invalid log level",
			mutate:      func(c *Config) { c.Logging.Level = "verbose" },
			expectError: true,
			errorMsg:    "level must be one of",
		},
		{
			name:        "invalid log format",
			mutate:      func(c *Config) { c.Logging.Format = "xml" },
			expectError: true,
			errorMsg:    "format must be",
		},
		{
			name:        "zero decode timeout",
			mutate:      func(c *Config) { c.Decoder.Timeout = 0 },
			expectError: true,
			errorMsg:    "timeout must be at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.expectError {
				if err == nil {
					t.Fatal("expected a validation error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errorMsg)
				}
			} else if err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
corpus:
  root: /data/stimuli
detection:
  threshold_db: -35.0
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Corpus.Root != "/data/stimuli" {
		t.Errorf("root = %q", cfg.Corpus.Root)
	}
	if cfg.Detection.ThresholdDB != -35.0 {
		t.Errorf("threshold_db = %v, want -35", cfg.Detection.ThresholdDB)
	}

	// Unset fields keep their defaults.
	if cfg.Detection.FrameMS != 10.0 {
		t.Errorf("frame_ms default = %v, want 10", cfg.Detection.FrameMS)
	}
	if cfg.Detection.MinFrames != 4 {
		t.Errorf("min_frames default = %v, want 4", cfg.Detection.MinFrames)
	}
	if len(cfg.Corpus.Voices) != 2 || cfg.Corpus.Voices[0] != "male" || cfg.Corpus.Voices[1] != "female" {
		t.Errorf("voices default = %v", cfg.Corpus.Voices)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("log level default = %q", cfg.Logging.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("corpus: [not: a: mapping"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}

func TestGetDecodeTimeout(t *testing.T) {
	d := DecoderConfig{Timeout: 45}
	if got := d.GetDecodeTimeout(); got != 45*time.Second {
		t.Errorf("GetDecodeTimeout() = %v, want 45s", got)
	}
}
