package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete analyzer configuration
type Config struct {
	Corpus    CorpusConfig    `yaml:"corpus"`
	Decoder   DecoderConfig   `yaml:"decoder"`
	Detection DetectionConfig `yaml:"detection"`
	Output    OutputConfig    `yaml:"output"`
	HTTP      HTTPConfig      `yaml:"http"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// CorpusConfig describes the stimulus directory layout
type CorpusConfig struct {
	Root      string   `yaml:"root"`
	Voices    []string `yaml:"voices"`    // processed in this order
	Extension string   `yaml:"extension"` // e.g. ".mp3"
}

// DecoderConfig contains external decoder settings
type DecoderConfig struct {
	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`
	Timeout     int    `yaml:"timeout"` // seconds, per file
}

// DetectionConfig contains the speech boundary detection parameters.
// All three are recorded verbatim in the output document.
type DetectionConfig struct {
	ThresholdDB float64 `yaml:"threshold_db"` // energy gate, strict > comparison
	FrameMS     float64 `yaml:"frame_ms"`     // analysis window duration
	MinFrames   int     `yaml:"min_frames"`   // sustained frames required for speech
}

// OutputConfig describes the persisted result document
type OutputConfig struct {
	Path        string `yaml:"path"`
	Description string `yaml:"description"`
}

// HTTPConfig contains the optional monitoring server configuration
type HTTPConfig struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"`
	Port    int    `yaml:"port"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Default returns the configuration used when a field is left unset.
func Default() *Config {
	return &Config{
		Corpus: CorpusConfig{
			Root:      "stimuli",
			Voices:    []string{"male", "female"},
			Extension: ".mp3",
		},
		Decoder: DecoderConfig{
			FFmpegPath:  "ffmpeg",
			FFprobePath: "ffprobe",
			Timeout:     60,
		},
		Detection: DetectionConfig{
			ThresholdDB: -40.0,
			FrameMS:     10.0,
			MinFrames:   4,
		},
		Output: OutputConfig{
			Path: "data/stimulus_durations.json",
			Description: "Speech content duration (ms) for each stimulus file. " +
				"Measured from file start to last sustained speech activity.",
		},
		HTTP: HTTPConfig{
			Enabled: false,
			Address: "0.0.0.0",
			Port:    8090,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stdout",
		},
	}
}

// Load reads and parses the configuration file, applying defaults for any
// unset field before validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate performs validation of the complete configuration
func (c *Config) Validate() error {
	if err := c.Corpus.Validate(); err != nil {
		return fmt.Errorf("corpus config: %w", err)
	}

	if err := c.Decoder.Validate(); err != nil {
		return fmt.Errorf("decoder config: %w", err)
	}

	if err := c.Detection.Validate(); err != nil {
		return fmt.Errorf("detection config: %w", err)
	}

	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output config: %w", err)
	}

	if err := c.HTTP.Validate(); err != nil {
		return fmt.Errorf("http config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate validates corpus configuration
func (c *CorpusConfig) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("root cannot be empty")
	}

	if len(c.Voices) == 0 {
		return fmt.Errorf("at least one voice category is required")
	}

	for _, v := range c.Voices {
		if v == "" {
			return fmt.Errorf("voice names cannot be empty")
		}
	}

	if c.Extension == "" {
		return fmt.Errorf("extension cannot be empty")
	}

	return nil
}

// Validate validates decoder configuration
func (d *DecoderConfig) Validate() error {
	if d.FFmpegPath == "" {
		return fmt.Errorf("ffmpeg_path cannot be empty")
	}

	if d.FFprobePath == "" {
		return fmt.Errorf("ffprobe_path cannot be empty")
	}

	if d.Timeout < 1 {
		return fmt.Errorf("timeout must be at least 1 second, got %d", d.Timeout)
	}

	return nil
}

// Validate validates detection configuration
func (d *DetectionConfig) Validate() error {
	if d.FrameMS <= 0 {
		return fmt.Errorf("frame_ms must be positive, got %f", d.FrameMS)
	}

	if d.MinFrames < 1 {
		return fmt.Errorf("min_frames must be at least 1, got %d", d.MinFrames)
	}

	// A gate at or above 0 dBFS can never pass for a full-scale signal.
	if d.ThresholdDB >= 0 {
		return fmt.Errorf("threshold_db must be negative, got %f", d.ThresholdDB)
	}

	return nil
}

// Validate validates output configuration
func (o *OutputConfig) Validate() error {
	if o.Path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	return nil
}

// Validate validates HTTP configuration
func (h *HTTPConfig) Validate() error {
	if h.Enabled {
		if h.Port < 1 || h.Port > 65535 {
			return fmt.Errorf("port must be between 1 and 65535, got %d", h.Port)
		}

		if h.Address == "" {
			return fmt.Errorf("address cannot be empty when http is enabled")
		}
	}

	return nil
}

// Validate validates logging configuration
func (l *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[l.Level] {
		return fmt.Errorf("level must be one of [debug, info, warn, error], got '%s'", l.Level)
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("format must be 'json' or 'text', got '%s'", l.Format)
	}

	return nil
}

// GetDecodeTimeout returns the per-file decode timeout as a time.Duration
func (d *DecoderConfig) GetDecodeTimeout() time.Duration {
	return time.Duration(d.Timeout) * time.Second
}
