package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Decoder turns compressed stimulus files into mono Signals. WAV input is
// decoded natively; everything else goes through an ffmpeg pipe, with
// ffprobe supplying the sample rate first.
type Decoder struct {
	FFmpegPath  string
	FFprobePath string
}

// NewDecoder creates a decoder using the given ffmpeg and ffprobe binaries.
// Empty paths fall back to resolution via $PATH.
func NewDecoder(ffmpegPath, ffprobePath string) *Decoder {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Decoder{FFmpegPath: ffmpegPath, FFprobePath: ffprobePath}
}

// Probe returns the sample rate of the first audio stream in the file.
func (d *Decoder) Probe(ctx context.Context, path string) (int, error) {
	cmd := exec.CommandContext(ctx, d.FFprobePath,
		"-i", path,
		"-show_entries", "stream=sample_rate",
		"-v", "quiet",
		"-of", "csv=p=0",
	)

	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed for %s: %w", path, err)
	}

	// Multi-stream files emit one line per stream; the first audio stream
	// comes first.
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	rate, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("ffprobe returned unparseable sample rate %q for %s: %w", line, path, err)
	}
	if rate <= 0 {
		return 0, fmt.Errorf("ffprobe returned sample rate %d for %s", rate, path)
	}

	return rate, nil
}

// Decode decodes the file at path into a mono Signal. Channel reduction to
// mono happens inside the decoder (-ac 1), so callers always receive a
// single channel.
func (d *Decoder) Decode(ctx context.Context, path string) (*Signal, error) {
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		return DecodeWAVFile(path)
	}

	sampleRate, err := d.Probe(ctx, path)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, d.FFmpegPath,
		"-i", path,
		"-f", "f32le",
		"-acodec", "pcm_f32le",
		"-ac", "1",
		"-v", "quiet",
		"-",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg failed for %s: %w (%s)", path, err, strings.TrimSpace(stderr.String()))
	}

	samples := parseF32LE(stdout.Bytes())
	if len(samples) == 0 {
		// ffmpeg exits zero on some corrupt files and simply emits nothing;
		// an empty signal would otherwise persist as a zero duration.
		return nil, fmt.Errorf("ffmpeg produced no audio data for %s", path)
	}

	return &Signal{Samples: samples, SampleRate: sampleRate}, nil
}

// parseF32LE converts a little-endian float32 byte stream into float64
// samples. Trailing bytes that do not form a full sample are dropped.
func parseF32LE(data []byte) []float64 {
	samples := make([]float64, 0, len(data)/4)
	for i := 0; i+4 <= len(data); i += 4 {
		bits := binary.LittleEndian.Uint32(data[i : i+4])
		samples = append(samples, float64(math.Float32frombits(bits)))
	}
	return samples
}
