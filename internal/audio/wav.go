package audio

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// DecodeWAVFile decodes a PCM WAV file into a mono Signal without invoking
// an external process. Multi-channel files are reduced to mono by averaging
// the channels.
func DecodeWAVFile(path string) (*Signal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%s is not a valid WAV file", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read PCM data from %s: %w", path, err)
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		return nil, fmt.Errorf("%s reports %d channels", path, channels)
	}

	floats := buf.AsFloatBuffer().Data
	samples := make([]float64, 0, len(floats)/channels)

	// Samples arrive interleaved and scaled to the source bit depth;
	// normalize to [-1, 1] and average the channels down to mono.
	scale := 1.0
	if dec.BitDepth > 0 && dec.BitDepth <= 32 {
		scale = 1.0 / float64(int64(1)<<(dec.BitDepth-1))
	}
	for i := 0; i+channels <= len(floats); i += channels {
		var sum float64
		for c := 0; c < channels; c++ {
			sum += floats[i+c]
		}
		samples = append(samples, sum/float64(channels)*scale)
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("no audio data found in %s", path)
	}

	return &Signal{Samples: samples, SampleRate: int(dec.SampleRate)}, nil
}
