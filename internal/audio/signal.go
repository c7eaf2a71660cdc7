package audio

// Signal is a decoded mono audio stimulus: amplitude samples in roughly
// [-1.0, 1.0] and the sample rate they were recorded at. A Signal is owned
// by the single detection pass that consumes it and is never mutated after
// decoding.
type Signal struct {
	Samples    []float64
	SampleRate int
}

// Duration returns the total signal duration in milliseconds.
func (s *Signal) Duration() float64 {
	if s.SampleRate <= 0 {
		return 0
	}
	return float64(len(s.Samples)) / float64(s.SampleRate) * 1000.0
}
