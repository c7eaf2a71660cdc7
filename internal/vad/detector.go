package vad

// Config holds the tunable detection parameters. All three are recorded in
// the output document so a run can be reproduced.
type Config struct {
	// ThresholdDB is the energy gate in decibels: a frame counts as speech
	// only when its energy is strictly above this value.
	ThresholdDB float64
	// FrameMS is the analysis window duration in milliseconds.
	FrameMS float64
	// MinFrames is the minimum number of consecutive above-threshold frames
	// required for a run to count as speech rather than a noise spike.
	MinFrames int
}

// DefaultConfig returns the parameter set the stimulus corpus was
// calibrated with.
func DefaultConfig() Config {
	return Config{
		ThresholdDB: -40.0,
		FrameMS:     10.0,
		MinFrames:   4,
	}
}

// DetectEnd scans the energy profile backward from the end of the signal and
// returns the end time in milliseconds of the last run of above-threshold
// entries spanning at least cfg.MinFrames analysis frames. The second return
// value is false when no such run exists; that is a valid outcome and the
// caller is expected to substitute its own fallback.
//
// The profile advances one sample per entry, so a run of N consecutive
// entries spans N-1+frameLength samples of signal, i.e. (N-1)/frameLength+1
// frames. A run therefore qualifies when it holds at least
// (MinFrames-1)*frameLength+1 entries; for frameLength 1 this reduces to a
// plain MinFrames entry count.
//
// Runs below the minimum (isolated noise spikes after the real speech) are
// discarded and the scan resumes just before the run start, so each entry is
// examined at most once and the scan is linear in the profile length.
func DetectEnd(energyDB []float64, sampleRate, frameLength int, cfg Config) (float64, bool) {
	n := len(energyDB)
	minRun := (cfg.MinFrames-1)*frameLength + 1
	if n < minRun {
		return 0, false
	}

	above := func(i int) bool { return energyDB[i] > cfg.ThresholdDB }

	i := n - 1
	for i >= 0 {
		if !above(i) {
			i--
			continue
		}

		// Walk backward to the start of this consecutive run.
		runEnd := i
		runStart := i
		for runStart > 0 && above(runStart-1) {
			runStart--
		}

		if runEnd-runStart+1 >= minRun {
			// Speech ends at the end of the last frame in the run,
			// not at the frame's start index.
			endSample := runEnd + frameLength
			return float64(endSample) / float64(sampleRate) * 1000.0, true
		}

		// Noise spike; skip past the whole run.
		i = runStart - 1
	}

	return 0, false
}
