package vad

import "math"

// energyFloor prevents log10(0) for windows of digital silence. It sits far
// below any meaningful in-signal energy (-120 dB) so it never masks speech.
const energyFloor = 1e-12

// FrameLength returns the analysis window length in samples for the given
// frame duration, floored at one sample.
func FrameLength(sampleRate int, frameMS float64) int {
	n := int(math.Round(float64(sampleRate) * frameMS / 1000.0))
	if n < 1 {
		n = 1
	}
	return n
}

// Profile computes the rolling mean-square energy of samples in decibels,
// using a sliding window of frameMS milliseconds advanced one sample at a
// time. Only windows that fit entirely inside the signal are emitted, so the
// profile has len(samples)-frameLength+1 entries; a signal shorter than one
// frame yields an empty profile. The frame length in samples is returned
// alongside the profile.
func Profile(samples []float64, sampleRate int, frameMS float64) ([]float64, int) {
	frameLength := FrameLength(sampleRate, frameMS)
	if len(samples) < frameLength {
		return nil, frameLength
	}

	profile := make([]float64, len(samples)-frameLength+1)

	// Rolling sum of squares, one add and one subtract per step.
	var sum float64
	for _, s := range samples[:frameLength] {
		sum += s * s
	}
	inv := 1.0 / float64(frameLength)
	profile[0] = powerToDB(sum * inv)

	for i := 1; i < len(profile); i++ {
		out := samples[i-1]
		in := samples[i+frameLength-1]
		sum += in*in - out*out
		profile[i] = powerToDB(sum * inv)
	}

	return profile, frameLength
}

func powerToDB(power float64) float64 {
	if power < energyFloor {
		power = energyFloor
	}
	return 10.0 * math.Log10(power)
}
