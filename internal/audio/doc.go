// Package audio provides decoding of stimulus files into mono float
// sample sequences. WAV files are decoded natively; every other format is
// piped through ffmpeg, with ffprobe supplying the sample rate.
package audio
