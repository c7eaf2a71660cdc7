package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/Ryuya-dot-com/stimulus-analyzer/internal/audio"
	"github.com/Ryuya-dot-com/stimulus-analyzer/internal/corpus"
	"github.com/Ryuya-dot-com/stimulus-analyzer/internal/metrics"
	"github.com/Ryuya-dot-com/stimulus-analyzer/internal/report"
	"github.com/Ryuya-dot-com/stimulus-analyzer/internal/vad"
)

// Decoder produces a mono Signal from a stimulus file path.
type Decoder interface {
	Decode(ctx context.Context, path string) (*audio.Signal, error)
}

// Progress is a snapshot of a running corpus pass, safe to read from the
// monitoring server while the run is in flight.
type Progress struct {
	CurrentVoice string `json:"current_voice"`
	Discovered   int    `json:"discovered"`
	Processed    int    `json:"processed"`
	Failed       int    `json:"failed"`
	Fallbacks    int    `json:"fallbacks"`
	Warnings     int    `json:"warnings"`
}

// Runner walks the corpus and folds every detection into a report document.
// Processing is strictly sequential; the mutex exists only so the HTTP
// monitor can observe progress mid-run.
type Runner struct {
	logger        *slog.Logger
	decoder       Decoder
	walker        *corpus.Walker
	detection     vad.Config
	decodeTimeout time.Duration
	metrics       *metrics.Metrics

	mu       sync.RWMutex
	progress Progress
	warnings []string
}

// NewRunner creates a Runner. metrics may be nil when instrumentation is not
// wanted (tests).
func NewRunner(logger *slog.Logger, decoder Decoder, walker *corpus.Walker,
	detection vad.Config, decodeTimeout time.Duration, m *metrics.Metrics) *Runner {
	return &Runner{
		logger:        logger,
		decoder:       decoder,
		walker:        walker,
		detection:     detection,
		decodeTimeout: decodeTimeout,
		metrics:       m,
	}
}

// Run processes the whole corpus into doc. The only fatal error before
// per-file processing is a missing corpus root; afterwards every per-file
// failure is recorded as a warning and the run continues. Context
// cancellation stops the run between files.
func (r *Runner) Run(ctx context.Context, doc *report.Document) error {
	if err := r.walker.CheckRoot(); err != nil {
		return err
	}

	r.logger.Info("Corpus run starting",
		slog.String("root", r.walker.Root),
		slog.Any("voices", r.walker.Voices),
		slog.Float64("threshold_db", r.detection.ThresholdDB),
		slog.Float64("frame_ms", r.detection.FrameMS),
		slog.Int("min_frames", r.detection.MinFrames),
	)

	for _, voice := range r.walker.Voices {
		r.setCurrentVoice(voice)

		stimuli, err := r.walker.ListVoice(voice)
		if err != nil {
			// A missing voice directory is a warning, not a fatal error.
			if errors.Is(err, os.ErrNotExist) {
				r.warnf("voice directory not found: %s", voice)
				r.logger.Warn("Voice directory not found, skipping",
					slog.String("voice", voice))
				continue
			}
			r.warnf("voice %s: %v", voice, err)
			r.logger.Warn("Failed to list voice directory",
				slog.String("voice", voice),
				slog.String("error", err.Error()),
			)
			continue
		}

		r.addDiscovered(len(stimuli))
		r.logger.Info("Processing voice",
			slog.String("voice", voice),
			slog.Int("files", len(stimuli)),
		)

		for _, stim := range stimuli {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.processOne(ctx, stim, doc)
		}
	}

	r.logger.Info("Corpus run finished",
		slog.Int("entries", doc.Len()),
		slog.Int("warnings", len(r.Warnings())),
	)

	return nil
}

// processOne runs decode -> frame -> detect for a single stimulus. Failures
// are isolated here: they become warnings and the stimulus is skipped.
func (r *Runner) processOne(ctx context.Context, stim corpus.Stimulus, doc *report.Document) {
	start := time.Now()

	decodeCtx := ctx
	if r.decodeTimeout > 0 {
		var cancel context.CancelFunc
		decodeCtx, cancel = context.WithTimeout(ctx, r.decodeTimeout)
		defer cancel()
	}

	sig, err := r.decoder.Decode(decodeCtx, stim.Path)
	if err != nil {
		r.warnf("%s: %v", stim.Key, err)
		r.markFailed()
		if r.metrics != nil {
			r.metrics.RecordDecodeFailure()
		}
		r.logger.Error("Failed to decode stimulus",
			slog.String("key", stim.Key),
			slog.String("path", stim.Path),
			slog.String("error", err.Error()),
		)
		return
	}

	totalMS := sig.Duration()
	profile, frameLength := vad.Profile(sig.Samples, sig.SampleRate, r.detection.FrameMS)

	endMS, found := vad.DetectEnd(profile, sig.SampleRate, frameLength, r.detection)
	if !found {
		// Fall back to the full file duration and record the warning; both
		// are required for the downstream consumer.
		r.warnf("%s: no speech detected", stim.Key)
		r.markFallback()
		if r.metrics != nil {
			r.metrics.RecordFallback()
		}
		endMS = totalMS
	} else if r.metrics != nil {
		r.metrics.RecordSpeechEnd(totalMS - endMS)
	}

	doc.Add(stim.Key, endMS)
	r.markProcessed()
	if r.metrics != nil {
		r.metrics.RecordProcessed(time.Since(start).Seconds())
	}

	r.logger.Info("Stimulus analyzed",
		slog.String("key", stim.Key),
		slog.Float64("content_ms", report.Round1(endMS)),
		slog.Float64("total_ms", report.Round1(totalMS)),
		slog.Float64("trimmed_ms", report.Round1(totalMS-endMS)),
		slog.Int("sample_rate", sig.SampleRate),
		slog.Bool("fallback", !found),
	)
}

// Progress returns a snapshot of the run counters.
func (r *Runner) Progress() Progress {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p := r.progress
	p.Warnings = len(r.warnings)
	return p
}

// Warnings returns the warnings collected so far, in encounter order.
func (r *Runner) Warnings() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.warnings))
	copy(out, r.warnings)
	return out
}

func (r *Runner) warnf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

func (r *Runner) setCurrentVoice(voice string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress.CurrentVoice = voice
}

func (r *Runner) addDiscovered(n int) {
	r.mu.Lock()
	r.progress.Discovered += n
	r.mu.Unlock()
	if r.metrics != nil {
		r.metrics.RecordDiscovered(n)
	}
}

func (r *Runner) markProcessed() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress.Processed++
}

func (r *Runner) markFailed() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress.Failed++
}

func (r *Runner) markFallback() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress.Fallbacks++
}
