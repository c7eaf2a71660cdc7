package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ryuya-dot-com/stimulus-analyzer/internal/audio"
	"github.com/Ryuya-dot-com/stimulus-analyzer/internal/config"
	"github.com/Ryuya-dot-com/stimulus-analyzer/internal/corpus"
	"github.com/Ryuya-dot-com/stimulus-analyzer/internal/metrics"
	"github.com/Ryuya-dot-com/stimulus-analyzer/internal/pipeline"
	"github.com/Ryuya-dot-com/stimulus-analyzer/internal/report"
	"github.com/Ryuya-dot-com/stimulus-analyzer/internal/server"
	"github.com/Ryuya-dot-com/stimulus-analyzer/internal/vad"
)

const (
	defaultConfigPath = "configs/config.yaml"
	serviceName       = "stimulus-analyzer"
	serviceVersion    = "1.0.0"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", defaultConfigPath, "Path to configuration file")
	corpusRoot := flag.String("root", "", "Override corpus root directory")
	outputPath := flag.String("output", "", "Override output document path")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *corpusRoot != "" {
		cfg.Corpus.Root = *corpusRoot
	}
	if *outputPath != "" {
		cfg.Output.Path = *outputPath
	}

	// Initialize logger based on configuration
	logger := initLogger(cfg.Logging)

	logger.Info("Analyzer starting",
		slog.String("service", serviceName),
		slog.String("version", serviceVersion),
		slog.String("config_path", *configPath),
	)

	logger.Info("Configuration loaded",
		slog.String("corpus_root", cfg.Corpus.Root),
		slog.Any("voices", cfg.Corpus.Voices),
		slog.String("extension", cfg.Corpus.Extension),
		slog.Float64("threshold_db", cfg.Detection.ThresholdDB),
		slog.Float64("frame_ms", cfg.Detection.FrameMS),
		slog.Int("min_frames", cfg.Detection.MinFrames),
		slog.String("output_path", cfg.Output.Path),
	)

	// Cancel the run on SIGINT/SIGTERM; a partial document is never written.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Prometheus metrics
	appMetrics := metrics.NewMetrics()

	decoder := audio.NewDecoder(cfg.Decoder.FFmpegPath, cfg.Decoder.FFprobePath)
	walker := corpus.NewWalker(cfg.Corpus.Root, cfg.Corpus.Voices, cfg.Corpus.Extension)

	detection := vad.Config{
		ThresholdDB: cfg.Detection.ThresholdDB,
		FrameMS:     cfg.Detection.FrameMS,
		MinFrames:   cfg.Detection.MinFrames,
	}

	runner := pipeline.NewRunner(logger, decoder, walker, detection,
		cfg.Decoder.GetDecodeTimeout(), appMetrics)

	// Start the monitoring server (if enabled)
	var httpServer *server.HTTPServer
	if cfg.HTTP.Enabled {
		httpServer = server.NewHTTPServer(cfg.HTTP, logger, cfg, runner)
		httpServer.Start()
	}

	doc := report.New(cfg.Output.Description, detection)

	runErr := runner.Run(ctx, doc)

	if httpServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := httpServer.Stop(shutdownCtx); err != nil {
			logger.Error("Error stopping monitoring server", slog.String("error", err.Error()))
		}
		shutdownCancel()
	}

	if runErr != nil {
		logger.Error("Corpus run aborted", slog.String("error", runErr.Error()))
		os.Exit(1)
	}

	if err := doc.Write(cfg.Output.Path); err != nil {
		logger.Error("Failed to write output document", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Output document written",
		slog.String("path", cfg.Output.Path),
		slog.Int("entries", doc.Len()),
	)

	// Surface all collected warnings in one final summary, never silently.
	warnings := runner.Warnings()
	if len(warnings) > 0 {
		logger.Warn("Run completed with warnings", slog.Int("count", len(warnings)))
		for _, warning := range warnings {
			logger.Warn(warning)
		}
	}

	progress := runner.Progress()
	logger.Info("Final run statistics",
		slog.Int("discovered", progress.Discovered),
		slog.Int("processed", progress.Processed),
		slog.Int("failed", progress.Failed),
		slog.Int("fallbacks", progress.Fallbacks),
	)
}

// initLogger creates and configures the structured logger based on configuration
func initLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo // default fallback
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug, // Add source info for debug level
	}

	// Determine output destination
	var output *os.File
	switch cfg.Output {
	case "stderr":
		output = os.Stderr
	case "stdout", "":
		output = os.Stdout
	default:
		// Assume it's a file path
		file, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file %s: %v, falling back to stdout\n", cfg.Output, err)
			output = os.Stdout
		} else {
			output = file
		}
	}

	// Create handler based on format
	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler)
}
