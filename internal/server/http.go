package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Ryuya-dot-com/stimulus-analyzer/internal/config"
	"github.com/Ryuya-dot-com/stimulus-analyzer/internal/pipeline"
)

// HTTPServer exposes monitoring endpoints while a corpus run is in flight.
type HTTPServer struct {
	server    *http.Server
	logger    *slog.Logger
	config    *config.Config
	runner    *pipeline.Runner
	startTime time.Time
}

// NewHTTPServer creates the monitoring server for a run.
func NewHTTPServer(cfg config.HTTPConfig, logger *slog.Logger,
	appConfig *config.Config, runner *pipeline.Runner) *HTTPServer {

	h := &HTTPServer{
		logger:    logger,
		config:    appConfig,
		runner:    runner,
		startTime: time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/progress", h.handleProgress)
	mux.HandleFunc("/config", h.handleConfig)
	mux.Handle("/metrics", promhttp.Handler())

	h.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Address, cfg.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return h
}

// Start starts the HTTP server in the background.
func (h *HTTPServer) Start() {
	h.logger.Info("Starting monitoring server",
		slog.String("address", h.server.Addr),
	)

	go func() {
		if err := h.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			h.logger.Error("Monitoring server error", slog.String("error", err.Error()))
		}
	}()
}

// Stop gracefully stops the HTTP server.
func (h *HTTPServer) Stop(ctx context.Context) error {
	h.logger.Info("Stopping monitoring server...")
	return h.server.Shutdown(ctx)
}

// handleHealth implements the /health endpoint
func (h *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(h.startTime).String(),
	}

	writeJSON(w, health)
}

// handleProgress implements the /progress endpoint
func (h *HTTPServer) handleProgress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, h.runner.Progress())
}

// handleConfig implements the /config endpoint
func (h *HTTPServer) handleConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// The detection parameters are the interesting part for reproducibility.
	writeJSON(w, map[string]interface{}{
		"corpus_root":  h.config.Corpus.Root,
		"voices":       h.config.Corpus.Voices,
		"extension":    h.config.Corpus.Extension,
		"threshold_db": h.config.Detection.ThresholdDB,
		"frame_ms":     h.config.Detection.FrameMS,
		"min_frames":   h.config.Detection.MinFrames,
		"output_path":  h.config.Output.Path,
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
