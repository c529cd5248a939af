package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tts-export-service/internal/audio"
	"tts-export-service/internal/config"
	"tts-export-service/internal/metrics"
	"tts-export-service/internal/synthesis"
	"tts-export-service/internal/tts"
)

// ProviderStats exposes request statistics of the provider client for the
// /stats endpoint.
type ProviderStats interface {
	GetStats() tts.ClientStats
}

// HTTPServer provides the synthesis API plus monitoring endpoints
type HTTPServer struct {
	server   *http.Server
	logger   *slog.Logger
	config   *config.Config
	pipeline *synthesis.Pipeline
	provider ProviderStats
	metrics  *metrics.Metrics

	// Server state
	startTime time.Time
	mu        sync.RWMutex
}

// NewHTTPServer creates a new HTTP API server
func NewHTTPServer(appConfig *config.Config, logger *slog.Logger,
	pipeline *synthesis.Pipeline, provider ProviderStats, m *metrics.Metrics) *HTTPServer {

	h := &HTTPServer{
		logger:    logger,
		config:    appConfig,
		pipeline:  pipeline,
		provider:  provider,
		metrics:   m,
		startTime: time.Now(),
	}

	mux := http.NewServeMux()
	h.setupRoutes(mux)

	h.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", appConfig.Server.Address, appConfig.Server.Port),
		Handler:      mux,
		ReadTimeout:  appConfig.Server.GetReadTimeoutDuration(),
		WriteTimeout: appConfig.Server.GetWriteTimeoutDuration(),
		IdleTimeout:  60 * time.Second,
	}

	return h
}

// setupRoutes configures HTTP API routes
func (h *HTTPServer) setupRoutes(mux *http.ServeMux) {
	// Synthesis endpoint
	mux.HandleFunc("/synthesize", h.withMetrics("/synthesize", h.handleSynthesize))

	// Health check endpoint
	mux.HandleFunc("/health", h.withMetrics("/health", h.handleHealth))

	// Configuration endpoint
	mux.HandleFunc("/config", h.withMetrics("/config", h.handleConfig))

	// Statistics endpoint
	mux.HandleFunc("/stats", h.withMetrics("/stats", h.handleStats))

	// Prometheus metrics endpoint (no metrics needed for metrics endpoint)
	mux.Handle("/metrics", promhttp.Handler())

	// Root endpoint with API documentation
	mux.HandleFunc("/", h.withMetrics("/", h.handleRoot))
}

// withMetrics wraps an HTTP handler with metrics collection
func (h *HTTPServer) withMetrics(endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()

		// Create a response writer wrapper to capture status code
		ww := &responseWriter{ResponseWriter: w, statusCode: 200}

		// Call the original handler
		handler(ww, r)

		// Record metrics
		duration := time.Since(startTime).Seconds()
		statusCode := fmt.Sprintf("%d", ww.statusCode)

		h.metrics.RecordHTTPRequest(r.Method, endpoint, statusCode, duration)

		// Record error if status code indicates an error
		if ww.statusCode >= 400 {
			errorType := "client_error"
			if ww.statusCode >= 500 {
				errorType = "server_error"
			}
			h.metrics.RecordHTTPError(r.Method, endpoint, errorType)
		}
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Start starts the HTTP server
func (h *HTTPServer) Start() error {
	h.logger.Info("Starting HTTP API server",
		slog.String("address", h.server.Addr),
	)

	go func() {
		if err := h.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			h.logger.Error("HTTP server error", slog.String("error", err.Error()))
		}
	}()

	return nil
}

// Stop gracefully stops the HTTP server
func (h *HTTPServer) Stop(ctx context.Context) error {
	h.logger.Info("Stopping HTTP API server...")

	return h.server.Shutdown(ctx)
}

// synthesizeRequest is the /synthesize request body
type synthesizeRequest struct {
	Text      string `json:"text"`
	VoiceName string `json:"voice_name"`
	SSML      bool   `json:"ssml"`
}

// artifactPayload carries one encoded container in the response
type artifactPayload struct {
	Kind      string `json:"kind"`
	MIMEType  string `json:"mime_type"`
	SizeBytes int    `json:"size_bytes"`
	Data      string `json:"data"` // base64
}

// synthesizeResponse is the /synthesize response body
type synthesizeResponse struct {
	VoiceName       string           `json:"voice_name"`
	SampleRate      int              `json:"sample_rate"`
	SampleCount     int              `json:"sample_count"`
	DurationSeconds float64          `json:"duration_seconds"`
	WAV             artifactPayload  `json:"wav"`
	MP3             *artifactPayload `json:"mp3,omitempty"`
}

func artifactToPayload(a *audio.Artifact) artifactPayload {
	return artifactPayload{
		Kind:      string(a.Kind),
		MIMEType:  a.Kind.MIMEType(),
		SizeBytes: len(a.Data),
		Data:      base64.StdEncoding.EncodeToString(a.Data),
	}
}

// handleSynthesize implements the POST /synthesize endpoint
func (h *HTTPServer) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, int64(h.config.Server.MaxRequestSize))

	var req synthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	if req.Text == "" {
		http.Error(w, "Text is required", http.StatusBadRequest)
		return
	}

	result, err := h.pipeline.Synthesize(r.Context(), tts.Request{
		Text:      req.Text,
		VoiceName: req.VoiceName,
		SSML:      req.SSML,
	})
	if err != nil {
		h.logger.Error("Synthesis failed",
			slog.String("voice", req.VoiceName),
			slog.String("error", err.Error()),
		)
		http.Error(w, fmt.Sprintf("Synthesis failed: %v", err), http.StatusBadGateway)
		return
	}

	response := synthesizeResponse{
		VoiceName:       result.VoiceName,
		SampleRate:      result.SampleRate,
		SampleCount:     result.SampleCount,
		DurationSeconds: result.Duration,
		WAV:             artifactToPayload(result.WAV),
	}

	if result.MP3 != nil {
		mp3 := artifactToPayload(result.MP3)
		response.MP3 = &mp3
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// handleHealth implements the /health endpoint
func (h *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(h.startTime)

	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"uptime":    uptime.String(),
		"service": map[string]interface{}{
			"name":    "tts-export-service",
			"version": "1.0.0",
		},
		"components": map[string]interface{}{
			"pipeline": map[string]interface{}{
				"status":        "running",
				"mp3_available": h.pipeline.MP3Available(),
			},
		},
	}

	if h.provider != nil {
		stats := h.provider.GetStats()
		health["components"].(map[string]interface{})["provider"] = map[string]interface{}{
			"status":         "running",
			"total_requests": stats.TotalRequests,
			"success_rate":   stats.SuccessRate,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}

// handleConfig implements the /config endpoint
func (h *HTTPServer) handleConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Return sanitized configuration (remove sensitive data)
	sanitizedConfig := map[string]interface{}{
		"server": map[string]interface{}{
			"port":             h.config.Server.Port,
			"address":          h.config.Server.Address,
			"read_timeout":     h.config.Server.ReadTimeout,
			"write_timeout":    h.config.Server.WriteTimeout,
			"max_request_size": h.config.Server.MaxRequestSize,
		},
		"provider": map[string]interface{}{
			"endpoint":      h.config.Provider.Endpoint,
			"timeout":       h.config.Provider.Timeout,
			"default_voice": h.config.Provider.DefaultVoice,
			// Note: API key is intentionally omitted for security
		},
		"audio": map[string]interface{}{
			"sample_rate": h.config.Audio.SampleRate,
			"channels":    h.config.Audio.Channels,
			"mp3_enabled": h.config.Audio.MP3Enabled,
			"mp3_bitrate": h.config.Audio.MP3Bitrate,
		},
		"logging": map[string]interface{}{
			"level":  h.config.Logging.Level,
			"format": h.config.Logging.Format,
			"output": h.config.Logging.Output,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sanitizedConfig)
}

// handleStats implements the /stats endpoint
func (h *HTTPServer) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(h.startTime)

	stats := map[string]interface{}{
		"uptime":    uptime.String(),
		"timestamp": time.Now().UTC(),
	}

	if h.provider != nil {
		stats["provider"] = h.provider.GetStats()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

// handleRoot implements the / endpoint with API documentation
func (h *HTTPServer) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	apiDoc := map[string]interface{}{
		"service": "TTS Export Service",
		"version": "1.0.0",
		"endpoints": map[string]interface{}{
			"POST /synthesize": "Synthesize text to WAV/MP3 artifacts",
			"GET /health":      "Service health check",
			"GET /config":      "Get service configuration",
			"GET /stats":       "Get service statistics",
			"GET /metrics":     "Prometheus metrics",
		},
		"timestamp": time.Now().UTC(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(apiDoc)
}
