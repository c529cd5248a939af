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

	"tts-export-service/internal/audio"
	"tts-export-service/internal/config"
	"tts-export-service/internal/metrics"
	"tts-export-service/internal/server"
	"tts-export-service/internal/shinemp3"
	"tts-export-service/internal/synthesis"
	"tts-export-service/internal/tts"
)

const (
	defaultConfigPath = "configs/config.yaml"
	serviceName       = "tts-export-service"
	serviceVersion    = "1.0.0"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", defaultConfigPath, "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger based on configuration
	logger := initLogger(cfg.Logging)

	// Log service startup
	logger.Info("Service starting",
		slog.String("service", serviceName),
		slog.String("version", serviceVersion),
		slog.String("config_path", *configPath),
	)

	// Log configuration summary (without sensitive data)
	logger.Info("Configuration loaded",
		slog.Int("http_port", cfg.Server.Port),
		slog.String("address", cfg.Server.Address),
		slog.String("provider_endpoint", cfg.Provider.Endpoint),
		slog.String("default_voice", cfg.Provider.DefaultVoice),
		slog.Int("sample_rate", cfg.Audio.SampleRate),
		slog.Bool("mp3_enabled", cfg.Audio.MP3Enabled),
		slog.Int("mp3_bitrate", cfg.Audio.MP3Bitrate),
		slog.String("log_level", cfg.Logging.Level),
	)

	// Initialize Prometheus metrics
	appMetrics := metrics.NewMetrics()
	logger.Info("Prometheus metrics initialized")

	// Initialize speech provider client
	providerClient, err := tts.NewClient(tts.Config{
		Endpoint: cfg.Provider.Endpoint,
		APIKey:   cfg.Provider.APIKey,
		Timeout:  cfg.Provider.GetTimeoutDuration(),
	})
	if err != nil {
		logger.Error("Failed to create provider client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Wire the MP3 block encoder capability only when enabled; without it
	// the pipeline delivers WAV-only results.
	var mp3Factory audio.BlockEncoderFactory
	if cfg.Audio.MP3Enabled {
		mp3Factory = shinemp3.NewBlockEncoder
		logger.Info("MP3 export enabled", slog.Int("bitrate_kbps", cfg.Audio.MP3Bitrate))
	} else {
		logger.Info("MP3 export disabled, delivering WAV only")
	}

	// Initialize synthesis pipeline
	pipeline, err := synthesis.NewPipeline(providerClient, mp3Factory, appMetrics, logger, synthesis.Config{
		DefaultVoice:   cfg.Provider.DefaultVoice,
		MP3BitrateKbps: cfg.Audio.MP3Bitrate,
	})
	if err != nil {
		logger.Error("Failed to create synthesis pipeline", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Synthesis pipeline initialized")

	// Initialize HTTP API server
	httpServer := server.NewHTTPServer(cfg, logger, pipeline, providerClient, appMetrics)
	logger.Info("HTTP API server initialized",
		slog.String("address", fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)),
	)

	// Start HTTP server
	if err := httpServer.Start(); err != nil {
		logger.Error("Failed to start HTTP server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info("Service started successfully, waiting for signals...")

	sig := <-sigChan
	logger.Info("Received shutdown signal", slog.String("signal", sig.String()))

	logger.Info("Starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("Error stopping HTTP server", slog.String("error", err.Error()))
	}

	// Get final statistics
	stats := providerClient.GetStats()
	logger.Info("Final provider statistics",
		slog.Uint64("total_requests", stats.TotalRequests),
		slog.Uint64("success_requests", stats.SuccessRequests),
		slog.Uint64("failed_requests", stats.FailedRequests),
	)

	logger.Info("Service stopped")
}

// initLogger creates and configures the structured logger based on configuration
func initLogger(cfg config.LoggingConfig) *slog.Logger {
	// Parse log level
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

	// Configure handler options
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
	case "text", "":
		handler = slog.NewTextHandler(output, opts)
	default:
		// Default to text format
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler)
}
