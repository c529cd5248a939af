// Package server implements the HTTP API for the TTS export service:
// the /synthesize endpoint plus health, configuration, statistics and
// Prometheus metrics endpoints.
package server
