// Package audio implements the codec pipeline for synthesized speech.
// It decodes base64-encoded raw PCM payloads into normalized sample buffers
// and encodes those buffers into WAV and MP3 containers for playback/export.
package audio
