package tts

import "context"

// DefaultSampleRate is the PCM sample rate assumed when the provider
// response does not declare one. Speech providers in this pipeline emit
// 24 kHz mono.
const DefaultSampleRate = 24000

// Request describes one synthesis call to the provider.
type Request struct {
	Text      string `json:"text"`
	VoiceName string `json:"voice_name"`
	SSML      bool   `json:"ssml"`
}

// Response carries the provider's synthesized audio: a base64-encoded raw
// PCM payload plus the sample rate it was generated at.
type Response struct {
	AudioContent string `json:"audio_content"`
	SampleRate   int    `json:"sample_rate"`
}

// Provider converts text to synthesized speech. Concrete implementations
// wrap a remote speech API; tests substitute fakes.
type Provider interface {
	Synthesize(ctx context.Context, req Request) (*Response, error)
}
