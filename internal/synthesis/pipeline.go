package synthesis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tts-export-service/internal/audio"
	"tts-export-service/internal/metrics"
	"tts-export-service/internal/tts"
)

// Config contains pipeline configuration.
type Config struct {
	DefaultVoice   string
	MP3BitrateKbps int
}

// Result is the outcome of one synthesis run. WAV is always present on
// success; MP3 is nil when the block encoder is unavailable or failed.
type Result struct {
	VoiceName   string
	SampleRate  int
	SampleCount int
	Duration    float64
	WAV         *audio.Artifact
	MP3         *audio.Artifact
}

// Pipeline runs text through the provider and the codec stages.
type Pipeline struct {
	provider tts.Provider
	mp3      *audio.MP3Encoder
	metrics  *metrics.Metrics
	logger   *slog.Logger
	config   Config
}

// NewPipeline creates a synthesis pipeline. mp3Factory may be nil, in which
// case every result ships without an MP3 artifact. metrics may be nil.
func NewPipeline(provider tts.Provider, mp3Factory audio.BlockEncoderFactory,
	m *metrics.Metrics, logger *slog.Logger, config Config) (*Pipeline, error) {

	if provider == nil {
		return nil, fmt.Errorf("provider cannot be nil")
	}

	if config.MP3BitrateKbps <= 0 {
		config.MP3BitrateKbps = audio.DefaultMP3BitrateKbps
	}

	return &Pipeline{
		provider: provider,
		mp3:      audio.NewMP3Encoder(mp3Factory),
		metrics:  m,
		logger:   logger,
		config:   config,
	}, nil
}

// MP3Available reports whether MP3 export is wired in.
func (p *Pipeline) MP3Available() bool {
	return p.mp3.Available()
}

// Synthesize runs the full flow: provider call, payload decode, sample
// conversion, WAV encode, then best-effort MP3 encode. Decode, conversion
// and WAV errors abort the run; an MP3 failure is logged and the result is
// returned without it.
func (p *Pipeline) Synthesize(ctx context.Context, req tts.Request) (*Result, error) {
	if req.VoiceName == "" {
		req.VoiceName = p.config.DefaultVoice
	}

	startTime := time.Now()
	if p.metrics != nil {
		p.metrics.RecordSynthesisStart()
	}

	result, err := p.run(ctx, req)

	elapsed := time.Since(startTime).Seconds()
	if p.metrics != nil {
		if err != nil {
			p.metrics.RecordSynthesisFailure(elapsed)
		} else {
			p.metrics.RecordSynthesisSuccess(elapsed)
		}
	}

	return result, err
}

func (p *Pipeline) run(ctx context.Context, req tts.Request) (*Result, error) {
	providerStart := time.Now()
	if p.metrics != nil {
		p.metrics.RecordProviderRequest()
	}

	resp, err := p.provider.Synthesize(ctx, req)

	providerElapsed := time.Since(providerStart).Seconds()
	if err != nil {
		if p.metrics != nil {
			p.metrics.RecordProviderFailure(providerElapsed)
		}
		return nil, fmt.Errorf("speech provider: %w", err)
	}
	if p.metrics != nil {
		p.metrics.RecordProviderSuccess(providerElapsed)
	}

	pcm, err := audio.DecodePayload(resp.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("decode audio payload: %w", err)
	}

	buf, err := audio.ToSampleBuffer(pcm, resp.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("convert pcm samples: %w", err)
	}

	if p.metrics != nil {
		p.metrics.RecordPayloadDecoded(len(pcm), len(buf.Samples))
	}

	wav, err := audio.EncodeWAV(buf)
	if err != nil {
		return nil, fmt.Errorf("encode wav: %w", err)
	}
	if p.metrics != nil {
		p.metrics.RecordWAVEncoded(len(wav.Data))
	}

	result := &Result{
		VoiceName:   req.VoiceName,
		SampleRate:  buf.SampleRate,
		SampleCount: len(buf.Samples),
		Duration:    buf.Duration(),
		WAV:         wav,
	}

	// MP3 is optional: the WAV artifact is already complete, so an encoder
	// failure here must not fail the request.
	if p.mp3.Available() {
		mp3, err := p.mp3.Encode(buf, p.config.MP3BitrateKbps)
		if err != nil {
			if p.metrics != nil {
				p.metrics.RecordMP3Failure()
			}
			p.logger.Warn("MP3 encode failed, delivering WAV only",
				slog.String("voice", req.VoiceName),
				slog.Int("samples", len(buf.Samples)),
				slog.String("error", err.Error()),
			)
		} else {
			result.MP3 = mp3
			if p.metrics != nil {
				p.metrics.RecordMP3Encoded(len(mp3.Data))
			}
		}
	}

	p.logger.Info("Synthesis completed",
		slog.String("voice", req.VoiceName),
		slog.Int("sample_rate", result.SampleRate),
		slog.Int("samples", result.SampleCount),
		slog.Float64("duration_seconds", result.Duration),
		slog.Bool("mp3", result.MP3 != nil),
	)

	return result, nil
}
