package shinemp3

import (
	"bytes"
	"fmt"

	"github.com/braheezy/shine-mp3/pkg/mp3"

	"tts-export-service/internal/audio"
)

// blockEncoder wraps a shine encoder instance. Each EncodeBlock call runs
// the pending samples through shine and returns whatever frames it emitted;
// shine buffers internally until it has a full pass.
type blockEncoder struct {
	enc *mp3.Encoder
	out bytes.Buffer
}

// NewBlockEncoder creates a shine-backed block encoder. The signature
// matches audio.BlockEncoderFactory so it can be injected directly:
//
//	audio.NewMP3Encoder(shinemp3.NewBlockEncoder)
//
// Shine emits a fixed 128 kbps stream; other bitrates are rejected so the
// caller sees the limitation as an explicit error instead of mislabeled
// output.
func NewBlockEncoder(channels, sampleRate, bitrateKbps int) (audio.BlockEncoder, error) {
	if channels != 1 && channels != 2 {
		return nil, fmt.Errorf("unsupported channel count %d", channels)
	}

	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}

	if bitrateKbps != audio.DefaultMP3BitrateKbps {
		return nil, fmt.Errorf("shine encoder emits %d kbps only, got %d",
			audio.DefaultMP3BitrateKbps, bitrateKbps)
	}

	return &blockEncoder{enc: mp3.NewEncoder(sampleRate, channels)}, nil
}

// EncodeBlock compresses one run of samples. The returned chunk is empty
// while shine is still accumulating a full encoding pass.
func (b *blockEncoder) EncodeBlock(samples []int16) ([]byte, error) {
	b.out.Reset()

	if err := b.enc.Write(&b.out, samples); err != nil {
		return nil, fmt.Errorf("shine encode: %w", err)
	}

	if b.out.Len() == 0 {
		return nil, nil
	}

	chunk := make([]byte, b.out.Len())
	copy(chunk, b.out.Bytes())
	return chunk, nil
}

// Flush reports any trailing frames. Shine writes complete frames during
// EncodeBlock and holds no closing state, so there is nothing to emit.
func (b *blockEncoder) Flush() ([]byte, error) {
	return nil, nil
}
