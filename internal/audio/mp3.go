package audio

import (
	"errors"
	"fmt"
)

// MP3BlockSize is the number of samples fed to the block encoder per call,
// matching the MPEG Layer III granule size. The final block may be shorter.
const MP3BlockSize = 1152

// DefaultMP3BitrateKbps is the bitrate used when the caller does not
// request one.
const DefaultMP3BitrateKbps = 128

var (
	// ErrEncoderUnavailable indicates that no MP3 block encoder capability
	// was provided. Callers should treat MP3 export as optional and fall
	// back to WAV only.
	ErrEncoderUnavailable = errors.New("mp3 block encoder is not available")

	// ErrEncodeFailed indicates that the block encoder reported an error
	// mid-stream. No partial MP3 output is returned.
	ErrEncodeFailed = errors.New("mp3 block encoding failed")
)

// BlockEncoder compresses fixed-size runs of 16-bit samples into an MPEG
// Layer III bitstream. Implementations are stateful and single-use: one
// encoder per output file.
type BlockEncoder interface {
	// EncodeBlock compresses one block of samples. The returned chunk may
	// be empty when the encoder is still buffering.
	EncodeBlock(samples []int16) ([]byte, error)

	// Flush emits any trailing bytes after the last block.
	Flush() ([]byte, error)
}

// BlockEncoderFactory creates a BlockEncoder for the given stream
// parameters. It stands in for the external MP3 library so that its absence
// is a typed precondition rather than a runtime lookup.
type BlockEncoderFactory func(channels, sampleRate, bitrateKbps int) (BlockEncoder, error)

// MP3Encoder serializes sample buffers into MP3 containers using an
// injected block-encoder capability.
type MP3Encoder struct {
	newEncoder BlockEncoderFactory
}

// NewMP3Encoder creates an MP3 encoder. A nil factory is allowed; Encode
// then reports ErrEncoderUnavailable.
func NewMP3Encoder(factory BlockEncoderFactory) *MP3Encoder {
	return &MP3Encoder{newEncoder: factory}
}

// Available reports whether a block-encoder capability was injected.
func (e *MP3Encoder) Available() bool {
	return e.newEncoder != nil
}

// quantizeMP3Sample converts a normalized sample to a 16-bit value for the
// block encoder. Unlike quantizeWAVSample there is no 0.5 bias before the
// sign test; the two formulas evolved independently and are kept distinct.
func quantizeMP3Sample(f float64) int16 {
	v := f
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	if v < 0 {
		return int16(v * 32768)
	}
	return int16(v * 32767)
}

// Encode serializes a sample buffer into an MP3 byte stream. Samples are
// quantized to 16-bit integers and fed to the block encoder in
// MP3BlockSize runs, followed by a single flush. If any block fails, the
// whole encode fails and partial output is discarded.
func (e *MP3Encoder) Encode(buf *SampleBuffer, bitrateKbps int) (*Artifact, error) {
	if e.newEncoder == nil {
		return nil, ErrEncoderUnavailable
	}

	if buf == nil {
		return nil, fmt.Errorf("sample buffer is nil")
	}

	if bitrateKbps <= 0 {
		bitrateKbps = DefaultMP3BitrateKbps
	}

	enc, err := e.newEncoder(buf.Channels, buf.SampleRate, bitrateKbps)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoderUnavailable, err)
	}

	quantized := make([]int16, len(buf.Samples))
	for i, f := range buf.Samples {
		quantized[i] = quantizeMP3Sample(f)
	}

	var out []byte
	for start := 0; start < len(quantized); start += MP3BlockSize {
		end := start + MP3BlockSize
		if end > len(quantized) {
			end = len(quantized)
		}

		chunk, err := enc.EncodeBlock(quantized[start:end])
		if err != nil {
			return nil, fmt.Errorf("%w: block at sample %d: %v", ErrEncodeFailed, start, err)
		}
		if len(chunk) > 0 {
			out = append(out, chunk...)
		}
	}

	tail, err := enc.Flush()
	if err != nil {
		return nil, fmt.Errorf("%w: flush: %v", ErrEncodeFailed, err)
	}
	if len(tail) > 0 {
		out = append(out, tail...)
	}

	return &Artifact{Kind: KindMP3, Data: out}, nil
}
