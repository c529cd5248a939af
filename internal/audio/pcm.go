package audio

import (
	"errors"
	"fmt"
)

// ErrMalformedPCM indicates that a raw PCM payload has an odd byte count
// and cannot be split into complete 16-bit samples.
var ErrMalformedPCM = errors.New("pcm data has odd byte length")

// SampleBuffer is a normalized in-memory audio representation. Samples are
// interleaved per frame with channels innermost, each value in the range
// [-1.0, 32767/32768]. A buffer is never mutated after creation; both
// encoders read it concurrently without coordination.
type SampleBuffer struct {
	Channels   int
	SampleRate int
	Samples    []float64
}

// FrameCount returns the number of complete frames in the buffer.
func (b *SampleBuffer) FrameCount() int {
	if b.Channels <= 0 {
		return 0
	}
	return len(b.Samples) / b.Channels
}

// Duration returns the playback duration in seconds.
func (b *SampleBuffer) Duration() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(b.FrameCount()) / float64(b.SampleRate)
}

// ToSampleBuffer reinterprets raw bytes as signed 16-bit little-endian mono
// PCM and normalizes each sample by dividing by 32768. Negative full scale
// maps exactly to -1.0 while positive full scale maps to 32767/32768; this
// asymmetry is kept for bit-compatibility with reference output.
//
// An odd byte count returns ErrMalformedPCM. The trailing byte cannot form
// a sample and silently dropping it would hide upstream corruption.
func ToSampleBuffer(data []byte, sampleRate int) (*SampleBuffer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}

	if len(data)%2 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrMalformedPCM, len(data))
	}

	samples := make([]float64, len(data)/2)
	for i := range samples {
		s := int16(data[i*2]) | int16(data[i*2+1])<<8
		samples[i] = float64(s) / 32768.0
	}

	return &SampleBuffer{
		Channels:   1,
		SampleRate: sampleRate,
		Samples:    samples,
	}, nil
}
