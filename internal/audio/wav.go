package audio

import (
	"encoding/binary"
	"fmt"
)

// wavHeaderSize is the canonical RIFF/WAVE header length for a PCM16 file
// with a single fmt and data chunk.
const wavHeaderSize = 44

// byteWriter is an explicit write cursor over a preallocated buffer. The
// header layout below depends on every write advancing the position by the
// exact field width.
type byteWriter struct {
	buf []byte
	pos int
}

func (w *byteWriter) writeTag(tag string) {
	copy(w.buf[w.pos:], tag)
	w.pos += len(tag)
}

func (w *byteWriter) writeUint16(v uint16) {
	binary.LittleEndian.PutUint16(w.buf[w.pos:], v)
	w.pos += 2
}

func (w *byteWriter) writeUint32(v uint32) {
	binary.LittleEndian.PutUint32(w.buf[w.pos:], v)
	w.pos += 4
}

// quantizeWAVSample converts a normalized sample to a stored 16-bit value.
// The clamped value is sign-tested with a 0.5 bias and scaled by 32768 on
// the negative branch and 32767 otherwise, truncating toward zero. This
// exact formula is required for byte-compatibility with reference WAV
// output; it intentionally differs from the MP3 quantizer in mp3.go.
func quantizeWAVSample(f float64) int16 {
	v := f
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	if v+0.5 < 0 {
		return int16(v * 32768)
	}
	return int16(v * 32767)
}

// EncodeWAV serializes a sample buffer into a RIFF/WAVE container with an
// interleaved little-endian PCM16 payload. An empty buffer produces a valid
// 44-byte silent file.
func EncodeWAV(buf *SampleBuffer) (*Artifact, error) {
	if buf == nil {
		return nil, fmt.Errorf("sample buffer is nil")
	}

	if buf.Channels < 1 {
		return nil, fmt.Errorf("channel count must be at least 1, got %d", buf.Channels)
	}

	if buf.SampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", buf.SampleRate)
	}

	dataSize := len(buf.Samples) * 2
	total := wavHeaderSize + dataSize

	w := &byteWriter{buf: make([]byte, total)}

	w.writeTag("RIFF")
	w.writeUint32(uint32(total - 8))
	w.writeTag("WAVE")

	w.writeTag("fmt ")
	w.writeUint32(16) // PCM fmt subchunk size
	w.writeUint16(1)  // integer PCM
	w.writeUint16(uint16(buf.Channels))
	w.writeUint32(uint32(buf.SampleRate))
	w.writeUint32(uint32(buf.SampleRate * 2 * buf.Channels))
	w.writeUint16(uint16(buf.Channels * 2))
	w.writeUint16(16) // bits per sample

	w.writeTag("data")
	w.writeUint32(uint32(dataSize))

	for _, f := range buf.Samples {
		w.writeUint16(uint16(quantizeWAVSample(f)))
	}

	return &Artifact{Kind: KindWAV, Data: w.buf}, nil
}

// ValidateWAV checks that data carries the canonical RIFF/WAVE chunk layout
// produced by EncodeWAV.
func ValidateWAV(data []byte) error {
	if len(data) < wavHeaderSize {
		return fmt.Errorf("WAV data too short: need at least %d bytes, got %d", wavHeaderSize, len(data))
	}

	if string(data[0:4]) != "RIFF" {
		return fmt.Errorf("invalid WAV file: missing RIFF header")
	}

	if string(data[8:12]) != "WAVE" {
		return fmt.Errorf("invalid WAV file: missing WAVE format")
	}

	if string(data[12:16]) != "fmt " {
		return fmt.Errorf("invalid WAV file: missing fmt chunk")
	}

	if string(data[36:40]) != "data" {
		return fmt.Errorf("invalid WAV file: missing data chunk")
	}

	return nil
}

// WAVDuration calculates the duration of a WAV file in seconds from its
// header fields.
func WAVDuration(data []byte) (float64, error) {
	if err := ValidateWAV(data); err != nil {
		return 0, err
	}

	sampleRate := binary.LittleEndian.Uint32(data[24:28])
	if sampleRate == 0 {
		return 0, fmt.Errorf("invalid sample rate: 0")
	}

	channels := binary.LittleEndian.Uint16(data[22:24])
	if channels == 0 {
		return 0, fmt.Errorf("invalid channel count: 0")
	}

	dataSize := binary.LittleEndian.Uint32(data[40:44])
	frames := dataSize / 2 / uint32(channels)

	return float64(frames) / float64(sampleRate), nil
}
