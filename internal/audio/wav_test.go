package audio

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

func monoBuffer(samples []float64, sampleRate int) *SampleBuffer {
	return &SampleBuffer{Channels: 1, SampleRate: sampleRate, Samples: samples}
}

func TestEncodeWAVHeader(t *testing.T) {
	// Generate 0.1 seconds of a 440Hz sine at 24kHz.
	sampleRate := 24000
	numSamples := sampleRate / 10
	samples := make([]float64, numSamples)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/float64(sampleRate))
	}

	artifact, err := EncodeWAV(monoBuffer(samples, sampleRate))
	if err != nil {
		t.Fatalf("EncodeWAV failed: %v", err)
	}

	if artifact.Kind != KindWAV {
		t.Errorf("Expected kind %q, got %q", KindWAV, artifact.Kind)
	}

	data := artifact.Data
	expectedSize := 44 + numSamples*2
	if len(data) != expectedSize {
		t.Fatalf("Expected WAV size %d, got %d", expectedSize, len(data))
	}

	if err := ValidateWAV(data); err != nil {
		t.Errorf("Generated WAV is invalid: %v", err)
	}

	if got := binary.LittleEndian.Uint32(data[4:8]); got != uint32(expectedSize-8) {
		t.Errorf("Expected RIFF chunk size %d, got %d", expectedSize-8, got)
	}

	if got := binary.LittleEndian.Uint32(data[16:20]); got != 16 {
		t.Errorf("Expected fmt subchunk size 16, got %d", got)
	}

	if got := binary.LittleEndian.Uint16(data[20:22]); got != 1 {
		t.Errorf("Expected PCM format tag 1, got %d", got)
	}

	if got := binary.LittleEndian.Uint16(data[22:24]); got != 1 {
		t.Errorf("Expected 1 channel, got %d", got)
	}

	if got := binary.LittleEndian.Uint32(data[24:28]); got != uint32(sampleRate) {
		t.Errorf("Expected sample rate %d, got %d", sampleRate, got)
	}

	if got := binary.LittleEndian.Uint32(data[28:32]); got != uint32(sampleRate*2) {
		t.Errorf("Expected byte rate %d, got %d", sampleRate*2, got)
	}

	if got := binary.LittleEndian.Uint16(data[32:34]); got != 2 {
		t.Errorf("Expected block align 2, got %d", got)
	}

	if got := binary.LittleEndian.Uint16(data[34:36]); got != 16 {
		t.Errorf("Expected 16 bits per sample, got %d", got)
	}

	if got := binary.LittleEndian.Uint32(data[40:44]); got != uint32(numSamples*2) {
		t.Errorf("Expected data chunk size %d, got %d", numSamples*2, got)
	}
}

func TestEncodeWAVExactBytes(t *testing.T) {
	// Full byte-level check for a two-sample file at 24kHz.
	artifact, err := EncodeWAV(monoBuffer([]float64{0, -1}, 24000))
	if err != nil {
		t.Fatalf("EncodeWAV failed: %v", err)
	}

	expected := []byte{
		'R', 'I', 'F', 'F', 40, 0, 0, 0, 'W', 'A', 'V', 'E',
		'f', 'm', 't', ' ', 16, 0, 0, 0, 1, 0, 1, 0,
		0xC0, 0x5D, 0, 0, // 24000
		0x80, 0xBB, 0, 0, // 48000 byte rate
		2, 0, 16, 0,
		'd', 'a', 't', 'a', 4, 0, 0, 0,
		0, 0, // sample 0
		0x00, 0x80, // sample -32768
	}

	if !bytes.Equal(artifact.Data, expected) {
		t.Errorf("WAV bytes mismatch:\nexpected %v\ngot      %v", expected, artifact.Data)
	}
}

func TestEncodeWAVEmpty(t *testing.T) {
	// An empty buffer must still produce a valid 44-byte silent file.
	artifact, err := EncodeWAV(monoBuffer(nil, 24000))
	if err != nil {
		t.Fatalf("EncodeWAV failed for empty buffer: %v", err)
	}

	if len(artifact.Data) != 44 {
		t.Fatalf("Expected 44-byte file, got %d bytes", len(artifact.Data))
	}

	if err := ValidateWAV(artifact.Data); err != nil {
		t.Errorf("Empty WAV is invalid: %v", err)
	}

	if got := binary.LittleEndian.Uint32(artifact.Data[40:44]); got != 0 {
		t.Errorf("Expected data chunk size 0, got %d", got)
	}

	if got := binary.LittleEndian.Uint32(artifact.Data[4:8]); got != 36 {
		t.Errorf("Expected RIFF chunk size 36, got %d", got)
	}
}

func TestQuantizeWAVSample(t *testing.T) {
	cases := []struct {
		in   float64
		want int16
	}{
		{0, 0},
		{1, 32767},
		{-1, -32768},
		{2, 32767},    // clamped
		{-3, -32768},  // clamped
		{0.5, 16383},  // 0.5*32767 truncated
		{-0.25, -8191}, // sign test sees -0.25+0.5 >= 0, scales by 32767
		{-0.75, -24576}, // sign test sees -0.25, scales by 32768
	}

	for _, c := range cases {
		if got := quantizeWAVSample(c.in); got != c.want {
			t.Errorf("quantizeWAVSample(%v): expected %d, got %d", c.in, c.want, got)
		}
	}
}

func TestEncodeWAVInvalidBuffer(t *testing.T) {
	if _, err := EncodeWAV(nil); err == nil {
		t.Error("Expected error for nil buffer")
	}

	if _, err := EncodeWAV(monoBuffer([]float64{0}, 0)); err == nil {
		t.Error("Expected error for zero sample rate")
	}

	if _, err := EncodeWAV(&SampleBuffer{Channels: 0, SampleRate: 24000}); err == nil {
		t.Error("Expected error for zero channel count")
	}
}

func TestValidateWAV(t *testing.T) {
	if err := ValidateWAV([]byte{1, 2, 3}); err == nil {
		t.Error("Expected error for too short WAV data")
	}

	invalid := make([]byte, 50)
	copy(invalid[0:4], "FAKE")
	if err := ValidateWAV(invalid); err == nil {
		t.Error("Expected error for invalid RIFF header")
	}
}

func TestWAVDuration(t *testing.T) {
	samples := make([]float64, 24000) // 1 second at 24kHz

	artifact, err := EncodeWAV(monoBuffer(samples, 24000))
	if err != nil {
		t.Fatalf("EncodeWAV failed: %v", err)
	}

	duration, err := WAVDuration(artifact.Data)
	if err != nil {
		t.Fatalf("WAVDuration failed: %v", err)
	}

	if math.Abs(duration-1.0) > 0.001 {
		t.Errorf("Expected duration 1.000, got %.3f", duration)
	}
}
