package audio

import (
	"errors"
	"math"
	"testing"
)

func TestToSampleBuffer(t *testing.T) {
	// Bytes for int16 samples 0, 32767, 0.
	data := []byte{0, 0, 255, 127, 0, 0}

	buf, err := ToSampleBuffer(data, 24000)
	if err != nil {
		t.Fatalf("ToSampleBuffer failed: %v", err)
	}

	if buf.Channels != 1 {
		t.Errorf("Expected 1 channel, got %d", buf.Channels)
	}

	if buf.SampleRate != 24000 {
		t.Errorf("Expected sample rate 24000, got %d", buf.SampleRate)
	}

	expected := []float64{0, 32767.0 / 32768.0, 0}
	if len(buf.Samples) != len(expected) {
		t.Fatalf("Expected %d samples, got %d", len(expected), len(buf.Samples))
	}

	for i, want := range expected {
		if buf.Samples[i] != want {
			t.Errorf("Sample %d: expected %v, got %v", i, want, buf.Samples[i])
		}
	}
}

func TestToSampleBufferNormalizationAsymmetry(t *testing.T) {
	// Negative full scale must map exactly to -1.0 while positive full
	// scale maps to 32767/32768, not 1.0.
	data := []byte{0x00, 0x80, 0xFF, 0x7F} // -32768, 32767

	buf, err := ToSampleBuffer(data, 24000)
	if err != nil {
		t.Fatalf("ToSampleBuffer failed: %v", err)
	}

	if buf.Samples[0] != -1.0 {
		t.Errorf("Expected -32768 to normalize to -1.0, got %v", buf.Samples[0])
	}

	if buf.Samples[1] >= 1.0 {
		t.Errorf("Expected 32767 to normalize below 1.0, got %v", buf.Samples[1])
	}

	if buf.Samples[1] != 32767.0/32768.0 {
		t.Errorf("Expected 32767/32768, got %v", buf.Samples[1])
	}
}

func TestToSampleBufferRange(t *testing.T) {
	// Every possible input sample must normalize into [-1, 32767/32768].
	data := make([]byte, 0, 65536*2)
	for v := -32768; v <= 32767; v++ {
		data = append(data, byte(uint16(v)), byte(uint16(v)>>8))
	}

	buf, err := ToSampleBuffer(data, 24000)
	if err != nil {
		t.Fatalf("ToSampleBuffer failed: %v", err)
	}

	for i, f := range buf.Samples {
		if f < -1.0 || f > 32767.0/32768.0 {
			t.Fatalf("Sample %d out of range: %v", i, f)
		}
	}
}

func TestToSampleBufferOddLength(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}

	_, err := ToSampleBuffer(data, 24000)
	if err == nil {
		t.Fatal("Expected error for odd-length buffer")
	}

	if !errors.Is(err, ErrMalformedPCM) {
		t.Errorf("Expected ErrMalformedPCM, got %v", err)
	}
}

func TestToSampleBufferEmpty(t *testing.T) {
	buf, err := ToSampleBuffer(nil, 24000)
	if err != nil {
		t.Fatalf("ToSampleBuffer failed for empty input: %v", err)
	}

	if len(buf.Samples) != 0 {
		t.Errorf("Expected zero samples, got %d", len(buf.Samples))
	}

	if buf.Duration() != 0 {
		t.Errorf("Expected zero duration, got %v", buf.Duration())
	}
}

func TestToSampleBufferInvalidSampleRate(t *testing.T) {
	_, err := ToSampleBuffer([]byte{0, 0}, 0)
	if err == nil {
		t.Error("Expected error for zero sample rate")
	}

	_, err = ToSampleBuffer([]byte{0, 0}, -24000)
	if err == nil {
		t.Error("Expected error for negative sample rate")
	}
}

func TestSampleBufferDuration(t *testing.T) {
	data := make([]byte, 24000*2) // 1 second of silence at 24kHz

	buf, err := ToSampleBuffer(data, 24000)
	if err != nil {
		t.Fatalf("ToSampleBuffer failed: %v", err)
	}

	if buf.FrameCount() != 24000 {
		t.Errorf("Expected 24000 frames, got %d", buf.FrameCount())
	}

	if math.Abs(buf.Duration()-1.0) > 1e-9 {
		t.Errorf("Expected duration 1.0s, got %v", buf.Duration())
	}
}
