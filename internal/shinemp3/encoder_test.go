package shinemp3

import "testing"

func TestNewBlockEncoderValidation(t *testing.T) {
	cases := []struct {
		name       string
		channels   int
		sampleRate int
		bitrate    int
	}{
		{"zero channels", 0, 24000, 128},
		{"too many channels", 3, 24000, 128},
		{"zero sample rate", 1, 0, 128},
		{"negative sample rate", 1, -24000, 128},
		{"unsupported bitrate", 1, 24000, 64},
	}

	for _, c := range cases {
		if _, err := NewBlockEncoder(c.channels, c.sampleRate, c.bitrate); err == nil {
			t.Errorf("%s: expected error", c.name)
		}
	}
}

func TestNewBlockEncoder(t *testing.T) {
	enc, err := NewBlockEncoder(1, 24000, 128)
	if err != nil {
		t.Fatalf("NewBlockEncoder failed: %v", err)
	}

	if enc == nil {
		t.Fatal("Expected non-nil encoder")
	}
}
