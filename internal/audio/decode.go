package audio

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// ErrInvalidPayload indicates that an audio payload is not valid standard
// base64 (RFC 4648, padding required).
var ErrInvalidPayload = errors.New("invalid base64 audio payload")

// DecodePayload decodes a base64-encoded audio payload into raw bytes.
// The payload must be standard base64 with padding; anything else is
// rejected rather than decoded permissively, so provider-side corruption
// surfaces here instead of as garbled audio.
func DecodePayload(payload string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return data, nil
}
