// Package synthesis wires the provider client and the audio codec pipeline
// into one synthesize-and-export flow. It owns the degradation policy: WAV
// is the authoritative artifact, MP3 is best-effort.
package synthesis
