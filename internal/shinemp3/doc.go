// Package shinemp3 adapts the shine MPEG Layer III encoder to the
// block-encoder capability consumed by the audio package.
package shinemp3
