// Package tts implements the HTTP client for the speech-generation
// provider. The provider accepts text (optionally SSML) with a voice name
// and returns a base64-encoded raw PCM payload at a declared sample rate.
package tts
