package tts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient(Config{APIKey: "key"}); err == nil {
		t.Error("Expected error for empty endpoint")
	}

	if _, err := NewClient(Config{Endpoint: "http://localhost"}); err == nil {
		t.Error("Expected error for empty API key")
	}
}

func TestClientSynthesize(t *testing.T) {
	var gotAuth string
	var gotReq Request

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}

		json.NewEncoder(w).Encode(Response{
			AudioContent: "AAD/fwAA",
			SampleRate:   24000,
		})
	}))
	defer server.Close()

	client, err := NewClient(Config{
		Endpoint: server.URL,
		APIKey:   "test-key",
		Timeout:  5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	resp, err := client.Synthesize(context.Background(), Request{
		Text:      "hello world",
		VoiceName: "en-US-Standard-A",
		SSML:      true,
	})
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("Expected bearer auth header, got %q", gotAuth)
	}

	if gotReq.Text != "hello world" || gotReq.VoiceName != "en-US-Standard-A" || !gotReq.SSML {
		t.Errorf("Request not forwarded correctly: %+v", gotReq)
	}

	if resp.AudioContent != "AAD/fwAA" {
		t.Errorf("Expected audio content to pass through, got %q", resp.AudioContent)
	}

	if resp.SampleRate != 24000 {
		t.Errorf("Expected sample rate 24000, got %d", resp.SampleRate)
	}

	stats := client.GetStats()
	if stats.TotalRequests != 1 || stats.SuccessRequests != 1 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestClientSynthesizeDefaultSampleRate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Response{AudioContent: "AAAA"})
	}))
	defer server.Close()

	client, err := NewClient(Config{Endpoint: server.URL, APIKey: "key"})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	resp, err := client.Synthesize(context.Background(), Request{Text: "hi"})
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}

	if resp.SampleRate != DefaultSampleRate {
		t.Errorf("Expected default sample rate %d, got %d", DefaultSampleRate, resp.SampleRate)
	}
}

func TestClientSynthesizeHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, err := NewClient(Config{Endpoint: server.URL, APIKey: "key"})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	if _, err := client.Synthesize(context.Background(), Request{Text: "hi"}); err == nil {
		t.Fatal("Expected error for HTTP 429 response")
	}

	stats := client.GetStats()
	if stats.FailedRequests != 1 {
		t.Errorf("Expected 1 failed request, got %d", stats.FailedRequests)
	}
}

func TestClientSynthesizeEmptyAudio(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Response{SampleRate: 24000})
	}))
	defer server.Close()

	client, err := NewClient(Config{Endpoint: server.URL, APIKey: "key"})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	if _, err := client.Synthesize(context.Background(), Request{Text: "hi"}); err == nil {
		t.Fatal("Expected error for response without audio content")
	}
}

func TestClientSynthesizeEmptyText(t *testing.T) {
	client, err := NewClient(Config{Endpoint: "http://localhost:1", APIKey: "key"})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	if _, err := client.Synthesize(context.Background(), Request{}); err == nil {
		t.Fatal("Expected error for empty text")
	}
}
