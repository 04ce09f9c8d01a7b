package internal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const generateContentJSON = `{
  "candidates": [{
    "content": {"role": "model", "parts": [{"text": "A short summary."}]},
    "finishReason": "STOP",
    "index": 0
  }]
}`

func newGeminiServer(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewGeminiClient("g-test", WithGeminiBaseURL(srv.URL+"/"))
}

func TestGeminiClientComplete(t *testing.T) {
	var body map[string]any
	var path string
	client := newGeminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		assert.Equal(t, "g-test", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(generateContentJSON))
	})

	out, err := client.Complete(context.Background(), ChatRequest{
		Model:       "gemini-2.5-flash",
		Prompt:      "Summarize this",
		Temperature: 0.5,
		MaxTokens:   256,
	})
	require.NoError(t, err)
	assert.Equal(t, "A short summary.", out)

	assert.True(t, strings.HasSuffix(path, "models/gemini-2.5-flash:generateContent"), path)
	config, ok := body["generationConfig"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 0.5, config["temperature"], 1e-6)
	assert.InDelta(t, 256, config["maxOutputTokens"], 0)

	contents, ok := body["contents"].([]any)
	require.True(t, ok)
	require.Len(t, contents, 1)
	parts := contents[0].(map[string]any)["parts"].([]any)
	assert.Equal(t, "Summarize this", parts[0].(map[string]any)["text"])
}

func TestGeminiClientNoCandidates(t *testing.T) {
	client := newGeminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": []}`))
	})

	_, err := client.Complete(context.Background(), ChatRequest{Model: "gemini-2.5-flash", Prompt: "hi"})
	assert.Error(t, err)
}

func TestGeminiClientBuiltOnce(t *testing.T) {
	var calls atomic.Int32
	client := newGeminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(generateContentJSON))
	})

	first, err := client.ensureClient(context.Background())
	require.NoError(t, err)

	for range 2 {
		_, err := client.Complete(context.Background(), ChatRequest{Model: "gemini-2.5-flash", Prompt: "hi"})
		require.NoError(t, err)
	}

	second, err := client.ensureClient(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGeminiClientServerError(t *testing.T) {
	client := newGeminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"code": 400, "message": "API key not valid", "status": "INVALID_ARGUMENT"}}`))
	})

	_, err := client.Complete(context.Background(), ChatRequest{Model: "gemini-2.5-flash", Prompt: "hi"})
	assert.Error(t, err)
}
