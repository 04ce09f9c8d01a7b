package internal

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"
)

// GeminiClient implements ChatClient on the Gemini API
type GeminiClient struct {
	apiKey      string
	httpOptions genai.HTTPOptions

	once      sync.Once
	client    *genai.Client
	clientErr error
}

// GeminiOption customizes a GeminiClient
type GeminiOption func(*GeminiClient)

// WithGeminiBaseURL points the client at another API host
func WithGeminiBaseURL(baseURL string) GeminiOption {
	return func(c *GeminiClient) {
		c.httpOptions.BaseURL = baseURL
	}
}

// NewGeminiClient creates a client; the SDK client is built on first use
func NewGeminiClient(apiKey string, opts ...GeminiOption) *GeminiClient {
	c := &GeminiClient{apiKey: apiKey}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *GeminiClient) ensureClient(ctx context.Context) (*genai.Client, error) {
	c.once.Do(func() {
		c.client, c.clientErr = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:      c.apiKey,
			Backend:     genai.BackendGeminiAPI,
			HTTPOptions: c.httpOptions,
		})
	})
	return c.client, c.clientErr
}

// Complete implements ChatClient
func (c *GeminiClient) Complete(ctx context.Context, req ChatRequest) (string, error) {
	client, err := c.ensureClient(ctx)
	if err != nil {
		return "", fmt.Errorf("creating gemini client: %w", err)
	}

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(req.Temperature)),
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}

	result, err := client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return "", err
	}
	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("no response candidates from Gemini")
	}
	return text, nil
}
