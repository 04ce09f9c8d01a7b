package internal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/sirupsen/logrus"
)

// ChatRequest is a single-turn chat completion request
type ChatRequest struct {
	Model       string
	Prompt      string
	Temperature float64
	MaxTokens   int64
}

// ChatClient sends one prompt and returns the first choice's text
type ChatClient interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}

// OpenAIClient wraps the official OpenAI Go SDK
type OpenAIClient struct {
	client *openai.Client
}

// NewOpenAIClient creates a client with SDK retries disabled; a failed call
// is reported to the user who decides whether to try again.
func NewOpenAIClient(apiKey string, opts ...option.RequestOption) *OpenAIClient {
	opts = append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)
	client := openai.NewClient(opts...)
	return &OpenAIClient{client: &client}
}

// Complete implements ChatClient
func (c *OpenAIClient) Complete(ctx context.Context, req ChatRequest) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(req.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(req.Prompt),
		},
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(req.MaxTokens)
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices from OpenAI")
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerationParams are the knobs shared by summarize and answer requests
type GenerationParams struct {
	Model       string
	Temperature float64
	MaxTokens   int64
	Timeout     time.Duration
}

// AI builds prompts and sends them to the chat model
type AI struct {
	client  ChatClient
	prompts *PromptManager
	log     logrus.FieldLogger

	mu     sync.RWMutex
	params GenerationParams
}

// NewAI creates an AI using client for completions
func NewAI(client ChatClient, prompts *PromptManager, params GenerationParams, log logrus.FieldLogger) *AI {
	return &AI{
		client:  client,
		prompts: prompts,
		params:  params,
		log:     log,
	}
}

// Params returns the current generation parameters
func (ai *AI) Params() GenerationParams {
	ai.mu.RLock()
	defer ai.mu.RUnlock()
	return ai.params
}

// SetParams replaces the generation parameters for subsequent requests
func (ai *AI) SetParams(params GenerationParams) {
	ai.mu.Lock()
	ai.params = params
	ai.mu.Unlock()
}

// Summarize asks the model for a keyword-preserving summary of transcript
func (ai *AI) Summarize(ctx context.Context, transcript string) (string, error) {
	prompt, err := ai.prompts.Summary(transcript)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGenerate, err)
	}
	return ai.complete(ctx, prompt)
}

// Answer asks the model to answer question from transcript
func (ai *AI) Answer(ctx context.Context, transcript, question string) (string, error) {
	prompt, err := ai.prompts.Answer(transcript, question)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGenerate, err)
	}
	return ai.complete(ctx, prompt)
}

func (ai *AI) complete(ctx context.Context, prompt string) (string, error) {
	params := ai.Params()

	if params.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, params.Timeout)
		defer cancel()
	}

	ai.log.WithFields(logrus.Fields{
		"model":        params.Model,
		"temperature":  params.Temperature,
		"max_tokens":   params.MaxTokens,
		"prompt_bytes": len(prompt),
	}).Debug("requesting chat completion")

	content, err := ai.client.Complete(ctx, ChatRequest{
		Model:       params.Model,
		Prompt:      prompt,
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGenerate, err)
	}
	return content, nil
}
