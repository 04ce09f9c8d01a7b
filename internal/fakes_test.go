package internal

import (
	"context"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

type fakeProvider struct {
	mu        sync.Mutex
	fragments []Fragment
	err       error
	calls     []string
}

func (p *fakeProvider) Fragments(_ context.Context, videoID string) ([]Fragment, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, videoID)
	if p.err != nil {
		return nil, p.err
	}
	return p.fragments, nil
}

type fakeChat struct {
	mu    sync.Mutex
	reply string
	err   error
	reqs  []ChatRequest
}

func (c *fakeChat) Complete(_ context.Context, req ChatRequest) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reqs = append(c.reqs, req)
	if c.err != nil {
		return "", c.err
	}
	return c.reply, nil
}

func (c *fakeChat) last() ChatRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reqs[len(c.reqs)-1]
}

type restorerFunc func(ctx context.Context, text string) (string, error)

func (f restorerFunc) Restore(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

func nullLogger() logrus.FieldLogger {
	log, _ := logtest.NewNullLogger()
	return log
}

func testConfig(t *testing.T) *Config {
	t.Helper()
	return &Config{
		Provider:             ProviderOpenAI,
		Model:                "gpt-4.1-nano",
		ConsoleTemperature:   0.7,
		WebTemperature:       0.5,
		MaxTokens:            256,
		OpenAIAPIKey:         "sk-test",
		SubLangs:             "en",
		PunctuationBackend:   PunctuationNone,
		PunctuationMaxTokens: 1024,
		TempDir:              t.TempDir(),
	}
}

// newTestApp builds an App around fakes with silent output
func newTestApp(t *testing.T, config *Config, provider TranscriptProvider, restorer Restorer, chat ChatClient, options ...AppOption) *App {
	t.Helper()
	options = append([]AppOption{
		WithProvider(provider),
		WithRestorer(restorer),
		WithChatClient(chat),
		WithUI(NewUIManager(true)),
		WithLogger(nullLogger()),
	}, options...)
	app, err := NewApp(config, options...)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	return app
}
