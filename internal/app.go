package internal

import (
	"context"
	"os"
	"strings"

	"github.com/openai/openai-go/v2/option"
	"github.com/sirupsen/logrus"
)

// App holds the pipeline stages and their shared dependencies
type App struct {
	provider    TranscriptProvider
	fetcher     *Fetcher
	restorer    Restorer
	chat        ChatClient
	prompts     *PromptManager
	ai          *AI
	config      *Config
	ui          UIManager
	log         logrus.FieldLogger
	temperature float64
}

// AppOption customizes App creation
type AppOption func(*App)

// WithProvider sets a custom transcript provider
func WithProvider(provider TranscriptProvider) AppOption {
	return func(a *App) {
		a.provider = provider
	}
}

// WithRestorer sets a custom punctuation restorer
func WithRestorer(restorer Restorer) AppOption {
	return func(a *App) {
		a.restorer = restorer
	}
}

// WithChatClient sets a custom chat completion client
func WithChatClient(chat ChatClient) AppOption {
	return func(a *App) {
		a.chat = chat
	}
}

// WithUI sets the status output
func WithUI(ui UIManager) AppOption {
	return func(a *App) {
		a.ui = ui
	}
}

// WithLogger sets the logger
func WithLogger(log logrus.FieldLogger) AppOption {
	return func(a *App) {
		a.log = log
	}
}

// WithTemperature overrides the console temperature, e.g. for the web form
func WithTemperature(t float64) AppOption {
	return func(a *App) {
		a.temperature = t
	}
}

// NewApp validates the configuration and wires the pipeline. A missing API
// key fails here, before any component is built or any request is made.
func NewApp(config *Config, options ...AppOption) (*App, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	app := &App{
		config:      config,
		temperature: config.ConsoleTemperature,
	}
	for _, option := range options {
		option(app)
	}

	if app.log == nil {
		app.log = NewLogger(os.Stderr, config.Verbose)
	}
	if app.ui == nil {
		app.ui = NewUIManager(config.Quiet)
	}
	if app.chat == nil {
		app.chat = newChatClient(config)
	}
	if app.provider == nil {
		app.provider = NewYtDlpProvider(config.SubLangs, config.TempDir, app.log)
	}
	if app.restorer == nil {
		app.restorer = newRestorer(config, app.chat, app.log)
	}

	prompts, err := NewPromptManager(config.SummaryPrompt, config.AnswerPrompt)
	if err != nil {
		return nil, err
	}
	app.prompts = prompts
	app.fetcher = NewFetcher(app.provider, app.log)
	app.ai = NewAI(app.chat, prompts, app.generationParams(config), app.log)

	return app, nil
}

func newChatClient(config *Config) ChatClient {
	if config.Provider == ProviderGemini {
		return NewGeminiClient(config.GeminiAPIKey)
	}
	var opts []option.RequestOption
	if config.OpenAIBaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.OpenAIBaseURL))
	}
	return NewOpenAIClient(config.OpenAIAPIKey, opts...)
}

func newRestorer(config *Config, chat ChatClient, log logrus.FieldLogger) Restorer {
	switch config.PunctuationBackend {
	case PunctuationLLM:
		return NewLLMRestorer(chat, config.Model, config.PunctuationMaxTokens)
	case PunctuationNone:
		return NopRestorer{}
	default:
		return NewPunctuationModel(config.PunctuationEndpoint, config.PunctuationToken, config.PunctuationTimeout, log)
	}
}

func (app *App) generationParams(config *Config) GenerationParams {
	return GenerationParams{
		Model:       config.Model,
		Temperature: app.temperature,
		MaxTokens:   config.MaxTokens,
		Timeout:     config.RequestTimeout,
	}
}

// Reload applies prompt and generation settings from a new config. The
// temperature is taken from the same front end the app was built for.
// Nothing changes unless the whole config is accepted.
func (app *App) Reload(config *Config, web bool) error {
	if err := ValidateModel(app.config.Provider, config.Model); err != nil {
		return err
	}
	t := config.ConsoleTemperature
	if web {
		t = config.WebTemperature
	}
	if err := ValidateTemperature(t); err != nil {
		return err
	}
	summary, answer, err := parsePrompts(config.SummaryPrompt, config.AnswerPrompt)
	if err != nil {
		return err
	}

	app.prompts.set(summary, answer)
	app.temperature = t
	app.ai.SetParams(app.generationParams(config))
	return nil
}

// Logger returns the app's logger
func (app *App) Logger() logrus.FieldLogger {
	return app.log
}

// Transcript fetches the raw transcript for ref
func (app *App) Transcript(ctx context.Context, ref string) (string, error) {
	spinner := app.ui.NewSpinner("Fetching transcript...")
	defer spinner.Finish()

	return app.fetcher.Fetch(ctx, ref)
}

// Restore punctuates a raw transcript
func (app *App) Restore(ctx context.Context, raw string) (string, error) {
	spinner := app.ui.NewSpinner("Restoring punctuation...")
	defer spinner.Finish()

	text, err := app.restorer.Restore(ctx, raw)
	if err != nil {
		return "", ensureKind(err, ErrRestore)
	}
	return text, nil
}

// PunctuatedTranscript fetches and punctuates the transcript for ref
func (app *App) PunctuatedTranscript(ctx context.Context, ref string) (string, error) {
	raw, err := app.Transcript(ctx, ref)
	if err != nil {
		return "", err
	}
	return app.Restore(ctx, raw)
}

// Summarize generates a summary of transcript
func (app *App) Summarize(ctx context.Context, transcript string) (string, error) {
	if transcript == "" {
		return "", ErrNoTranscript
	}
	spinner := app.ui.NewSpinner("Summarizing...")
	defer spinner.Finish()

	return app.ai.Summarize(ctx, transcript)
}

// Answer answers question from transcript
func (app *App) Answer(ctx context.Context, transcript, question string) (string, error) {
	if transcript == "" {
		return "", ErrNoTranscript
	}
	if strings.TrimSpace(question) == "" {
		return "", ErrEmptyQuestion
	}
	spinner := app.ui.NewSpinner("Answering...")
	defer spinner.Finish()

	return app.ai.Answer(ctx, transcript, question)
}
