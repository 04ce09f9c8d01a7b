package internal

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds application settings
type Config struct {
	// User configurable settings
	Provider           string
	Model              string
	ConsoleTemperature float64
	WebTemperature     float64
	MaxTokens          int64
	RequestTimeout     time.Duration
	OpenAIAPIKey       string
	OpenAIBaseURL      string
	GeminiAPIKey       string
	SubLangs           string
	SummaryPrompt      string
	AnswerPrompt       string
	Verbose            bool
	Quiet              bool
	MCPLogEnabled      bool

	PunctuationBackend   string
	PunctuationEndpoint  string
	PunctuationToken     string
	PunctuationTimeout   time.Duration
	PunctuationMaxTokens int64

	ServerAddr string
	SessionTTL time.Duration

	// Fixed XDG paths (not configurable)
	ConfigDir string
	CacheDir  string
	TempDir   string
	LogFile   string

	v *viper.Viper
}

// Supported providers and punctuation backends
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	PunctuationInference = "inference"
	PunctuationLLM       = "llm"
	PunctuationNone      = "none"
)

//go:embed config.toml
var defaultFS embed.FS

// EnsureDefaultConfig writes the embedded default config.toml to configDir
// unless a config file already exists there
func EnsureDefaultConfig(configDir string) (bool, error) {
	filePath := filepath.Join(configDir, "config.toml")
	if FileExists(filePath) {
		return false, nil
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return false, fmt.Errorf("creating config directory: %w", err)
	}

	defaultContent, err := defaultFS.ReadFile("config.toml")
	if err != nil {
		return false, fmt.Errorf("reading embedded default configuration: %w", err)
	}

	if err := os.WriteFile(filePath, defaultContent, 0644); err != nil {
		return false, fmt.Errorf("writing default configuration: %w", err)
	}
	return true, nil
}

// DefaultConfigDir is where config.toml lives unless --config is given
func DefaultConfigDir() string {
	return filepath.Join(xdg.ConfigHome, "ytqa")
}

// InitConfig loads configuration from defaults, the config file and the
// environment. configFile overrides the XDG config location when set.
func InitConfig(configFile string) (*Config, error) {
	configDir := DefaultConfigDir()
	cacheDir := filepath.Join(xdg.CacheHome, "ytqa")

	v := viper.New()

	v.SetDefault("provider", ProviderOpenAI)
	v.SetDefault("model", "gpt-4.1-nano")
	v.SetDefault("console_temperature", 0.7)
	v.SetDefault("web_temperature", 0.5)
	v.SetDefault("max_tokens", 256)
	v.SetDefault("request_timeout", 2*time.Minute)
	v.SetDefault("openai_base_url", "")
	v.SetDefault("sub_langs", "en")
	v.SetDefault("summary_prompt", "")
	v.SetDefault("answer_prompt", "")
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)
	v.SetDefault("mcp_log", false)
	v.SetDefault("punctuation_backend", PunctuationInference)
	v.SetDefault("punctuation_endpoint", "https://router.huggingface.co/hf-inference/models/"+DefaultPunctuationModel)
	v.SetDefault("punctuation_timeout", 5*time.Minute)
	v.SetDefault("punctuation_max_tokens", 16384)
	v.SetDefault("server_addr", ":8501")
	v.SetDefault("session_ttl", time.Hour)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("YTQA")
	v.AutomaticEnv()

	// secrets also come from their conventional variables
	_ = v.BindEnv("openai_api_key", "YTQA_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("gemini_api_key", "YTQA_GEMINI_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("punctuation_token", "YTQA_PUNCTUATION_TOKEN", "HF_TOKEN")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	config := fromViper(v)
	config.ConfigDir = configDir
	config.CacheDir = cacheDir
	config.TempDir = filepath.Join(cacheDir, "tmp")
	config.LogFile = filepath.Join(cacheDir, "ytqa.log")
	config.v = v

	return config, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Provider:           strings.ToLower(v.GetString("provider")),
		Model:              v.GetString("model"),
		ConsoleTemperature: v.GetFloat64("console_temperature"),
		WebTemperature:     v.GetFloat64("web_temperature"),
		MaxTokens:          v.GetInt64("max_tokens"),
		RequestTimeout:     v.GetDuration("request_timeout"),
		OpenAIAPIKey:       v.GetString("openai_api_key"),
		OpenAIBaseURL:      v.GetString("openai_base_url"),
		GeminiAPIKey:       v.GetString("gemini_api_key"),
		SubLangs:           v.GetString("sub_langs"),
		SummaryPrompt:      v.GetString("summary_prompt"),
		AnswerPrompt:       v.GetString("answer_prompt"),
		Verbose:            v.GetBool("verbose"),
		Quiet:              v.GetBool("quiet"),
		MCPLogEnabled:      v.GetBool("mcp_log"),

		PunctuationBackend:   strings.ToLower(v.GetString("punctuation_backend")),
		PunctuationEndpoint:  v.GetString("punctuation_endpoint"),
		PunctuationToken:     v.GetString("punctuation_token"),
		PunctuationTimeout:   v.GetDuration("punctuation_timeout"),
		PunctuationMaxTokens: v.GetInt64("punctuation_max_tokens"),

		ServerAddr: v.GetString("server_addr"),
		SessionTTL: v.GetDuration("session_ttl"),
	}
}

// ConfigFileUsed returns the path of the loaded config file, if any
func (c *Config) ConfigFileUsed() string {
	if c.v == nil {
		return ""
	}
	return c.v.ConfigFileUsed()
}

// Watch calls fn with freshly decoded settings whenever the config file is
// written. Paths and secrets resolved at startup are carried over.
func (c *Config) Watch(fn func(fsnotify.Event, *Config)) {
	if c.v == nil || c.v.ConfigFileUsed() == "" {
		return
	}
	c.v.OnConfigChange(func(e fsnotify.Event) {
		next := fromViper(c.v)
		next.ConfigDir, next.CacheDir, next.TempDir, next.LogFile = c.ConfigDir, c.CacheDir, c.TempDir, c.LogFile
		next.OpenAIAPIKey, next.GeminiAPIKey = c.OpenAIAPIKey, c.GeminiAPIKey
		next.v = c.v
		fn(e, next)
	})
	c.v.WatchConfig()
}

// APIKey returns the key for the configured provider
func (c *Config) APIKey() string {
	if c.Provider == ProviderGemini {
		return c.GeminiAPIKey
	}
	return c.OpenAIAPIKey
}

// Validate checks the settings needed before any pipeline stage runs
func (c *Config) Validate() error {
	if err := ValidateAPIKey(c.APIKey()); err != nil {
		return err
	}
	if err := ValidateModel(c.Provider, c.Model); err != nil {
		return err
	}
	for _, t := range []float64{c.ConsoleTemperature, c.WebTemperature} {
		if err := ValidateTemperature(t); err != nil {
			return err
		}
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens)
	}
	switch c.PunctuationBackend {
	case PunctuationInference, PunctuationLLM, PunctuationNone:
	default:
		return fmt.Errorf("unsupported punctuation backend: %s (supported: %s, %s, %s)",
			c.PunctuationBackend, PunctuationInference, PunctuationLLM, PunctuationNone)
	}
	return nil
}

// ValidateAPIKey fails with ErrMissingAPIKey when apiKey is empty
func ValidateAPIKey(apiKey string) error {
	if strings.TrimSpace(apiKey) == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// ValidateModel checks that the model belongs to the provider
func ValidateModel(provider, model string) error {
	switch provider {
	case ProviderOpenAI:
		supportedModels := []string{"gpt-4.1-nano", "gpt-4.1-mini", "gpt-4.1", "gpt-4o", "gpt-4o-mini"}
		if slices.Contains(supportedModels, model) {
			return nil
		}
		return fmt.Errorf("unsupported model: %s (supported: %s)", model, strings.Join(supportedModels, ", "))
	case ProviderGemini:
		if strings.HasPrefix(model, "gemini-") {
			return nil
		}
		return fmt.Errorf("unsupported model for gemini: %s", model)
	default:
		return fmt.Errorf("unsupported provider: %s (supported: %s, %s)", provider, ProviderOpenAI, ProviderGemini)
	}
}

// ValidateTemperature checks the sampling temperature range
func ValidateTemperature(t float64) error {
	if t < 0 || t > 2 {
		return fmt.Errorf("temperature must be between 0 and 2, got %g", t)
	}
	return nil
}
