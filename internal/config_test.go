package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable the config layer reads
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OPENAI_API_KEY", "GEMINI_API_KEY", "HF_TOKEN",
		"YTQA_OPENAI_API_KEY", "YTQA_GEMINI_API_KEY", "YTQA_PUNCTUATION_TOKEN",
		"YTQA_MODEL", "YTQA_MAX_TOKENS", "YTQA_PROVIDER",
	} {
		t.Setenv(key, "")
	}
}

func TestInitConfigFromFileAndEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
model = "gpt-4o"
web_temperature = 0.3
session_ttl = "15m"
`), 0644))

	t.Setenv("OPENAI_API_KEY", "sk-from-env")
	t.Setenv("HF_TOKEN", "hf-from-env")
	t.Setenv("YTQA_MAX_TOKENS", "512")

	config, err := InitConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenAI, config.Provider)
	assert.Equal(t, "gpt-4o", config.Model)
	assert.Equal(t, 0.7, config.ConsoleTemperature)
	assert.Equal(t, 0.3, config.WebTemperature)
	assert.Equal(t, int64(512), config.MaxTokens)
	assert.Equal(t, 15*time.Minute, config.SessionTTL)
	assert.Equal(t, "sk-from-env", config.OpenAIAPIKey)
	assert.Equal(t, "hf-from-env", config.PunctuationToken)
	assert.Equal(t, PunctuationInference, config.PunctuationBackend)
	assert.Equal(t, path, config.ConfigFileUsed())
	assert.NoError(t, config.Validate())
}

func TestInitConfigPrefixedKeyWins(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	t.Setenv("OPENAI_API_KEY", "sk-plain")
	t.Setenv("YTQA_OPENAI_API_KEY", "sk-prefixed")

	config, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-prefixed", config.OpenAIAPIKey)
}

func TestInitConfigBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("model = ["), 0644))

	_, err := InitConfig(path)
	assert.Error(t, err)
}

func TestEnsureDefaultConfig(t *testing.T) {
	clearEnv(t)
	dir := filepath.Join(t.TempDir(), "ytqa")

	created, err := EnsureDefaultConfig(dir)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = EnsureDefaultConfig(dir)
	require.NoError(t, err)
	assert.False(t, created)

	config, err := InitConfig(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, "gpt-4.1-nano", config.Model)
	assert.Equal(t, int64(256), config.MaxTokens)
	assert.Equal(t, ":8501", config.ServerAddr)
	assert.ErrorIs(t, config.Validate(), ErrMissingAPIKey)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr error
		invalid bool
	}{
		{name: "valid", modify: func(c *Config) {}},
		{name: "missing key", modify: func(c *Config) { c.OpenAIAPIKey = " " }, wantErr: ErrMissingAPIKey},
		{name: "gemini needs its own key", modify: func(c *Config) {
			c.Provider = ProviderGemini
			c.Model = "gemini-2.5-flash"
		}, wantErr: ErrMissingAPIKey},
		{name: "gemini", modify: func(c *Config) {
			c.Provider = ProviderGemini
			c.Model = "gemini-2.5-flash"
			c.GeminiAPIKey = "g-key"
		}},
		{name: "unknown model", modify: func(c *Config) { c.Model = "davinci" }, invalid: true},
		{name: "unknown provider", modify: func(c *Config) { c.Provider = "acme" }, invalid: true},
		{name: "temperature too high", modify: func(c *Config) { c.WebTemperature = 2.5 }, invalid: true},
		{name: "zero max tokens", modify: func(c *Config) { c.MaxTokens = 0 }, invalid: true},
		{name: "unknown punctuation backend", modify: func(c *Config) { c.PunctuationBackend = "regex" }, invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testConfig(t)
			tt.modify(c)
			err := c.Validate()
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.invalid:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}
