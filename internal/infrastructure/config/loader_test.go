package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/shellbuddy/internal/domain"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	loader := NewFileLoader(filepath.Join(t.TempDir(), "config.json"))
	cfg, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.ProviderGemini, cfg.APIProvider)
	assert.Equal(t, domain.DefaultGeminiModel, cfg.Model)
	assert.Equal(t, "logs", cfg.LogDir)
	assert.Equal(t, domain.DefaultMaxOutputBytes, cfg.MaxOutputBytes)
	assert.True(t, cfg.AutoContinueEnabled())
}

func TestLoadJSONConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	raw := `{
  "api_provider": "OpenAI",
  "log_dir": "/var/tmp/sb",
  "api_keys": {"OPENAI_API_KEY": "sk-file"},
  "auto_continue": false,
  "max_output_bytes": 2048
}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	cfg, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.ProviderOpenAI, cfg.APIProvider)
	assert.Equal(t, domain.DefaultOpenAIModel, cfg.Model)
	assert.Equal(t, "/var/tmp/sb", cfg.LogDir)
	assert.Equal(t, 2048, cfg.MaxOutputBytes)
	assert.False(t, cfg.AutoContinueEnabled())
	assert.Equal(t, "sk-file", cfg.APIKeys[domain.OpenAIAPIKeyName])
}

func TestLoadKeepsExplicitZeros(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	raw := `{"temperature": 0, "request_timeout_seconds": 0, "command_timeout_seconds": 0}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	cfg, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)
	assert.Zero(t, cfg.SamplingTemperature())
	assert.Zero(t, cfg.RequestTimeout())
	assert.Zero(t, cfg.CommandTimeout())
}

func TestLoadAbsentFieldsGetDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: m\n"), 0o600))

	cfg, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cfg.Temperature)
	assert.Equal(t, domain.DefaultTemperature, *cfg.Temperature)
	assert.Equal(t, time.Duration(domain.DefaultRequestTimeoutSeconds)*time.Second, cfg.RequestTimeout())
	assert.Equal(t, time.Duration(domain.DefaultCommandTimeoutSeconds)*time.Second, cfg.CommandTimeout())
}

func TestLoadYAMLConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "api_provider: gemini\nmodel: gemini-2.0-pro\nmax_steps: 3\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	cfg, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-pro", cfg.Model)
	assert.Equal(t, 3, cfg.MaxSteps)
}

func TestLoadInvalidFileIsConfigError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"api_provider": [`), 0o600))

	_, err := NewFileLoader(path).Load(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsConfigError(err))
}

func TestPathResolution(t *testing.T) {
	dir := t.TempDir()
	prev, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(prev) })
	require.NoError(t, os.Chdir(dir))
	t.Setenv(EnvConfigPath, "")

	assert.Equal(t, domain.DefaultConfigFile, NewFileLoader("").Path())

	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.AlternateConfigFile), []byte("model: x\n"), 0o600))
	assert.Equal(t, domain.AlternateConfigFile, NewFileLoader("").Path())

	t.Setenv(EnvConfigPath, "/etc/sb.json")
	assert.Equal(t, "/etc/sb.json", NewFileLoader("").Path())
	assert.Equal(t, "/opt/c.json", NewFileLoader("/opt/c.json").Path())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.Model = "gemini-custom"
	require.NoError(t, Save(path, cfg))

	loaded, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "gemini-custom", loaded.Model)
}

func TestInitWritesLoadableDefaults(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"config.json", "config.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, Init(path, false))

			cfg, err := NewFileLoader(path).Load(context.Background())
			require.NoError(t, err)
			assert.Equal(t, DefaultConfig().Model, cfg.Model)
			assert.True(t, cfg.AutoContinueEnabled())

			err = Init(path, false)
			require.Error(t, err)
			assert.True(t, domain.IsConfigError(err))
			assert.NoError(t, Init(path, true))
		})
	}
}
