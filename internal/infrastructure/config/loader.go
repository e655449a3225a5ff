package config

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/shellbuddy/internal/domain"
	"github.com/doeshing/shellbuddy/internal/pkg/filesystem"
	"github.com/doeshing/shellbuddy/internal/ports"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "SHELLBUDDY_CONFIG"

// FileLoader loads config.json (or config.yaml) from the working directory,
// overridable via --config or SHELLBUDDY_CONFIG. JSON is decoded with the YAML
// decoder, which accepts both formats.
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. A missing file yields defaults.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return hydrateDefaults(domain.Config{}), nil
		}
		return domain.Config{}, &domain.ConfigError{Field: path, Err: err}
	}

	var cfg domain.Config
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return domain.Config{}, &domain.ConfigError{Field: path, Err: err}
		}
	}
	return hydrateDefaults(cfg), nil
}

// Path returns the file that Load reads.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return filesystem.ExpandPath(l.overridePath, "")
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return filesystem.ExpandPath(custom, "")
	}
	if _, err := os.Stat(domain.DefaultConfigFile); err != nil {
		if _, yamlErr := os.Stat(domain.AlternateConfigFile); yamlErr == nil {
			return domain.AlternateConfigFile
		}
	}
	return domain.DefaultConfigFile
}

// Save writes cfg to path, as JSON when the file ends in .json and YAML otherwise.
func Save(path string, cfg domain.Config) error {
	var (
		raw []byte
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		raw, err = json.MarshalIndent(cfg, "", "  ")
		raw = append(raw, '\n')
	} else {
		raw, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
			return err
		}
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

// Init writes the default configuration to path. An existing file is kept
// unless force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return &domain.ConfigError{Field: path, Err: errors.New("file exists, use --force to overwrite")}
	}
	cfg := DefaultConfig()
	enabled := true
	cfg.AutoContinue = &enabled
	cfg.History = &enabled
	cfg.APIKeys = map[string]string{domain.GeminiAPIKeyName: "", domain.OpenAIAPIKeyName: ""}
	return Save(path, cfg)
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() domain.Config {
	return hydrateDefaults(domain.Config{})
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	cfg.APIProvider = domain.ProviderName(strings.ToLower(strings.TrimSpace(string(cfg.APIProvider))))
	if cfg.APIProvider == "" {
		cfg.APIProvider = domain.DefaultProvider
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = domain.DefaultGeminiModel
		if cfg.APIProvider == domain.ProviderOpenAI {
			cfg.Model = domain.DefaultOpenAIModel
		}
	}
	if cfg.LogDir == "" {
		cfg.LogDir = domain.DefaultLogDir
	}
	if cfg.Temperature == nil {
		cfg.Temperature = domain.Ptr(domain.DefaultTemperature)
	}
	if cfg.RequestTimeoutSeconds == nil {
		cfg.RequestTimeoutSeconds = domain.Ptr(domain.DefaultRequestTimeoutSeconds)
	}
	if cfg.CommandTimeoutSeconds == nil {
		cfg.CommandTimeoutSeconds = domain.Ptr(domain.DefaultCommandTimeoutSeconds)
	}
	if cfg.MaxOutputBytes == 0 {
		cfg.MaxOutputBytes = domain.DefaultMaxOutputBytes
	}
	if cfg.MaxSteps == 0 {
		cfg.MaxSteps = domain.DefaultMaxSteps
	}
	if cfg.APIKeys == nil {
		cfg.APIKeys = map[string]string{}
	}
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
