// Package app wires application services to infrastructure adapters.
package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	appconfig "github.com/doeshing/shellbuddy/internal/application/config"
	"github.com/doeshing/shellbuddy/internal/application/doctor"
	"github.com/doeshing/shellbuddy/internal/application/session"
	"github.com/doeshing/shellbuddy/internal/domain"
	"github.com/doeshing/shellbuddy/internal/infrastructure/ai"
	"github.com/doeshing/shellbuddy/internal/infrastructure/config"
	contextcollector "github.com/doeshing/shellbuddy/internal/infrastructure/context"
	"github.com/doeshing/shellbuddy/internal/infrastructure/executor"
	"github.com/doeshing/shellbuddy/internal/infrastructure/history"
	"github.com/doeshing/shellbuddy/internal/infrastructure/security"
	"github.com/doeshing/shellbuddy/internal/infrastructure/sessionlog"
	"github.com/doeshing/shellbuddy/internal/pkg/filesystem"
	"github.com/doeshing/shellbuddy/internal/pkg/logger"
	"github.com/doeshing/shellbuddy/internal/ports"
)

// Options carries the global CLI flags.
type Options struct {
	ConfigPath string
	Verbose    bool
	Provider   string
	Model      string
}

// UI bundles the terminal adapters owned by the CLI layer.
type UI struct {
	Console   ports.Console
	Input     ports.LineReader
	Confirmer ports.Confirmer
}

// Container wires up application services with infrastructure adapters.
// Configuration is loaded lazily so `doctor` and `config` work with a broken file.
type Container struct {
	Options         Options
	Logger          *logger.ZapLogger
	ConfigLoader    *config.FileLoader
	ConfigProvider  ports.ConfigProvider
	ProviderFactory ports.ProviderFactory
	DoctorService   *doctor.Service

	configOnce sync.Once
	config     domain.Config
	configErr  error

	historyOnce sync.Once
	history     ports.HistoryRepository
}

// BuildContainer constructs the dependency graph.
func BuildContainer(_ context.Context, opts Options) (*Container, error) {
	log, err := logger.New(opts.Verbose)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	loader := config.NewFileLoader(opts.ConfigPath)
	provider := &overrideProvider{base: loader, provider: opts.Provider, model: opts.Model}

	c := &Container{
		Options:         opts,
		Logger:          log,
		ConfigLoader:    loader,
		ConfigProvider:  provider,
		ProviderFactory: ai.NewFactory(&http.Client{}),
	}
	c.DoctorService = &doctor.Service{
		ConfigProvider:       provider,
		EnvironmentCollector: contextcollector.NewCollector(nil),
		SecurityService:      c.guardrail(domain.Config{}),
	}
	return c, nil
}

// Config loads, overrides and validates the configuration once.
func (c *Container) Config(ctx context.Context) (domain.Config, error) {
	c.configOnce.Do(func() {
		cfg, err := c.ConfigProvider.Load(ctx)
		if err == nil {
			err = appconfig.Validate(cfg)
		}
		c.config, c.configErr = cfg, err
		if err == nil {
			c.Logger.Debug("config loaded", map[string]interface{}{
				"path":     c.ConfigLoader.Path(),
				"provider": cfg.APIProvider,
				"model":    cfg.Model,
			})
		}
	})
	return c.config, c.configErr
}

// History returns the history store under the configured log directory.
func (c *Container) History(ctx context.Context) (ports.HistoryRepository, error) {
	cfg, err := c.Config(ctx)
	if err != nil {
		return nil, err
	}
	c.historyOnce.Do(func() {
		c.history = history.Open(filesystem.ExpandPath(cfg.LogDir, ""))
		c.Logger.Debug("history store opened", map[string]interface{}{"path": c.history.Path()})
	})
	return c.history, nil
}

// StartSession builds everything one chat session needs. The API key is
// checked here, so subcommands that never talk to a model work without one.
func (c *Container) StartSession(ctx context.Context, ui UI) (*session.Service, *session.Session, error) {
	cfg, err := c.Config(ctx)
	if err != nil {
		return nil, nil, err
	}
	if _, err := appconfig.RequireAPIKey(cfg); err != nil {
		return nil, nil, err
	}
	provider, err := c.ProviderFactory.ForConfig(cfg)
	if err != nil {
		return nil, nil, err
	}

	runner := executor.NewLocalExecutor(executor.Options{
		Shell:          cfg.Shell,
		Timeout:        cfg.CommandTimeout(),
		MaxOutputBytes: cfg.MaxOutputBytes,
	})
	env := contextcollector.NewCollector(runner.WorkDir).Collect(ctx)
	env.Shell = runner.Shell()
	prompt, err := ai.SystemPrompt(env)
	if err != nil {
		return nil, nil, fmt.Errorf("render system prompt: %w", err)
	}
	sess := session.New(prompt)

	logDir := filesystem.ExpandPath(cfg.LogDir, "")
	sessionLog := sessionlog.Open(logDir, sess.ID, cfg.MaxOutputBytes, func(err error) {
		c.Logger.Warn("session log write failed", map[string]interface{}{"error": err.Error()})
		ui.Console.Warn(err.Error())
	})

	svc := &session.Service{
		Provider:       provider,
		Confirmer:      ui.Confirmer,
		Executor:       runner,
		Console:        ui.Console,
		Input:          ui.Input,
		SessionLog:     sessionLog,
		Logger:         c.Logger,
		AutoContinue:   cfg.AutoContinueEnabled(),
		MaxSteps:       cfg.MaxSteps,
		RequestTimeout: cfg.RequestTimeout(),
	}
	if cfg.HistoryEnabled() {
		if store, err := c.History(ctx); err == nil {
			svc.History = store
		}
	}

	c.Logger.Info("session prepared", map[string]interface{}{
		"session":   sess.ID,
		"distro":    env.Distro,
		"work_dir":  runner.WorkDir(),
		"log":       sessionLog.Path(),
		"auto":      svc.AutoContinue,
		"max_steps": svc.MaxSteps,
	})
	return svc, sess, nil
}

// Guardrail returns the advisory rule set for the confirmer.
func (c *Container) Guardrail(ctx context.Context) ports.SecurityService {
	cfg, _ := c.Config(ctx)
	return c.guardrail(cfg)
}

func (c *Container) guardrail(cfg domain.Config) ports.SecurityService {
	g, err := security.NewGuardrail(cfg.GuardrailRules)
	if err != nil {
		c.Logger.Warn("guardrail rules rejected, using defaults", map[string]interface{}{"error": err.Error()})
		g, _ = security.NewGuardrail("")
	}
	return g
}

// Close releases the history store and flushes the diagnostic logger.
func (c *Container) Close() {
	if closer, ok := c.history.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	c.Logger.Sync()
}
