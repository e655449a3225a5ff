// Package doctor runs environment diagnostics for `shellbuddy doctor`.
package doctor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	appconfig "github.com/doeshing/shellbuddy/internal/application/config"
	"github.com/doeshing/shellbuddy/internal/domain"
	"github.com/doeshing/shellbuddy/internal/pkg/filesystem"
	"github.com/doeshing/shellbuddy/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider       ports.ConfigProvider
	EnvironmentCollector ports.EnvironmentCollector
	SecurityService      ports.SecurityService
	// LookPath resolves the shell binary; defaults to exec.LookPath.
	LookPath func(string) (string, error)
}

// Run executes checks and returns a report. A config that cannot be loaded
// stops the run and is also returned as the error.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	if err := appconfig.Validate(cfg); err != nil {
		checks = append(checks, fail("Config file", err.Error()))
	} else {
		checks = append(checks, ok("Config file", fmt.Sprintf("provider %s, model %s", cfg.APIProvider, cfg.Model)))
	}

	checks = append(checks, apiKeyCheck(cfg))
	checks = append(checks, s.shellCheck(cfg))
	checks = append(checks, logDirCheck(cfg.LogDir))

	if s.SecurityService != nil {
		if _, err := s.SecurityService.Evaluate("ls"); err != nil {
			checks = append(checks, fail("Guardrail", err.Error()))
		} else {
			checks = append(checks, ok("Guardrail", "rules loaded"))
		}
	} else {
		checks = append(checks, warn("Guardrail", "security service not initialized"))
	}

	if s.EnvironmentCollector != nil {
		env := s.EnvironmentCollector.Collect(ctx)
		if env.Distro == "" || env.Distro == "unknown" {
			checks = append(checks, warn("Distribution", "could not read /etc/os-release"))
		} else {
			checks = append(checks, ok("Distribution", env.Distro))
		}
		checks = append(checks, ok("Tools", fmt.Sprintf("detected %d: %s", len(env.AvailableTools), strings.Join(env.AvailableTools, ", "))))
	}

	return domain.HealthReport{Checks: checks}, nil
}

func apiKeyCheck(cfg domain.Config) domain.HealthCheck {
	name := cfg.APIKeyName()
	if name == "" {
		return fail("API key", fmt.Sprintf("unknown provider %q", cfg.APIProvider))
	}
	key, found := cfg.APIKey()
	if !found {
		return fail("API key", name+" missing (config api_keys or environment)")
	}
	return ok("API key", fmt.Sprintf("%s %s", name, domain.MaskSecret(key)))
}

func (s *Service) shellCheck(cfg domain.Config) domain.HealthCheck {
	shell := cfg.Shell
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/sh"
	}
	lookPath := s.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	path, err := lookPath(shell)
	if err != nil {
		return fail("Shell", fmt.Sprintf("%s not found: %v", shell, err))
	}
	return ok("Shell", path)
}

func logDirCheck(dir string) domain.HealthCheck {
	dir = filesystem.ExpandPath(dir, "")
	if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
		return warn("Log directory", fmt.Sprintf("%s not writable: %v (session log disabled)", dir, err))
	}
	probe, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return warn("Log directory", fmt.Sprintf("%s not writable: %v (session log disabled)", dir, err))
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
	return ok("Log directory", filepath.Clean(dir))
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
