package doctor

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/shellbuddy/internal/domain"
)

type stubConfig struct {
	cfg domain.Config
	err error
}

func (s stubConfig) Load(context.Context) (domain.Config, error) { return s.cfg, s.err }

type stubEnv struct{ env domain.Environment }

func (s stubEnv) Collect(context.Context) domain.Environment { return s.env }

func validConfig(t *testing.T) domain.Config {
	return domain.Config{
		APIProvider:           domain.ProviderOpenAI,
		Model:                 "gpt-4o-mini",
		LogDir:                filepath.Join(t.TempDir(), "logs"),
		Temperature:           domain.Ptr(0.7),
		RequestTimeoutSeconds: domain.Ptr(60),
		CommandTimeoutSeconds: domain.Ptr(30),
		MaxOutputBytes:        1024,
		MaxSteps:              10,
		Shell:                 "/bin/sh",
		APIKeys:               map[string]string{domain.OpenAIAPIKeyName: "sk-abcdef1234"},
	}
}

func statusByName(report domain.HealthReport) map[string]domain.HealthCheck {
	out := map[string]domain.HealthCheck{}
	for _, c := range report.Checks {
		out[c.Name] = c
	}
	return out
}

func TestDoctorHealthy(t *testing.T) {
	t.Setenv(domain.OpenAIAPIKeyName, "")
	svc := &Service{
		ConfigProvider:       stubConfig{cfg: validConfig(t)},
		EnvironmentCollector: stubEnv{env: domain.Environment{Distro: "debian", AvailableTools: []string{"git"}}},
		LookPath:             func(s string) (string, error) { return s, nil },
	}

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Failed())

	checks := statusByName(report)
	assert.Equal(t, domain.HealthOK, checks["API key"].Status)
	assert.Contains(t, checks["API key"].Details, "****1234")
	assert.NotContains(t, checks["API key"].Details, "sk-abcdef")
	assert.Equal(t, domain.HealthOK, checks["Log directory"].Status)
	assert.Equal(t, "debian", checks["Distribution"].Details)
	assert.Equal(t, domain.HealthWarn, checks["Guardrail"].Status)
}

func TestDoctorReportsProblems(t *testing.T) {
	t.Setenv(domain.OpenAIAPIKeyName, "")
	cfg := validConfig(t)
	cfg.APIKeys = nil
	svc := &Service{
		ConfigProvider:       stubConfig{cfg: cfg},
		EnvironmentCollector: stubEnv{env: domain.Environment{Distro: "unknown"}},
		LookPath:             func(string) (string, error) { return "", errors.New("not found") },
	}

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Failed())

	checks := statusByName(report)
	assert.Equal(t, domain.HealthError, checks["API key"].Status)
	assert.Equal(t, domain.HealthError, checks["Shell"].Status)
	assert.Equal(t, domain.HealthWarn, checks["Distribution"].Status)
}

func TestDoctorConfigLoadFailure(t *testing.T) {
	svc := &Service{ConfigProvider: stubConfig{err: &domain.ConfigError{Field: "config.json", Err: errors.New("bad yaml")}}}

	report, err := svc.Run(context.Background())
	require.Error(t, err)
	require.Len(t, report.Checks, 1)
	assert.Equal(t, domain.HealthError, report.Checks[0].Status)
}
