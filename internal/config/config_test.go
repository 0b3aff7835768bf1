package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// isolate moves the test into an empty working directory and home so no
// stray config.yaml is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	t.Setenv("HOME", dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://qloo-rt0c.onrender.com", cfg.API.BaseURL)
	assert.Equal(t, 300, cfg.API.TimeoutSecs)
	assert.InDelta(t, 5.0, cfg.API.RatePerSec, 0.001)
	assert.Equal(t, 3, cfg.API.RetryAttempts)
	assert.Equal(t, filepath.Join(dir, ".launchlens", "session.yaml"), cfg.Session.Path)
	assert.Equal(t, 3000, cfg.Session.ProbeIntervalMs)
	assert.Equal(t, 150, cfg.Analysis.BudgetSecs)
	assert.Equal(t, 95, cfg.Analysis.ProgressCap)
	assert.Equal(t, 200, cfg.Analysis.ProgressIntervalMs)
	assert.Equal(t, 1000, cfg.Analysis.CountdownIntervalMs)
	assert.Equal(t, ".", cfg.Export.Dir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromYAML(t *testing.T) {
	dir := isolate(t)

	yaml := `
api:
  base_url: http://localhost:8000
log:
  level: debug
  format: json
analysis:
  budget_secs: 60
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 60, cfg.Analysis.BudgetSecs)
	// Defaults still apply for unset values
	assert.Equal(t, 95, cfg.Analysis.ProgressCap)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := isolate(t)

	yaml := `
api:
  base_url: http://localhost:8000
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("LAUNCHLENS_API_BASE_URL", "http://staging:8000")
	t.Setenv("LAUNCHLENS_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://staging:8000", cfg.API.BaseURL)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestAnalysisConfig_Simulator(t *testing.T) {
	cfg := AnalysisConfig{BudgetSecs: 10, ProgressCap: 50, ProgressIntervalMs: 5, CountdownIntervalMs: 20}
	sim := cfg.Simulator()
	assert.Equal(t, 10, sim.BudgetSeconds)
	assert.Equal(t, 50, sim.Cap)
	assert.Equal(t, 5*time.Millisecond, sim.ProgressInterval)
	assert.Equal(t, 20*time.Millisecond, sim.CountdownInterval)

	zero := AnalysisConfig{}.Simulator()
	assert.Equal(t, 150, zero.BudgetSeconds)
	assert.Equal(t, 95, zero.Cap)
	assert.Equal(t, 200*time.Millisecond, zero.ProgressInterval)
	assert.Equal(t, time.Second, zero.CountdownInterval)
}

func TestAPIConfig_Retry(t *testing.T) {
	assert.Equal(t, 5, APIConfig{RetryAttempts: 5}.Retry().MaxAttempts)
	assert.Equal(t, 3, APIConfig{}.Retry().MaxAttempts)
	assert.Equal(t, 300*time.Second, APIConfig{TimeoutSecs: 300}.Timeout())
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.base_url")
	assert.Contains(t, err.Error(), "session.path")

	cfg.API.BaseURL = "http://localhost"
	cfg.Session.Path = "/tmp/session.yaml"
	cfg.Analysis.ProgressCap = 120
	assert.Error(t, cfg.Validate())

	cfg.Analysis.ProgressCap = 95
	assert.NoError(t, cfg.Validate())
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
