package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/launchlens/internal/progress"
	"github.com/sells-group/launchlens/internal/resilience"
)

// Config holds the full application configuration.
type Config struct {
	API      APIConfig      `yaml:"api" mapstructure:"api"`
	Session  SessionConfig  `yaml:"session" mapstructure:"session"`
	Analysis AnalysisConfig `yaml:"analysis" mapstructure:"analysis"`
	Export   ExportConfig   `yaml:"export" mapstructure:"export"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// APIConfig holds the remote LaunchLens service settings.
type APIConfig struct {
	BaseURL       string  `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs   int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RatePerSec    float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	RetryAttempts int     `yaml:"retry_attempts" mapstructure:"retry_attempts"`
}

// SessionConfig configures credential persistence and the liveness probe.
type SessionConfig struct {
	Path            string `yaml:"path" mapstructure:"path"`
	ProbeIntervalMs int    `yaml:"probe_interval_ms" mapstructure:"probe_interval_ms"`
}

// AnalysisConfig configures the simulated progress feedback.
type AnalysisConfig struct {
	BudgetSecs          int `yaml:"budget_secs" mapstructure:"budget_secs"`
	ProgressCap         int `yaml:"progress_cap" mapstructure:"progress_cap"`
	ProgressIntervalMs  int `yaml:"progress_interval_ms" mapstructure:"progress_interval_ms"`
	CountdownIntervalMs int `yaml:"countdown_interval_ms" mapstructure:"countdown_interval_ms"`
}

// ExportConfig configures where exported documents are written.
type ExportConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Timeout returns the HTTP client timeout.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// Retry converts the API settings to a retry policy for read-only calls.
func (c APIConfig) Retry() resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	if c.RetryAttempts > 0 {
		cfg.MaxAttempts = c.RetryAttempts
	}
	return cfg
}

// ProbeInterval returns the session liveness probe period.
func (c SessionConfig) ProbeInterval() time.Duration {
	return time.Duration(c.ProbeIntervalMs) * time.Millisecond
}

// Simulator converts the analysis settings to a progress simulator config.
// Zero values fall back to the simulator defaults.
func (c AnalysisConfig) Simulator() progress.Config {
	cfg := progress.DefaultConfig()
	if c.BudgetSecs > 0 {
		cfg.BudgetSeconds = c.BudgetSecs
	}
	if c.ProgressCap > 0 {
		cfg.Cap = c.ProgressCap
	}
	if c.ProgressIntervalMs > 0 {
		cfg.ProgressInterval = time.Duration(c.ProgressIntervalMs) * time.Millisecond
	}
	if c.CountdownIntervalMs > 0 {
		cfg.CountdownInterval = time.Duration(c.CountdownIntervalMs) * time.Millisecond
	}
	return cfg
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	home, _ := os.UserHomeDir()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home != "" {
		v.AddConfigPath(filepath.Join(home, ".launchlens"))
	}

	// Environment
	v.SetEnvPrefix("LAUNCHLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, home)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings every command depends on.
func (c *Config) Validate() error {
	var missing []string
	if c.API.BaseURL == "" {
		missing = append(missing, "api.base_url")
	}
	if c.Session.Path == "" {
		missing = append(missing, "session.path")
	}
	if c.Analysis.ProgressCap > 100 {
		return eris.Errorf("config: analysis.progress_cap must be <= 100, got %d", c.Analysis.ProgressCap)
	}
	if len(missing) > 0 {
		return eris.Errorf("config: missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

func setDefaults(v *viper.Viper, home string) {
	v.SetDefault("api.base_url", "https://qloo-rt0c.onrender.com")
	v.SetDefault("api.timeout_secs", 300)
	v.SetDefault("api.rate_per_sec", 5)
	v.SetDefault("api.retry_attempts", 3)
	v.SetDefault("session.path", filepath.Join(home, ".launchlens", "session.yaml"))
	v.SetDefault("session.probe_interval_ms", 3000)
	v.SetDefault("analysis.budget_secs", 150)
	v.SetDefault("analysis.progress_cap", 95)
	v.SetDefault("analysis.progress_interval_ms", 200)
	v.SetDefault("analysis.countdown_interval_ms", 1000)
	v.SetDefault("export.dir", ".")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
