package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yndnr/rudis-go/internal/infra/confloader"
)

// EnvPrefix is the environment prefix for CLI settings.
const EnvPrefix = "RUDIS_CLI_"

func rudisDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".rudis")
}

// DefaultConfigPath returns the default CLI config file path.
func DefaultConfigPath() string {
	return filepath.Join(rudisDir(), "cli.yaml")
}

// DefaultHistoryPath returns the default REPL history path.
func DefaultHistoryPath() string {
	return filepath.Join(rudisDir(), "history")
}

// Load loads CLI configuration. An empty path means DefaultConfigPath,
// which may be absent. An explicit path must exist.
func Load(path string) (*CLIConfig, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}

	opts := []confloader.Option{
		confloader.WithEnvPrefix(EnvPrefix),
		confloader.WithDefaults(defaultMap()),
	}

	if _, err := os.Stat(path); err == nil {
		opts = append(opts, confloader.WithConfigFile(path))
	} else if explicit || !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	var cfg CLIConfig
	if err := confloader.NewLoader(opts...).Load(&cfg); err != nil {
		return nil, err
	}
	if err := Verify(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Verify checks the configuration.
func Verify(cfg *CLIConfig) error {
	var errs []error
	if cfg.Server == "" {
		errs = append(errs, errors.New("server: must not be empty"))
	}
	if cfg.DialTimeout <= 0 {
		errs = append(errs, errors.New("dial_timeout: must be positive"))
	}
	if cfg.ReplyTimeout <= 0 {
		errs = append(errs, errors.New("reply_timeout: must be positive"))
	}
	switch cfg.Output {
	case "text", "json", "yaml":
	default:
		errs = append(errs, fmt.Errorf("output: unknown format %q", cfg.Output))
	}
	return errors.Join(errs...)
}
