package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lconfig "github.com/lixenwraith/config"
)

// Load layers defaults, the TOML file at path, LOGWARD_-prefixed
// environment variables and CLI arguments into a validated Config. A
// missing file is not an error; the other sources still apply.
func Load(path string, cliArgs []string) (*Config, error) {
	cfg, err := lconfig.NewBuilder().
		WithDefaults(defaults()).
		WithEnvPrefix("LOGWARD_").
		WithFile(path).
		WithArgs(cliArgs).
		WithSources(
			lconfig.SourceCLI,
			lconfig.SourceEnv,
			lconfig.SourceFile,
			lconfig.SourceDefault,
		).
		Build()
	if err != nil {
		if !strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	finalConfig := &Config{}
	if err := cfg.Scan(finalConfig, ""); err != nil {
		return nil, fmt.Errorf("failed to scan config: %w", err)
	}

	return finalConfig, finalConfig.validate()
}

// DefaultPath resolves the config file location: LOGWARD_CONFIG_FILE,
// then LOGWARD_CONFIG_DIR, then ~/.config/logward.toml.
func DefaultPath() string {
	if configFile := os.Getenv("LOGWARD_CONFIG_FILE"); configFile != "" {
		if filepath.IsAbs(configFile) {
			return configFile
		}
		if configDir := os.Getenv("LOGWARD_CONFIG_DIR"); configDir != "" {
			return filepath.Join(configDir, configFile)
		}
		return configFile
	}

	if configDir := os.Getenv("LOGWARD_CONFIG_DIR"); configDir != "" {
		return filepath.Join(configDir, "logward.toml")
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", "logward.toml")
	}

	return "logward.toml"
}
