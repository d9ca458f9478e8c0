package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "dendro"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
	// EnvConfigPath overrides the global config location.
	EnvConfigPath = "DENDRO_CONFIG"
)

// globalConfigCache caches the loaded global config.
var (
	globalConfigMu    sync.Mutex
	globalConfigCache *Config
)

// GlobalConfigPath returns the path to the global config file.
// DENDRO_CONFIG wins; otherwise XDG_CONFIG_HOME is respected, defaulting to
// ~/.config/dendro/config.yml.
func GlobalConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return ExpandPath(p)
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobal loads the global configuration file.
// Returns the defaults (not an error) if the file doesn't exist. Each call
// returns a fresh copy, so callers may modify it.
func LoadGlobal() (*Config, error) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()

	if globalConfigCache != nil {
		return globalConfigCache.Clone(), nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	globalConfigCache = cfg
	return cfg.Clone(), nil
}

// Resolve returns the configuration at path, or the global configuration
// when path is empty.
func Resolve(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	return LoadGlobal()
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfigCache = nil
}
