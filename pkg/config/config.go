// Package config provides configuration management for cmenu.
// It handles loading, merging, and accessing configuration from default and user config files.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

//go:embed default.toml
var defaultConfigData string

// Config is the merged runtime configuration
type Config struct {
	LogFile  string     `toml:"log_file"`
	LogLevel string     `toml:"log_level"`
	Menu     MenuConfig `toml:"menu"`
}

// MenuConfig describes one menu and its items
type MenuConfig struct {
	Title            string       `toml:"title"`
	StartIndex       int          `toml:"start_index"`
	ExitLabel        string       `toml:"exit_label"`
	InvalidMessage   string       `toml:"invalid_message"`
	PauseAfterAction bool         `toml:"pause_after_action"`
	Items            []ItemConfig `toml:"items"`
}

// ItemConfig is a single selection. Key is optional; without it the
// next auto key is used. Action is decoded by the action package.
type ItemConfig struct {
	Name   string                 `toml:"name"`
	Key    *int                   `toml:"key"`
	Action map[string]interface{} `toml:"action"`
}

// MenuConfigFile is read from TOML with pointers for optional fields
type MenuConfigFile struct {
	Title            *string      `toml:"title"`
	StartIndex       *int         `toml:"start_index"`
	ExitLabel        *string      `toml:"exit_label"`
	InvalidMessage   *string      `toml:"invalid_message"`
	PauseAfterAction *bool        `toml:"pause_after_action"`
	Items            []ItemConfig `toml:"items"`
}

// ConfigFile is read from a user or system TOML file
type ConfigFile struct {
	LogFile  *string        `toml:"log_file"`
	LogLevel *string        `toml:"log_level"`
	Menu     MenuConfigFile `toml:"menu"`
}

// GetUserConfigPath returns the user config path
func GetUserConfigPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "cmenu", "config.toml")
}

// GetSystemConfigPath returns the system config path
func GetSystemConfigPath() string {
	return "/etc/cmenu/config.toml"
}

// Load merges defaults with the user config, or the system config when no
// user config exists. A broken user or system file falls back to defaults
// with a warning.
func Load() (*Config, error) {
	defaultCfg, err := loadDefaultConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	userConfigPath := GetUserConfigPath()
	if _, err := os.Stat(userConfigPath); err == nil {
		userCfg, err := loadConfigFromFile(userConfigPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to load user config: %v\n", err)
			fmt.Fprintf(os.Stderr, "Using default configuration\n")
			return defaultCfg, nil
		}
		return mergeConfigs(defaultCfg, userCfg), nil
	}

	systemConfigPath := GetSystemConfigPath()
	if _, err := os.Stat(systemConfigPath); err == nil {
		systemCfg, err := loadConfigFromFile(systemConfigPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to load system config: %v\n", err)
			return defaultCfg, nil
		}
		return mergeConfigs(defaultCfg, systemCfg), nil
	}

	return defaultCfg, nil
}

// LoadFile merges defaults with an explicitly named file. Unlike Load, a
// missing or invalid file is an error.
func LoadFile(path string) (*Config, error) {
	defaultCfg, err := loadDefaultConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	fileCfg, err := loadConfigFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return mergeConfigs(defaultCfg, fileCfg), nil
}

func loadDefaultConfig() (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(defaultConfigData, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadConfigFromFile(path string) (*ConfigFile, error) {
	var cfg ConfigFile
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeConfigs overlays user values on top of defaults
func mergeConfigs(defaultCfg *Config, userCfg *ConfigFile) *Config {
	merged := *defaultCfg

	if userCfg.LogFile != nil {
		merged.LogFile = *userCfg.LogFile
	}
	if userCfg.LogLevel != nil && *userCfg.LogLevel != "" {
		merged.LogLevel = *userCfg.LogLevel
	}

	mergeMenuConfig(&merged.Menu, &userCfg.Menu)

	return &merged
}

func mergeMenuConfig(merged *MenuConfig, user *MenuConfigFile) {
	if user.Title != nil && *user.Title != "" {
		merged.Title = *user.Title
	}
	if user.StartIndex != nil {
		merged.StartIndex = *user.StartIndex
	}
	if user.ExitLabel != nil && *user.ExitLabel != "" {
		merged.ExitLabel = *user.ExitLabel
	}
	if user.InvalidMessage != nil && *user.InvalidMessage != "" {
		merged.InvalidMessage = *user.InvalidMessage
	}
	if user.PauseAfterAction != nil {
		merged.PauseAfterAction = *user.PauseAfterAction
	}

	// Items replace the defaults as a whole
	if len(user.Items) > 0 {
		merged.Items = user.Items
	}
}

// InitUserConfig copies the default config into the user config directory
func InitUserConfig() error {
	userConfigPath := GetUserConfigPath()
	userConfigDir := filepath.Dir(userConfigPath)

	if _, err := os.Stat(userConfigPath); err == nil {
		return fmt.Errorf("config already exists: %s", userConfigPath)
	}

	if err := os.MkdirAll(userConfigDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(userConfigPath, []byte(defaultConfigData), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetDefaultConfigContent returns the embedded default config
func GetDefaultConfigContent() string {
	return defaultConfigData
}
