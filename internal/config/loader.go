package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/giantswarm/projectinstall/pkg/logging"
)

const (
	userConfigDir  = ".config/projectinstall"
	configFileName = "config.yaml"
)

// Environment variables that override file configuration.
const (
	EnvAccessToken   = "CONSOLE_ACCESS_TOKEN"
	EnvEnvironment   = "CONSOLE_ENV"
	EnvEndpoint      = "CONSOLE_ENDPOINT"
	EnvAPIKey        = "CONSOLE_API_KEY"
	EnvAdobeIDDomain = "CONSOLE_ADOBEID_DOMAIN"
	EnvWorkers       = "PROJECTINSTALL_WORKERS"
)

// osUserHomeDir is swapped in tests.
var osUserHomeDir = os.UserHomeDir

// DefaultConfigPath returns the default configuration directory.
func DefaultConfigPath() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}
	return filepath.Join(homeDir, userConfigDir), nil
}

// LoadConfig loads config.yaml from configPath on top of the defaults.
// A missing file is not an error.
func LoadConfig(configPath string) (InstallerConfig, error) {
	configFilePath := filepath.Join(configPath, configFileName)
	config := GetDefaultConfig()

	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Debug("ConfigLoader", "No config.yaml found at %s, using defaults", configFilePath)
			return config, nil
		}
		return InstallerConfig{}, fmt.Errorf("error reading config from %s: %w", configFilePath, err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return InstallerConfig{}, fmt.Errorf("error loading config from %s: %w", configFilePath, err)
	}
	logging.Debug("ConfigLoader", "Loaded configuration from %s", configFilePath)
	return config, nil
}

// LoadEnvFile loads variables from a dotenv file into the process
// environment without overriding variables that are already set.
// A missing file is not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	logging.Debug("ConfigLoader", "Loaded environment from %s", path)
	return nil
}

// ApplyEnv overrides configuration values with environment variables.
func ApplyEnv(config *InstallerConfig, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAccessToken); ok && v != "" {
		config.Console.AccessToken = v
	}
	if v, ok := lookup(EnvEnvironment); ok && v != "" {
		config.Console.Environment = v
	}
	if v, ok := lookup(EnvEndpoint); ok && v != "" {
		config.Console.Endpoint = v
	}
	if v, ok := lookup(EnvAPIKey); ok && v != "" {
		config.Console.APIKey = v
	}
	if v, ok := lookup(EnvAdobeIDDomain); ok && v != "" {
		config.AdobeID.Domain = v
	}
	if v, ok := lookup(EnvWorkers); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", EnvWorkers, err)
		}
		config.Workers = n
	}
	return nil
}
