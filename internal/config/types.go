package config

import "time"

// Console environments.
const (
	EnvironmentProd  = "prod"
	EnvironmentStage = "stage"
)

// InstallerConfig is the top-level configuration structure for projectinstall.
type InstallerConfig struct {
	Console     ConsoleConfig     `yaml:"console"`
	AdobeID     AdobeIDConfig     `yaml:"adobeId"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Hooks       HooksConfig       `yaml:"hooks"`
	// Workers bounds how many workspaces are configured concurrently (default: 1).
	Workers int `yaml:"workers,omitempty"`
}

// ConsoleConfig describes how to reach the developer console API.
type ConsoleConfig struct {
	Environment string        `yaml:"environment,omitempty"` // prod or stage (default: prod)
	Endpoint    string        `yaml:"endpoint,omitempty"`    // Overrides the environment endpoint
	APIKey      string        `yaml:"apiKey,omitempty"`      // Overrides the environment API key
	Timeout     time.Duration `yaml:"timeout,omitempty"`     // Per-request timeout (default: 30s)

	// AccessToken is never read from the config file.
	AccessToken string `yaml:"-"`
}

// AdobeIDConfig configures AdobeID credentials created during install.
type AdobeIDConfig struct {
	Domain       string   `yaml:"domain,omitempty"`
	RedirectURIs []string `yaml:"redirectUris,omitempty"`
}

// CredentialsConfig holds the name and description templates of credentials
// created during install. Templates are Go text/templates with sprig functions.
type CredentialsConfig struct {
	OAuthName          string `yaml:"oauthName,omitempty"`
	OAuthDescription   string `yaml:"oauthDescription,omitempty"`
	AdobeIDName        string `yaml:"adobeIdName,omitempty"`
	AdobeIDDescription string `yaml:"adobeIdDescription,omitempty"`
}

// HooksConfig configures hook registration in the application manifest.
type HooksConfig struct {
	// Manifest is the application manifest file hooks are written to.
	Manifest string `yaml:"manifest,omitempty"`
	// CommandTemplate renders the command stored for each hook.
	CommandTemplate string `yaml:"commandTemplate,omitempty"`
}

// ResolvedEndpoint returns the configured endpoint or the environment default.
func (c ConsoleConfig) ResolvedEndpoint() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	if c.Environment == EnvironmentStage {
		return DefaultStageEndpoint
	}
	return DefaultProdEndpoint
}

// ResolvedAPIKey returns the configured API key or the environment default.
func (c ConsoleConfig) ResolvedAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	if c.Environment == EnvironmentStage {
		return DefaultStageAPIKey
	}
	return DefaultProdAPIKey
}
