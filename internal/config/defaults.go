package config

import "time"

const (
	DefaultProdEndpoint  = "https://developers.adobe.io/console"
	DefaultStageEndpoint = "https://developers-stage.adobe.io/console"

	DefaultProdAPIKey  = "aio-cli-console-auth"
	DefaultStageAPIKey = "aio-cli-console-auth-stage"

	DefaultTimeout = 30 * time.Second

	// DefaultAdobeIDDomain satisfies the console's domain validation for
	// AdobeID credentials when no domain is configured.
	DefaultAdobeIDDomain = "www.graph.adobe.io"

	DefaultOAuthName          = "cred-oauth{{ unixMilli }}"
	DefaultOAuthDescription   = "Oauth Credential"
	DefaultAdobeIDName        = "AdobeId Credentials {{ unixMilli }}"
	DefaultAdobeIDDescription = "AdobeId Credentials"

	DefaultHooksManifest        = "app.config.yaml"
	DefaultHooksCommandTemplate = "npx --yes {{ .Template }} {{ .Hook }}"
)

// GetDefaultConfig returns the default configuration.
func GetDefaultConfig() InstallerConfig {
	return InstallerConfig{
		Console: ConsoleConfig{
			Environment: EnvironmentProd,
			Timeout:     DefaultTimeout,
		},
		AdobeID: AdobeIDConfig{
			Domain: DefaultAdobeIDDomain,
		},
		Credentials: CredentialsConfig{
			OAuthName:          DefaultOAuthName,
			OAuthDescription:   DefaultOAuthDescription,
			AdobeIDName:        DefaultAdobeIDName,
			AdobeIDDescription: DefaultAdobeIDDescription,
		},
		Hooks: HooksConfig{
			Manifest:        DefaultHooksManifest,
			CommandTemplate: DefaultHooksCommandTemplate,
		},
		Workers: 1,
	}
}
