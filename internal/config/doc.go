// Package config provides configuration management for projectinstall.
//
// Configuration is loaded from a single directory containing config.yaml.
// The default directory is ~/.config/projectinstall; commands accept
// --config-path to point elsewhere. When the file is absent the defaults from
// GetDefaultConfig are used.
//
// # File Format
//
//	console:
//	  environment: prod        # or stage
//	  endpoint: ""             # overrides the environment endpoint
//	  apiKey: ""               # overrides the environment API key
//	  timeout: 30s
//	adobeId:
//	  domain: www.graph.adobe.io
//	  redirectUris: []
//	credentials:
//	  oauthName: "cred-oauth{{ unixMilli }}"
//	  adobeIdName: "AdobeId Credentials {{ unixMilli }}"
//	hooks:
//	  manifest: app.config.yaml
//	  commandTemplate: "npx --yes {{ .Template }} {{ .Hook }}"
//	workers: 1
//
// # Environment
//
// A .env file in the working directory is loaded first (LoadEnvFile), then
// CONSOLE_ACCESS_TOKEN, CONSOLE_ENV, CONSOLE_ENDPOINT, CONSOLE_API_KEY,
// CONSOLE_ADOBEID_DOMAIN and PROJECTINSTALL_WORKERS override file values
// (ApplyEnv). The access token is only ever taken from the environment or
// command-line flags.
//
// Validate reports every problem as ValidationErrors, the same error type the
// template package uses for template files.
package config
