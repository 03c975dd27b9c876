package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte(content), 0644))
}

func TestLoadConfig_DefaultOnly(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), cfg)
	assert.Empty(t, Validate(cfg))
}

func TestLoadConfig_FileOverride(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
console:
  environment: stage
  timeout: 5s
adobeId:
  domain: app.example.com
  redirectUris:
    - https://app.example.com/callback
workers: 3
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, EnvironmentStage, cfg.Console.Environment)
	assert.Equal(t, 5*time.Second, cfg.Console.Timeout)
	assert.Equal(t, DefaultStageEndpoint, cfg.Console.ResolvedEndpoint())
	assert.Equal(t, DefaultStageAPIKey, cfg.Console.ResolvedAPIKey())
	assert.Equal(t, "app.example.com", cfg.AdobeID.Domain)
	assert.Equal(t, []string{"https://app.example.com/callback"}, cfg.AdobeID.RedirectURIs)
	assert.Equal(t, 3, cfg.Workers)
	// untouched sections keep their defaults
	assert.Equal(t, DefaultOAuthName, cfg.Credentials.OAuthName)
	assert.Equal(t, DefaultHooksManifest, cfg.Hooks.Manifest)
}

func TestLoadConfig_Malformed(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "console: [\n")

	_, err := LoadConfig(dir)
	assert.ErrorContains(t, err, "error loading config")
}

func TestDefaultConfigPath(t *testing.T) {
	original := osUserHomeDir
	defer func() { osUserHomeDir = original }()

	osUserHomeDir = func() (string, error) { return "/home/tester", nil }
	path, err := DefaultConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/tester", ".config", "projectinstall"), path)

	osUserHomeDir = func() (string, error) { return "", os.ErrNotExist }
	_, err = DefaultConfigPath()
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvAccessToken:   "tok",
		EnvEnvironment:   EnvironmentStage,
		EnvEndpoint:      "https://console.internal/api",
		EnvAPIKey:        "my-key",
		EnvAdobeIDDomain: "adobe.example.com",
		EnvWorkers:       "4",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := GetDefaultConfig()
	require.NoError(t, ApplyEnv(&cfg, lookup))

	assert.Equal(t, "tok", cfg.Console.AccessToken)
	assert.Equal(t, "https://console.internal/api", cfg.Console.ResolvedEndpoint())
	assert.Equal(t, "my-key", cfg.Console.ResolvedAPIKey())
	assert.Equal(t, "adobe.example.com", cfg.AdobeID.Domain)
	assert.Equal(t, 4, cfg.Workers)

	env[EnvWorkers] = "many"
	assert.Error(t, ApplyEnv(&cfg, lookup))
}

func TestLoadEnvFile(t *testing.T) {
	require.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), ".env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PROJECTINSTALL_TEST_VAR=from-dotenv\n"), 0600))
	t.Setenv("PROJECTINSTALL_TEST_VAR", "")
	os.Unsetenv("PROJECTINSTALL_TEST_VAR")

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "from-dotenv", os.Getenv("PROJECTINSTALL_TEST_VAR"))
}

func TestValidate(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Console.Environment = "dev"
	cfg.Console.Endpoint = "not a url"
	cfg.Workers = 0
	cfg.AdobeID.Domain = ""
	cfg.AdobeID.RedirectURIs = []string{"ftp://x"}
	cfg.Hooks.CommandTemplate = " "

	errs := Validate(cfg)
	var fields []string
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.Equal(t, []string{
		"console.environment",
		"console.endpoint",
		"workers",
		"adobeId.domain",
		"adobeId.redirectUris[0]",
		"hooks.commandTemplate",
	}, fields)
	assert.Contains(t, errs.Error(), "validation failed")
}

func TestValidationErrors_Error(t *testing.T) {
	var errs ValidationErrors
	assert.Equal(t, "no validation errors", errs.Error())
	assert.False(t, errs.HasErrors())

	errs.Add("field", "is bad")
	assert.Equal(t, "field 'field': is bad", errs.Error())
	assert.True(t, errs.HasErrors())
}
