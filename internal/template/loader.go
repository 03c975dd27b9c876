package template

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	k8syaml "sigs.k8s.io/yaml"
)

// Format is the encoding a template file was read from.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Load reads a template configuration file. The file must exist and be a
// regular file.
func Load(path string) (Configuration, Format, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Configuration{}, "", fmt.Errorf("the configuration file path %s is not a valid file: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return Configuration{}, "", fmt.Errorf("the configuration file path %s is not a valid file", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Configuration{}, "", fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a template configuration. Content starting with '{' is read
// as JSON, anything else as YAML. Empty content yields an empty configuration.
func Parse(data []byte) (Configuration, Format, error) {
	var cfg Configuration
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return cfg, FormatJSON, nil
	}

	if trimmed[0] == '{' {
		if err := k8syaml.Unmarshal(trimmed, &cfg); err != nil {
			return Configuration{}, FormatJSON, fmt.Errorf("cannot parse json: %w", err)
		}
		cfg.normalize()
		return cfg, FormatJSON, nil
	}

	if err := yaml.Unmarshal(trimmed, &cfg); err != nil {
		return Configuration{}, FormatYAML, fmt.Errorf("cannot parse yaml: %w", err)
	}
	cfg.normalize()
	return cfg, FormatYAML, nil
}

// normalize trims surrounding whitespace from hook names so the names that
// are validated are the names written to the manifest.
func (c *Configuration) normalize() {
	for i, hook := range c.Hooks {
		c.Hooks[i] = strings.TrimSpace(hook)
	}
}

// LoadAndValidate loads a template and validates it.
func LoadAndValidate(path string) (Configuration, error) {
	cfg, _, err := Load(path)
	if err != nil {
		return Configuration{}, err
	}
	if errs := Validate(cfg); errs.HasErrors() {
		return Configuration{}, fmt.Errorf("missing or invalid keys in config: %w", errs)
	}
	return cfg, nil
}
