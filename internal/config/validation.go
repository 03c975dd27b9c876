package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   val,
		Message: message,
	})
}

// ValidateRequired checks if a required string field is not empty
func ValidateRequired(field, value, entityType string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError{
			Field:   field,
			Value:   value,
			Message: fmt.Sprintf("is required for %s", entityType),
		}
	}
	return nil
}

// ValidateOneOf checks if a value is in a list of allowed values
func ValidateOneOf(field, value string, allowed []string) error {
	for _, allowedValue := range allowed {
		if value == allowedValue {
			return nil
		}
	}
	return ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
	}
}

// ValidateMaxLength checks if a string doesn't exceed maximum length
func ValidateMaxLength(field, value string, maxLength int) error {
	if len(value) > maxLength {
		return ValidationError{
			Field:   field,
			Value:   value,
			Message: fmt.Sprintf("must not exceed %d characters", maxLength),
		}
	}
	return nil
}

// ValidateURL checks that a value is an absolute http(s) URL.
func ValidateURL(field, value string) error {
	u, err := url.Parse(value)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ValidationError{
			Field:   field,
			Value:   value,
			Message: "must be an absolute http(s) URL",
		}
	}
	return nil
}

// Validate checks the installer configuration.
func Validate(cfg InstallerConfig) ValidationErrors {
	var errs ValidationErrors

	if err := ValidateOneOf("console.environment", cfg.Console.Environment, []string{EnvironmentProd, EnvironmentStage}); err != nil {
		errs = append(errs, err.(ValidationError))
	}
	if err := ValidateURL("console.endpoint", cfg.Console.ResolvedEndpoint()); err != nil {
		errs = append(errs, err.(ValidationError))
	}
	if cfg.Console.Timeout < 0 {
		errs.Add("console.timeout", "must not be negative", cfg.Console.Timeout)
	}
	if cfg.Workers < 1 {
		errs.Add("workers", "must be at least 1", cfg.Workers)
	}
	if err := ValidateRequired("adobeId.domain", cfg.AdobeID.Domain, "AdobeID credentials"); err != nil {
		errs = append(errs, err.(ValidationError))
	}
	for i, uri := range cfg.AdobeID.RedirectURIs {
		if err := ValidateURL(fmt.Sprintf("adobeId.redirectUris[%d]", i), uri); err != nil {
			errs = append(errs, err.(ValidationError))
		}
	}
	for _, f := range []struct{ field, value string }{
		{"credentials.oauthName", cfg.Credentials.OAuthName},
		{"credentials.adobeIdName", cfg.Credentials.AdobeIDName},
		{"hooks.manifest", cfg.Hooks.Manifest},
		{"hooks.commandTemplate", cfg.Hooks.CommandTemplate},
	} {
		if err := ValidateRequired(f.field, f.value, "installer configuration"); err != nil {
			errs = append(errs, err.(ValidationError))
		}
	}

	return errs
}
