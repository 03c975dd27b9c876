package template

import (
	"fmt"

	"github.com/giantswarm/projectinstall/internal/config"
)

// Validate checks a template configuration and returns every problem found.
func Validate(cfg Configuration) config.ValidationErrors {
	var errs config.ValidationErrors

	seen := make(map[string]bool, len(cfg.Workspaces))
	for i, name := range cfg.Workspaces {
		field := fmt.Sprintf("workspaces[%d]", i)
		if err := config.ValidateRequired(field, name, "workspace"); err != nil {
			errs = append(errs, err.(config.ValidationError))
			continue
		}
		if err := config.ValidateMaxLength(field, name, 100); err != nil {
			errs = append(errs, err.(config.ValidationError))
		}
		if seen[name] {
			errs.Add(field, fmt.Sprintf("duplicate workspace %q", name), name)
		}
		seen[name] = true
	}

	for i, api := range cfg.APIs {
		if err := config.ValidateRequired(fmt.Sprintf("apis[%d].code", i), api.Code, "api"); err != nil {
			errs = append(errs, err.(config.ValidationError))
		}
	}

	for i, profile := range cfg.ProductProfiles {
		field := fmt.Sprintf("productProfiles[%d]", i)
		if err := config.ValidateRequired(field+".sdkCode", profile.SDKCode, "product profile"); err != nil {
			errs = append(errs, err.(config.ValidationError))
		}
		for j, lc := range profile.LicenseConfigs {
			if err := config.ValidateRequired(fmt.Sprintf("%s.licenseConfigs[%d].id", field, j), lc.ID, "license config"); err != nil {
				errs = append(errs, err.(config.ValidationError))
			}
		}
	}

	for i, hook := range cfg.Hooks {
		if err := config.ValidateOneOf(fmt.Sprintf("hooks[%d]", i), hook, KnownHooks); err != nil {
			errs = append(errs, err.(config.ValidationError))
		}
	}

	return errs
}
