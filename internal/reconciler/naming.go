package reconciler

import (
	"time"

	"github.com/giantswarm/projectinstall/internal/config"
	"github.com/giantswarm/projectinstall/internal/template"
)

// CredentialNames are the templates used to name created credentials. They
// see .WorkspaceID and .Family plus the sprig functions and unixMilli.
type CredentialNames struct {
	OAuthName          string
	OAuthDescription   string
	AdobeIDName        string
	AdobeIDDescription string
}

// DefaultCredentialNames returns the built-in naming templates.
func DefaultCredentialNames() CredentialNames {
	return CredentialNames{
		OAuthName:          config.DefaultOAuthName,
		OAuthDescription:   config.DefaultOAuthDescription,
		AdobeIDName:        config.DefaultAdobeIDName,
		AdobeIDDescription: config.DefaultAdobeIDDescription,
	}
}

type nameData struct {
	WorkspaceID string
	Family      string
}

func (n CredentialNames) render(family CredentialFamily, nameTmpl, descTmpl string, data nameData, clock func() time.Time) (string, string, error) {
	engine := template.NewEngine(clock)
	vars := map[string]interface{}{
		"WorkspaceID": data.WorkspaceID,
		"Family":      data.Family,
	}

	name, err := engine.Render("credential name", nameTmpl, vars)
	if err != nil {
		return "", "", &ConfigurationError{Reason: ReasonInvalidNameTemplate, Family: family, Detail: err.Error()}
	}
	description, err := engine.Render("credential description", descTmpl, vars)
	if err != nil {
		return "", "", &ConfigurationError{Reason: ReasonInvalidNameTemplate, Family: family, Detail: err.Error()}
	}
	return name, description, nil
}
