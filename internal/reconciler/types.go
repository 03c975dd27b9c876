package reconciler

import (
	"github.com/giantswarm/projectinstall/internal/console"
)

// CredentialFamily classifies a catalog service by the credential that can
// subscribe to it.
type CredentialFamily string

const (
	// FamilyEnterprise services are subscribed with a server-to-server credential.
	FamilyEnterprise CredentialFamily = console.ServiceTypeEnterprise
	// FamilyAdobeID services are subscribed with an API key credential.
	FamilyAdobeID CredentialFamily = console.ServiceTypeAdobeID
)

// SupportedFamilies lists the families in the order they are subscribed.
var SupportedFamilies = []CredentialFamily{FamilyEnterprise, FamilyAdobeID}

// IsSupported reports whether f is one of SupportedFamilies.
func (f CredentialFamily) IsSupported() bool {
	for _, s := range SupportedFamilies {
		if f == s {
			return true
		}
	}
	return false
}

func supportedFamilyNames() []string {
	names := make([]string, 0, len(SupportedFamilies))
	for _, f := range SupportedFamilies {
		names = append(names, string(f))
	}
	return names
}

// Report summarises one install run.
type Report struct {
	OrgID      string            `json:"orgId"`
	ProjectID  string            `json:"projectId"`
	Workspaces []WorkspaceReport `json:"workspaces"`
	// Hooks lists the hooks registered in the application manifest.
	Hooks   []string       `json:"hooks,omitempty"`
	Metrics MetricsSummary `json:"metrics"`
}

// WorkspaceReport holds what happened to one workspace.
type WorkspaceReport struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Created        bool   `json:"created"`
	RuntimeEnabled bool   `json:"runtimeEnabled"`
	// RuntimeCreated is set when the runtime namespace was created by this run.
	RuntimeCreated bool                 `json:"runtimeCreated"`
	Subscriptions  []SubscriptionReport `json:"subscriptions,omitempty"`
}

// SubscriptionReport describes one subscribe call.
type SubscriptionReport struct {
	Family            CredentialFamily `json:"family"`
	CredentialID      string           `json:"credentialId"`
	CredentialCreated bool             `json:"credentialCreated"`
	Services          []string         `json:"services"`
}

// Workspace returns the workspace part of the report entry.
func (w WorkspaceReport) Workspace() console.Workspace {
	return console.Workspace{
		ID:             w.ID,
		Name:           w.Name,
		RuntimeEnabled: console.Flag(w.RuntimeEnabled),
	}
}
