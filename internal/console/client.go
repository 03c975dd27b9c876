package console

import (
	"context"
	"io"
)

// Client is the set of developer-console operations the installer needs.
// Every call is synchronous and may fail; implementations do not retry.
type Client interface {
	ListWorkspaces(ctx context.Context, orgID, projectID string) ([]Workspace, error)
	CreateWorkspace(ctx context.Context, orgID, projectID string, spec WorkspaceSpec) (*Workspace, error)
	CreateRuntimeNamespace(ctx context.Context, orgID, projectID, workspaceID string) error

	ListOrgServices(ctx context.Context, orgID string) ([]ServiceDefinition, error)

	ListCredentials(ctx context.Context, orgID, projectID, workspaceID string) ([]Credential, error)
	// CreateEnterpriseCredential creates a legacy certificate-based credential.
	CreateEnterpriseCredential(ctx context.Context, orgID, projectID, workspaceID string, spec EnterpriseCredentialSpec) (*Credential, error)
	CreateOAuthServerToServerCredential(ctx context.Context, orgID, projectID, workspaceID, name, description string) (*Credential, error)
	CreateAdobeIDCredential(ctx context.Context, orgID, projectID, workspaceID string, spec AdobeIDCredentialSpec) (*Credential, error)

	SubscribeCredentialToServices(ctx context.Context, orgID, projectID, workspaceID, credentialType, credentialID string, services []ServiceInfo) (*SubscriptionResult, error)
}

// EnterpriseCredentialSpec describes a legacy enterprise credential.
type EnterpriseCredentialSpec struct {
	Name        string
	Description string
	// Certificate is the PEM encoded public certificate to upload.
	Certificate io.Reader
}

// AdobeIDCredentialSpec describes an AdobeID (API key) credential.
type AdobeIDCredentialSpec struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Platform     string   `json:"platform"`
	Domain       string   `json:"domain,omitempty"`
	RedirectURIs []string `json:"redirectUriList,omitempty"`
}
