package reconciler

import (
	"context"
	"time"

	"github.com/giantswarm/projectinstall/internal/console"
)

// instrumentedClient records every call of the wrapped client in Metrics.
type instrumentedClient struct {
	next    console.Client
	metrics *Metrics
}

func newInstrumentedClient(next console.Client, metrics *Metrics) console.Client {
	if ic, ok := next.(*instrumentedClient); ok && ic.metrics == metrics {
		return ic
	}
	return &instrumentedClient{next: next, metrics: metrics}
}

func (c *instrumentedClient) ListWorkspaces(ctx context.Context, orgID, projectID string) ([]console.Workspace, error) {
	start := time.Now()
	out, err := c.next.ListWorkspaces(ctx, orgID, projectID)
	c.metrics.RecordCall(OpListWorkspaces, start, err)
	return out, err
}

func (c *instrumentedClient) CreateWorkspace(ctx context.Context, orgID, projectID string, spec console.WorkspaceSpec) (*console.Workspace, error) {
	start := time.Now()
	out, err := c.next.CreateWorkspace(ctx, orgID, projectID, spec)
	c.metrics.RecordCall(OpCreateWorkspace, start, err)
	return out, err
}

func (c *instrumentedClient) CreateRuntimeNamespace(ctx context.Context, orgID, projectID, workspaceID string) error {
	start := time.Now()
	err := c.next.CreateRuntimeNamespace(ctx, orgID, projectID, workspaceID)
	c.metrics.RecordCall(OpCreateRuntimeNamespace, start, err)
	return err
}

func (c *instrumentedClient) ListOrgServices(ctx context.Context, orgID string) ([]console.ServiceDefinition, error) {
	start := time.Now()
	out, err := c.next.ListOrgServices(ctx, orgID)
	c.metrics.RecordCall(OpListOrgServices, start, err)
	return out, err
}

func (c *instrumentedClient) ListCredentials(ctx context.Context, orgID, projectID, workspaceID string) ([]console.Credential, error) {
	start := time.Now()
	out, err := c.next.ListCredentials(ctx, orgID, projectID, workspaceID)
	c.metrics.RecordCall(OpListCredentials, start, err)
	return out, err
}

func (c *instrumentedClient) CreateEnterpriseCredential(ctx context.Context, orgID, projectID, workspaceID string, spec console.EnterpriseCredentialSpec) (*console.Credential, error) {
	start := time.Now()
	out, err := c.next.CreateEnterpriseCredential(ctx, orgID, projectID, workspaceID, spec)
	c.metrics.RecordCall(OpCreateEnterpriseCred, start, err)
	return out, err
}

func (c *instrumentedClient) CreateOAuthServerToServerCredential(ctx context.Context, orgID, projectID, workspaceID, name, description string) (*console.Credential, error) {
	start := time.Now()
	out, err := c.next.CreateOAuthServerToServerCredential(ctx, orgID, projectID, workspaceID, name, description)
	c.metrics.RecordCall(OpCreateOAuthCredential, start, err)
	return out, err
}

func (c *instrumentedClient) CreateAdobeIDCredential(ctx context.Context, orgID, projectID, workspaceID string, spec console.AdobeIDCredentialSpec) (*console.Credential, error) {
	start := time.Now()
	out, err := c.next.CreateAdobeIDCredential(ctx, orgID, projectID, workspaceID, spec)
	c.metrics.RecordCall(OpCreateAdobeIDCredential, start, err)
	return out, err
}

func (c *instrumentedClient) SubscribeCredentialToServices(ctx context.Context, orgID, projectID, workspaceID, credentialType, credentialID string, services []console.ServiceInfo) (*console.SubscriptionResult, error) {
	start := time.Now()
	out, err := c.next.SubscribeCredentialToServices(ctx, orgID, projectID, workspaceID, credentialType, credentialID, services)
	c.metrics.RecordCall(OpSubscribe, start, err)
	return out, err
}
