package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/giantswarm/projectinstall/internal/console"
)

// Operation names recorded in the call log. They match the console.Client
// method names.
const (
	OpListWorkspaces          = "ListWorkspaces"
	OpCreateWorkspace         = "CreateWorkspace"
	OpCreateRuntimeNamespace  = "CreateRuntimeNamespace"
	OpListOrgServices         = "ListOrgServices"
	OpListCredentials         = "ListCredentials"
	OpCreateEnterpriseCred    = "CreateEnterpriseCredential"
	OpCreateOAuthCredential   = "CreateOAuthServerToServerCredential"
	OpCreateAdobeIDCredential = "CreateAdobeIDCredential"
	OpSubscribe               = "SubscribeCredentialToServices"
)

// Call is one recorded console call.
type Call struct {
	Op          string
	OrgID       string
	ProjectID   string
	WorkspaceID string

	// Set for the create calls.
	Name        string
	Description string
	AdobeID     *console.AdobeIDCredentialSpec

	// Set for subscribe calls.
	CredentialType string
	CredentialID   string
	Services       []console.ServiceInfo
}

// IsCreation reports whether the call changes remote state.
func (c Call) IsCreation() bool {
	switch c.Op {
	case OpCreateWorkspace, OpCreateRuntimeNamespace, OpCreateEnterpriseCred, OpCreateOAuthCredential, OpCreateAdobeIDCredential:
		return true
	}
	return false
}

// Console is an in-memory console.Client for a single project. It records
// every call and can be told to fail specific operations.
type Console struct {
	mu sync.Mutex

	workspaces  []console.Workspace
	services    []console.ServiceDefinition
	credentials map[string][]console.Credential

	failures map[string]error
	// FailFunc, when set, is consulted before every call and fails it when it
	// returns an error.
	FailFunc func(Call) error

	calls  []Call
	nextID int
}

var _ console.Client = (*Console)(nil)

// NewConsole creates an empty fake console.
func NewConsole() *Console {
	return &Console{
		credentials: make(map[string][]console.Credential),
		failures:    make(map[string]error),
	}
}

// AddWorkspace seeds an existing workspace and returns it.
func (c *Console) AddWorkspace(name string, runtimeEnabled bool) console.Workspace {
	c.mu.Lock()
	defer c.mu.Unlock()
	ws := console.Workspace{ID: c.newID("ws"), Name: name, RuntimeEnabled: console.Flag(runtimeEnabled)}
	c.workspaces = append(c.workspaces, ws)
	return ws
}

// AddService seeds the organization catalog.
func (c *Console) AddService(defs ...console.ServiceDefinition) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.services = append(c.services, defs...)
}

// AddCredential seeds a credential in workspaceID. An empty ID is generated.
func (c *Console) AddCredential(workspaceID string, cred console.Credential) console.Credential {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cred.ID == "" {
		cred.ID = c.newID("cred")
	}
	c.credentials[workspaceID] = append(c.credentials[workspaceID], cred)
	return cred
}

// FailOn makes every call of op return err. A nil err clears the failure.
func (c *Console) FailOn(op string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err == nil {
		delete(c.failures, op)
		return
	}
	c.failures[op] = err
}

// Workspaces returns the current workspaces.
func (c *Console) Workspaces() []console.Workspace {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]console.Workspace(nil), c.workspaces...)
}

// Credentials returns the credentials of workspaceID.
func (c *Console) Credentials(workspaceID string) []console.Credential {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]console.Credential(nil), c.credentials[workspaceID]...)
}

// Calls returns the call log in order.
func (c *Console) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Call(nil), c.calls...)
}

// CallsTo returns the calls of op in order.
func (c *Console) CallsTo(op string) []Call {
	var out []Call
	for _, call := range c.Calls() {
		if call.Op == op {
			out = append(out, call)
		}
	}
	return out
}

// Count returns how many times op was called.
func (c *Console) Count(op string) int {
	return len(c.CallsTo(op))
}

// Creations returns every call that changed remote state.
func (c *Console) Creations() []Call {
	var out []Call
	for _, call := range c.Calls() {
		if call.IsCreation() {
			out = append(out, call)
		}
	}
	return out
}

// ResetCalls clears the call log but keeps state.
func (c *Console) ResetCalls() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = nil
}

// record logs call and returns the injected failure, if any. Callers hold mu.
func (c *Console) record(call Call) error {
	c.calls = append(c.calls, call)
	if err, ok := c.failures[call.Op]; ok {
		return err
	}
	if c.FailFunc != nil {
		return c.FailFunc(call)
	}
	return nil
}

func (c *Console) newID(prefix string) string {
	c.nextID++
	return fmt.Sprintf("%s-%d", prefix, c.nextID)
}

func (c *Console) ListWorkspaces(_ context.Context, orgID, projectID string) ([]console.Workspace, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record(Call{Op: OpListWorkspaces, OrgID: orgID, ProjectID: projectID}); err != nil {
		return nil, err
	}
	return append([]console.Workspace(nil), c.workspaces...), nil
}

func (c *Console) CreateWorkspace(_ context.Context, orgID, projectID string, spec console.WorkspaceSpec) (*console.Workspace, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record(Call{Op: OpCreateWorkspace, OrgID: orgID, ProjectID: projectID, Name: spec.Name, Description: spec.Title}); err != nil {
		return nil, err
	}
	ws := console.Workspace{ID: c.newID("ws"), Name: spec.Name, Title: spec.Title}
	c.workspaces = append(c.workspaces, ws)
	return &ws, nil
}

func (c *Console) CreateRuntimeNamespace(_ context.Context, orgID, projectID, workspaceID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record(Call{Op: OpCreateRuntimeNamespace, OrgID: orgID, ProjectID: projectID, WorkspaceID: workspaceID}); err != nil {
		return err
	}
	for i := range c.workspaces {
		if c.workspaces[i].ID == workspaceID {
			c.workspaces[i].RuntimeEnabled = true
			return nil
		}
	}
	return fmt.Errorf("workspace %s not found", workspaceID)
}

func (c *Console) ListOrgServices(_ context.Context, orgID string) ([]console.ServiceDefinition, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record(Call{Op: OpListOrgServices, OrgID: orgID}); err != nil {
		return nil, err
	}
	return append([]console.ServiceDefinition(nil), c.services...), nil
}

func (c *Console) ListCredentials(_ context.Context, orgID, projectID, workspaceID string) ([]console.Credential, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record(Call{Op: OpListCredentials, OrgID: orgID, ProjectID: projectID, WorkspaceID: workspaceID}); err != nil {
		return nil, err
	}
	return append([]console.Credential(nil), c.credentials[workspaceID]...), nil
}

func (c *Console) CreateEnterpriseCredential(_ context.Context, orgID, projectID, workspaceID string, spec console.EnterpriseCredentialSpec) (*console.Credential, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	call := Call{Op: OpCreateEnterpriseCred, OrgID: orgID, ProjectID: projectID, WorkspaceID: workspaceID, Name: spec.Name, Description: spec.Description}
	if err := c.record(call); err != nil {
		return nil, err
	}
	return c.addCredentialLocked(workspaceID, spec.Name, console.FlowTypeEnterprise, console.IntegrationTypeService), nil
}

func (c *Console) CreateOAuthServerToServerCredential(_ context.Context, orgID, projectID, workspaceID, name, description string) (*console.Credential, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	call := Call{Op: OpCreateOAuthCredential, OrgID: orgID, ProjectID: projectID, WorkspaceID: workspaceID, Name: name, Description: description}
	if err := c.record(call); err != nil {
		return nil, err
	}
	return c.addCredentialLocked(workspaceID, name, console.FlowTypeEnterprise, console.IntegrationTypeOAuthServerToServer), nil
}

func (c *Console) CreateAdobeIDCredential(_ context.Context, orgID, projectID, workspaceID string, spec console.AdobeIDCredentialSpec) (*console.Credential, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	specCopy := spec
	call := Call{Op: OpCreateAdobeIDCredential, OrgID: orgID, ProjectID: projectID, WorkspaceID: workspaceID, Name: spec.Name, Description: spec.Description, AdobeID: &specCopy}
	if err := c.record(call); err != nil {
		return nil, err
	}
	return c.addCredentialLocked(workspaceID, spec.Name, console.FlowTypeAdobeID, console.IntegrationTypeAPIKey), nil
}

func (c *Console) SubscribeCredentialToServices(_ context.Context, orgID, projectID, workspaceID, credentialType, credentialID string, services []console.ServiceInfo) (*console.SubscriptionResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	call := Call{
		Op:             OpSubscribe,
		OrgID:          orgID,
		ProjectID:      projectID,
		WorkspaceID:    workspaceID,
		CredentialType: credentialType,
		CredentialID:   credentialID,
		Services:       append([]console.ServiceInfo(nil), services...),
	}
	if err := c.record(call); err != nil {
		return nil, err
	}
	return &console.SubscriptionResult{Body: []byte(`{"sdkList":[]}`)}, nil
}

func (c *Console) addCredentialLocked(workspaceID, name, flowType, integrationType string) *console.Credential {
	cred := console.Credential{
		ID:              c.newID("cred"),
		Name:            name,
		FlowType:        flowType,
		IntegrationType: integrationType,
	}
	c.credentials[workspaceID] = append(c.credentials[workspaceID], cred)
	return &cred
}
