package console

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Service types as reported by the organization service catalog.
const (
	ServiceTypeEnterprise = "entp"
	ServiceTypeAdobeID    = "adobeid"
	// ServiceTypeAnalytics is a legacy type that can no longer be subscribed.
	ServiceTypeAnalytics = "analytics"
)

// Credential flow types.
const (
	FlowTypeEnterprise = "entp"
	FlowTypeAdobeID    = "adobeid"
)

// Credential integration types.
const (
	// IntegrationTypeService is the legacy JWT service-account credential.
	IntegrationTypeService = "service"
	// IntegrationTypeOAuthServerToServer is the current server-to-server credential.
	IntegrationTypeOAuthServerToServer = "oauth_server_to_server"
	IntegrationTypeAPIKey              = "apikey"
)

// PlatformAPIKey is the platform used when creating AdobeID credentials.
const PlatformAPIKey = "apiKey"

// LicenseConfigOpAdd is the only license config operation the installer issues.
const LicenseConfigOpAdd = "add"

// Flag decodes booleans that the service sometimes encodes as 0/1.
type Flag bool

// UnmarshalJSON accepts true/false, 0/1, "true"/"false" and "0"/"1".
func (f *Flag) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = false
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = Flag(b)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		i, err := n.Int64()
		if err != nil {
			return fmt.Errorf("invalid flag value %s", data)
		}
		*f = i != 0
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid flag value %s", data)
	}
	parsed, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("invalid flag value %q", s)
	}
	*f = Flag(parsed)
	return nil
}

// Workspace is a named environment within a project.
type Workspace struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Title          string `json:"title,omitempty"`
	RuntimeEnabled Flag   `json:"runtime_enabled"`
}

// UnmarshalJSON accepts both the list shape ("id") and the creation
// response shape ("workspaceId").
func (w *Workspace) UnmarshalJSON(data []byte) error {
	type plain Workspace
	var aux struct {
		plain
		WorkspaceID string `json:"workspaceId"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*w = Workspace(aux.plain)
	if w.ID == "" {
		w.ID = aux.WorkspaceID
	}
	return nil
}

// WorkspaceSpec describes a workspace to create.
type WorkspaceSpec struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// Role is a service role. A role decoded from the catalog encodes back to
// exactly the JSON it was read from, fields not listed here included.
type Role struct {
	ID   json.RawMessage `json:"id,omitempty"`
	Code string          `json:"code,omitempty"`
	Name string          `json:"name,omitempty"`

	raw json.RawMessage
}

func (r *Role) UnmarshalJSON(data []byte) error {
	type plain Role
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = Role(p)
	r.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (r Role) MarshalJSON() ([]byte, error) {
	if len(r.raw) > 0 {
		return r.raw, nil
	}
	type plain Role
	return json.Marshal(plain(r))
}

// LicenseConfig is a product profile offered by a service.
type LicenseConfig struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Name      string `json:"name,omitempty"`
}

// ServiceProperties holds the optional parts of a service definition.
type ServiceProperties struct {
	Roles          []Role          `json:"roles,omitempty"`
	LicenseConfigs []LicenseConfig `json:"licenseConfigs,omitempty"`
}

// ServiceDefinition is an entry of the organization service catalog.
type ServiceDefinition struct {
	Code       string             `json:"code"`
	Name       string             `json:"name"`
	Type       string             `json:"type"`
	Enabled    bool               `json:"enabled"`
	Properties *ServiceProperties `json:"properties,omitempty"`
}

// Roles returns the definition roles, or nil when it defines none.
func (s ServiceDefinition) Roles() []Role {
	if s.Properties == nil {
		return nil
	}
	return s.Properties.Roles
}

// LicenseConfigs returns the definition license configs, or nil when it defines none.
func (s ServiceDefinition) LicenseConfigs() []LicenseConfig {
	if s.Properties == nil {
		return nil
	}
	return s.Properties.LicenseConfigs
}

// Credential is an authorization object scoped to a workspace.
type Credential struct {
	ID              string `json:"id_integration"`
	Name            string `json:"name,omitempty"`
	FlowType        string `json:"flow_type"`
	IntegrationType string `json:"integration_type"`
}

// UnmarshalJSON accepts both the list shape ("id_integration") and the
// creation response shape ("id").
func (c *Credential) UnmarshalJSON(data []byte) error {
	type plain Credential
	var aux struct {
		plain
		CreatedID string `json:"id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*c = Credential(aux.plain)
	if c.ID == "" {
		c.ID = aux.CreatedID
	}
	return nil
}

// LicenseConfigOp selects a license config in a subscription.
type LicenseConfigOp struct {
	Op        string `json:"op"`
	ID        string `json:"id"`
	ProductID string `json:"productId"`
}

// ServiceInfo is one service entry of a subscription request. Roles and
// LicenseConfigs encode as null when nil.
type ServiceInfo struct {
	SDKCode        string            `json:"sdkCode"`
	Name           string            `json:"name,omitempty"`
	Roles          []Role            `json:"roles"`
	LicenseConfigs []LicenseConfigOp `json:"licenseConfigs"`
}

// SubscriptionRequest batches every service of one credential family for a
// workspace into a single subscribe call.
type SubscriptionRequest struct {
	OrgID          string        `json:"orgId"`
	ProjectID      string        `json:"projectId"`
	WorkspaceID    string        `json:"workspaceId"`
	CredentialType string        `json:"credentialType"`
	CredentialID   string        `json:"credentialId"`
	Services       []ServiceInfo `json:"services"`
}

// SDKCodes lists the service codes in request order.
func (r *SubscriptionRequest) SDKCodes() []string {
	codes := make([]string, 0, len(r.Services))
	for _, s := range r.Services {
		codes = append(codes, s.SDKCode)
	}
	return codes
}

// SubscriptionResult is the raw response of a subscribe call.
type SubscriptionResult struct {
	Body json.RawMessage `json:"body,omitempty"`
}
