package reconciler

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind is the closed set of failure kinds an install can end with.
type ErrorKind string

const (
	// KindConfiguration means the template cannot be satisfied by the organization.
	KindConfiguration ErrorKind = "ConfigurationError"
	// KindRemoteOperation means a console call failed.
	KindRemoteOperation ErrorKind = "RemoteOperationError"
)

// ConfigurationReason says why a configuration was rejected.
type ConfigurationReason string

const (
	ReasonServiceNotFound        ConfigurationReason = "ServiceNotFound"
	ReasonUnsupportedServiceType ConfigurationReason = "UnsupportedServiceType"
	ReasonUnsupportedFamily      ConfigurationReason = "UnsupportedCredentialFamily"
	ReasonInvalidNameTemplate    ConfigurationReason = "InvalidNameTemplate"
)

// Operation names a console call in errors and metrics.
type Operation string

const (
	OpListWorkspaces          Operation = "ListWorkspaces"
	OpCreateWorkspace         Operation = "CreateWorkspace"
	OpCreateRuntimeNamespace  Operation = "CreateRuntimeNamespace"
	OpListOrgServices         Operation = "ListOrgServices"
	OpListCredentials         Operation = "ListCredentials"
	OpCreateEnterpriseCred    Operation = "CreateEnterpriseCredential"
	OpCreateOAuthCredential   Operation = "CreateOAuthServerToServerCredential"
	OpCreateAdobeIDCredential Operation = "CreateAdobeIDCredential"
	OpSubscribe               Operation = "SubscribeCredentialToServices"
	OpRegisterHooks           Operation = "RegisterHooks"
)

// SubscribeFailedMessage is the user-facing text of a failed subscription.
const SubscribeFailedMessage = "failed to subscribe API to workspace; check logs and retry installation"

// ConfigurationError is returned when the declared template does not match
// what the organization offers.
type ConfigurationError struct {
	Reason      ConfigurationReason
	Code        string
	ServiceType string
	Family      CredentialFamily
	Detail      string
	Supported   []string
}

func (e *ConfigurationError) Error() string {
	supported := strings.Join(e.Supported, ", ")
	switch e.Reason {
	case ReasonServiceNotFound:
		return fmt.Sprintf("service code %q is not available or not enabled in the organization; supported service types are: %s", e.Code, supported)
	case ReasonUnsupportedServiceType:
		return fmt.Sprintf("service code %q has unsupported type %q; supported service types are: %s", e.Code, e.ServiceType, supported)
	case ReasonUnsupportedFamily:
		return fmt.Sprintf("unsupported credential family %q; supported families are: %s", e.Family, supported)
	case ReasonInvalidNameTemplate:
		return fmt.Sprintf("invalid credential name template for %s: %s", e.Family, e.Detail)
	default:
		return fmt.Sprintf("configuration error: %s", e.Reason)
	}
}

// Kind returns KindConfiguration.
func (e *ConfigurationError) Kind() ErrorKind { return KindConfiguration }

// RemoteOperationError wraps a failed console call with where it happened.
type RemoteOperationError struct {
	Op          Operation
	OrgID       string
	ProjectID   string
	WorkspaceID string
	Family      CredentialFamily
	Err         error
}

func (e *RemoteOperationError) Error() string {
	if e.Op == OpSubscribe {
		return SubscribeFailedMessage
	}
	var scope string
	switch {
	case e.WorkspaceID != "":
		scope = fmt.Sprintf(" (workspace %s)", e.WorkspaceID)
	case e.ProjectID != "":
		scope = fmt.Sprintf(" (project %s)", e.ProjectID)
	case e.OrgID != "":
		scope = fmt.Sprintf(" (org %s)", e.OrgID)
	}
	return fmt.Sprintf("%s failed%s: %v", e.Op, scope, e.Err)
}

func (e *RemoteOperationError) Unwrap() error { return e.Err }

// Kind returns KindRemoteOperation.
func (e *RemoteOperationError) Kind() ErrorKind { return KindRemoteOperation }

// KindOf returns the kind of the first typed error in err's chain, or "" for
// anything else.
func KindOf(err error) ErrorKind {
	if IsConfigurationError(err) {
		return KindConfiguration
	}
	if IsRemoteOperationError(err) {
		return KindRemoteOperation
	}
	return ""
}

// IsConfigurationError checks if an error is a ConfigurationError
func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// IsRemoteOperationError checks if an error is a RemoteOperationError
func IsRemoteOperationError(err error) bool {
	var target *RemoteOperationError
	return errors.As(err, &target)
}

func remoteError(op Operation, org, project, workspaceID string, err error) *RemoteOperationError {
	return &RemoteOperationError{
		Op:          op,
		OrgID:       org,
		ProjectID:   project,
		WorkspaceID: workspaceID,
		Err:         err,
	}
}
