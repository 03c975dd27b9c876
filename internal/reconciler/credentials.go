package reconciler

import (
	"context"

	"github.com/giantswarm/projectinstall/internal/console"
)

type credentialKey struct {
	orgID       string
	projectID   string
	workspaceID string
	family      CredentialFamily
}

// ResolveCredential returns the id of a credential that can subscribe
// workspaceID to services of family, creating one when none exists.
//
// Enterprise services prefer an OAuth server-to-server credential, then a
// legacy service (JWT) credential, and otherwise create a server-to-server
// credential. AdobeID services reuse an API key credential or create one.
// The result is cached for the rest of the run.
func (i *Installer) ResolveCredential(ctx context.Context, orgID, projectID, workspaceID string, family CredentialFamily) (string, error) {
	id, _, err := i.resolveCredential(ctx, orgID, projectID, workspaceID, family)
	return id, err
}

func (i *Installer) resolveCredential(ctx context.Context, orgID, projectID, workspaceID string, family CredentialFamily) (string, bool, error) {
	if !family.IsSupported() {
		return "", false, &ConfigurationError{
			Reason:    ReasonUnsupportedFamily,
			Family:    family,
			Supported: supportedFamilyNames(),
		}
	}

	key := credentialKey{orgID: orgID, projectID: projectID, workspaceID: workspaceID, family: family}
	if id, ok := i.cachedCredential(key); ok {
		i.logger.Debug("Reusing %s credential %s for workspace %s", family, id, workspaceID)
		return id, false, nil
	}

	existing, err := i.client.ListCredentials(ctx, orgID, projectID, workspaceID)
	if err != nil {
		return "", false, withFamily(remoteError(OpListCredentials, orgID, projectID, workspaceID, err), family)
	}

	if cred, ok := selectCredential(existing, family); ok {
		i.logger.Debug("Using existing %s credential %s (%s) for workspace %s", family, cred.ID, cred.IntegrationType, workspaceID)
		i.storeCredential(key, cred.ID)
		return cred.ID, false, nil
	}

	created, err := i.createCredential(ctx, orgID, projectID, workspaceID, family)
	if err != nil {
		return "", false, err
	}
	i.logger.Info("Created %s credential %s for workspace %s", family, created.ID, workspaceID)
	i.storeCredential(key, created.ID)
	return created.ID, true, nil
}

// selectCredential picks the preferred existing credential for family.
func selectCredential(existing []console.Credential, family CredentialFamily) (console.Credential, bool) {
	var preference []string
	switch family {
	case FamilyEnterprise:
		preference = []string{console.IntegrationTypeOAuthServerToServer, console.IntegrationTypeService}
	case FamilyAdobeID:
		preference = []string{console.IntegrationTypeAPIKey}
	}
	for _, integrationType := range preference {
		for _, c := range existing {
			if c.FlowType == string(family) && c.IntegrationType == integrationType {
				return c, true
			}
		}
	}
	return console.Credential{}, false
}

func (i *Installer) createCredential(ctx context.Context, orgID, projectID, workspaceID string, family CredentialFamily) (*console.Credential, error) {
	data := nameData{WorkspaceID: workspaceID, Family: string(family)}

	switch family {
	case FamilyEnterprise:
		name, description, err := i.names.render(family, i.names.OAuthName, i.names.OAuthDescription, data, i.clock)
		if err != nil {
			return nil, err
		}
		cred, err := i.client.CreateOAuthServerToServerCredential(ctx, orgID, projectID, workspaceID, name, description)
		if err != nil {
			return nil, withFamily(remoteError(OpCreateOAuthCredential, orgID, projectID, workspaceID, err), family)
		}
		return cred, nil
	default:
		name, description, err := i.names.render(family, i.names.AdobeIDName, i.names.AdobeIDDescription, data, i.clock)
		if err != nil {
			return nil, err
		}
		cred, err := i.client.CreateAdobeIDCredential(ctx, orgID, projectID, workspaceID, console.AdobeIDCredentialSpec{
			Name:         name,
			Description:  description,
			Platform:     console.PlatformAPIKey,
			Domain:       i.adobeID.Domain,
			RedirectURIs: i.adobeID.RedirectURIs,
		})
		if err != nil {
			return nil, withFamily(remoteError(OpCreateAdobeIDCredential, orgID, projectID, workspaceID, err), family)
		}
		return cred, nil
	}
}

func (i *Installer) cachedCredential(key credentialKey) (string, bool) {
	i.credMu.Lock()
	defer i.credMu.Unlock()
	id, ok := i.credentials[key]
	return id, ok
}

func (i *Installer) storeCredential(key credentialKey, id string) {
	i.credMu.Lock()
	defer i.credMu.Unlock()
	i.credentials[key] = id
}

func withFamily(err *RemoteOperationError, family CredentialFamily) *RemoteOperationError {
	err.Family = family
	return err
}
