package reconciler

import (
	"context"

	"github.com/giantswarm/projectinstall/internal/console"
	pkgstrings "github.com/giantswarm/projectinstall/pkg/strings"
)

const maxLoggedResponse = 512

// Dispatch subscribes req.CredentialID to every service in req with a single
// call. A failure is logged with the console error and returned as a
// RemoteOperationError carrying SubscribeFailedMessage. There is no retry.
func (i *Installer) Dispatch(ctx context.Context, req *console.SubscriptionRequest) error {
	i.logger.Debug("Subscribing credential %s to %v in workspace %s", req.CredentialID, req.SDKCodes(), req.WorkspaceID)

	result, err := i.client.SubscribeCredentialToServices(ctx, req.OrgID, req.ProjectID, req.WorkspaceID, req.CredentialType, req.CredentialID, req.Services)
	if err != nil {
		i.logger.Error(err, "Subscribing %v to workspace %s failed", req.SDKCodes(), req.WorkspaceID)
		return &RemoteOperationError{
			Op:          OpSubscribe,
			OrgID:       req.OrgID,
			ProjectID:   req.ProjectID,
			WorkspaceID: req.WorkspaceID,
			Family:      CredentialFamily(req.CredentialType),
			Err:         err,
		}
	}
	if result != nil && len(result.Body) > 0 {
		i.logger.Debug("Subscription response for workspace %s: %s", req.WorkspaceID, pkgstrings.Truncate(string(result.Body), maxLoggedResponse))
	}
	return nil
}
