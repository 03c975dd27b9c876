// Package reconciler converges a developer-console project towards a
// template configuration.
//
// An Installer runs the install in explicit steps:
//
//  1. ReconcileWorkspaces creates the declared workspaces plus Stage and
//     Production and, when the template asks for it, their runtime namespaces.
//  2. PlanServices resolves the declared API codes against the organization
//     catalog once and groups them by CredentialFamily. An unknown or
//     unsupported code fails the install before any subscription is made.
//  3. For every workspace and family, ResolveCredential finds or creates a
//     credential and Dispatch subscribes it to the whole batch in one call.
//  4. Template hooks are handed to the HookRegistrar.
//
// Every step is idempotent: re-running against an unchanged project creates
// nothing. A failure stops the install; changes already made stay and a
// re-run continues from there.
//
// Workspaces are configured sequentially unless WithWorkers allows more.
// Calls for a single workspace are always serialised.
//
// Errors are either *ConfigurationError or *RemoteOperationError; use KindOf
// to branch on them.
//
// Example:
//
//	inst := reconciler.NewInstaller(client, cfg,
//	    reconciler.WithLogger(logging.For("Installer")),
//	    reconciler.WithWorkers(4),
//	)
//	report, err := inst.Install(ctx, orgID, projectID)
package reconciler
