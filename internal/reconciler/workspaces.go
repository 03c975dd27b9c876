package reconciler

import (
	"context"
	"fmt"

	"github.com/giantswarm/projectinstall/internal/console"
	"github.com/giantswarm/projectinstall/internal/template"
)

// WorkspaceNames returns declared plus Stage and Production, in first-seen
// order and without duplicates.
func WorkspaceNames(declared []string) []string {
	seen := make(map[string]struct{}, len(declared)+2)
	names := make([]string, 0, len(declared)+2)
	for _, name := range append(append([]string(nil), declared...), template.WorkspaceStage, template.WorkspaceProduction) {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// ReconcileWorkspaces makes sure every declared workspace, plus Stage and
// Production, exists and has a runtime namespace when runtimeEnabled is set.
// Existing runtime namespaces are never removed.
func (i *Installer) ReconcileWorkspaces(ctx context.Context, orgID, projectID string, runtimeEnabled bool, declared []string) ([]console.Workspace, error) {
	states, err := i.reconcileWorkspaces(ctx, orgID, projectID, runtimeEnabled, declared)
	if err != nil {
		return nil, err
	}
	workspaces := make([]console.Workspace, 0, len(states))
	for _, s := range states {
		workspaces = append(workspaces, s.Workspace())
	}
	return workspaces, nil
}

func (i *Installer) reconcileWorkspaces(ctx context.Context, orgID, projectID string, runtimeEnabled bool, declared []string) ([]WorkspaceReport, error) {
	existing, err := i.client.ListWorkspaces(ctx, orgID, projectID)
	if err != nil {
		return nil, remoteError(OpListWorkspaces, orgID, projectID, "", err)
	}

	var states []WorkspaceReport
	for _, name := range WorkspaceNames(declared) {
		state, err := i.reconcileWorkspace(ctx, orgID, projectID, runtimeEnabled, name, existing)
		if err != nil {
			return states, err
		}
		states = append(states, state)
	}
	return states, nil
}

func (i *Installer) reconcileWorkspace(ctx context.Context, orgID, projectID string, runtimeEnabled bool, name string, existing []console.Workspace) (WorkspaceReport, error) {
	state := WorkspaceReport{Name: name}

	if ws, ok := findWorkspace(existing, name); ok {
		i.logger.Debug("Workspace %s already exists (%s)", name, ws.ID)
		state.ID = ws.ID
		state.RuntimeEnabled = bool(ws.RuntimeEnabled)
	} else {
		i.logger.Info("Creating workspace %s", name)
		created, err := i.client.CreateWorkspace(ctx, orgID, projectID, console.WorkspaceSpec{
			Name:  name,
			Title: fmt.Sprintf("%s workspace", name),
		})
		if err != nil {
			return state, remoteError(OpCreateWorkspace, orgID, projectID, "", err)
		}
		state.ID = created.ID
		state.Created = true
	}

	if runtimeEnabled && !state.RuntimeEnabled {
		i.logger.Info("Creating runtime namespace for workspace %s", name)
		if err := i.client.CreateRuntimeNamespace(ctx, orgID, projectID, state.ID); err != nil {
			return state, remoteError(OpCreateRuntimeNamespace, orgID, projectID, state.ID, err)
		}
		state.RuntimeEnabled = true
		state.RuntimeCreated = true
	}
	return state, nil
}

// undeclaredWorkspaces lists the project again and returns report entries for
// the workspaces not in known.
func (i *Installer) undeclaredWorkspaces(ctx context.Context, orgID, projectID string, known []WorkspaceReport) ([]WorkspaceReport, error) {
	current, err := i.client.ListWorkspaces(ctx, orgID, projectID)
	if err != nil {
		return nil, remoteError(OpListWorkspaces, orgID, projectID, "", err)
	}

	seen := make(map[string]struct{}, len(known))
	for _, ws := range known {
		seen[ws.ID] = struct{}{}
	}
	var extra []WorkspaceReport
	for _, ws := range current {
		if _, ok := seen[ws.ID]; ok {
			continue
		}
		seen[ws.ID] = struct{}{}
		i.logger.Debug("Including undeclared workspace %s (%s)", ws.Name, ws.ID)
		extra = append(extra, WorkspaceReport{ID: ws.ID, Name: ws.Name, RuntimeEnabled: bool(ws.RuntimeEnabled)})
	}
	return extra, nil
}

func findWorkspace(workspaces []console.Workspace, name string) (console.Workspace, bool) {
	for _, ws := range workspaces {
		if ws.Name == name {
			return ws, true
		}
	}
	return console.Workspace{}, false
}
