// Package logging provides structured, subsystem-tagged logging for
// projectinstall on top of Go's standard slog package.
//
// # Log Levels
//   - **Debug**: remote payloads and per-call detail
//   - **Info**: reconciliation progress (workspaces created, credentials chosen)
//   - **Warn**: recoverable oddities
//   - **Error**: failures, always with the underlying error attached
//
// # Usage
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//	logging.Info("Bootstrap", "Installing template into project %s", projectID)
//
// Components that should not reach for process-wide state take a Logger:
//
//	installer := reconciler.NewInstaller(client, cfg,
//	    reconciler.WithLogger(logging.For("Installer")))
//
// Discard returns a Logger that drops every entry, which is what the
// reconciliation engine uses when no logger is supplied.
package logging
