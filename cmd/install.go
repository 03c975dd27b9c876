package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/giantswarm/projectinstall/internal/cli"
	"github.com/giantswarm/projectinstall/internal/config"
	"github.com/giantswarm/projectinstall/internal/console"
	"github.com/giantswarm/projectinstall/internal/hooks"
	"github.com/giantswarm/projectinstall/internal/reconciler"
	"github.com/giantswarm/projectinstall/internal/template"
	"github.com/giantswarm/projectinstall/internal/watch"
	"github.com/giantswarm/projectinstall/pkg/logging"
)

const defaultTemplatePath = "install.yml"

type installOptions struct {
	OrgID        string
	ProjectID    string
	TemplatePath string
	TemplateName string
	AccessToken  string
	Manifest     string
	Workers      int
	Watch        bool
}

func newInstallCmd(flags *globalFlags) *cobra.Command {
	opts := &installOptions{}

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install a template into a console project",
		Long: `Install reads the template's install file and reconciles the project:

  - declared workspaces plus Stage and Production are created when missing
  - runtime namespaces are enabled when the template asks for a runtime
  - every workspace gets one credential per credential family its APIs need
  - the APIs are subscribed, restricted to the template's product profiles
  - template hooks are written to the application manifest

Existing workspaces and credentials are reused, so the command can be re-run
after a failure. With --watch the install is repeated whenever the template
file changes.`,
		Example: `  projectinstall install --org 1234 --project 5678
  projectinstall install --org 1234 --project 5678 -t ./my-template/install.yml --workers 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, flags, opts)
		},
	}

	cmd.Flags().StringVar(&opts.OrgID, "org", "", "Organization ID (required)")
	cmd.Flags().StringVar(&opts.ProjectID, "project", "", "Project ID (required)")
	cmd.Flags().StringVarP(&opts.TemplatePath, "template", "t", defaultTemplatePath, "Template install file")
	cmd.Flags().StringVar(&opts.TemplateName, "template-name", "", "Template identifier used in hook commands (default: the template directory name)")
	cmd.Flags().StringVar(&opts.AccessToken, "access-token", "", "Console access token (default: $"+config.EnvAccessToken+")")
	cmd.Flags().StringVar(&opts.Manifest, "app-config", "", "Application manifest hooks are written to (default from config)")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "Number of workspaces configured concurrently (default from config)")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Re-run the install whenever the template changes")
	_ = cmd.MarkFlagRequired("org")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func runInstall(cmd *cobra.Command, flags *globalFlags, opts *installOptions) error {
	cfg, err := flags.loadInstallerConfig()
	if err != nil {
		return err
	}
	if opts.AccessToken != "" {
		cfg.Console.AccessToken = opts.AccessToken
	}
	if opts.Workers > 0 {
		cfg.Workers = opts.Workers
	}
	if opts.Manifest != "" {
		cfg.Hooks.Manifest = opts.Manifest
	}
	errs := config.Validate(cfg)
	errs = append(errs, checkNameTemplates(cfg)...)
	if errs.HasErrors() {
		return fmt.Errorf("invalid configuration: %w", errs)
	}

	client, err := newConsoleClient(cfg.Console)
	if err != nil {
		return err
	}

	printer := flags.printer(cmd)
	registrar := hooks.NewManifestRegistrar(cfg.Hooks.Manifest, cfg.Hooks.CommandTemplate, logging.For("Hooks"))
	templateID := opts.TemplateName
	if templateID == "" {
		templateID = templateIDFromPath(opts.TemplatePath)
	}

	install := func(ctx context.Context) error {
		tmpl, err := template.LoadAndValidate(opts.TemplatePath)
		if err != nil {
			return err
		}
		installer := reconciler.NewInstaller(client, tmpl, installerOptions(cfg, templateID, registrar)...)

		progress := cli.StartProgress(cmd.ErrOrStderr(),
			fmt.Sprintf("Installing %s into project %s", opts.TemplatePath, opts.ProjectID),
			!flags.Quiet && !printer.Structured())
		report, err := installer.Install(ctx, opts.OrgID, opts.ProjectID)
		if err != nil {
			progress.Stop(false, "Install failed")
			return err
		}
		progress.Stop(true, "Install complete")
		return printer.PrintReport(report)
	}

	if !opts.Watch {
		return install(cmd.Context())
	}

	watcher, err := watch.NewFileWatcher(watch.DefaultDebounce, opts.TemplatePath)
	if err != nil {
		return err
	}
	logging.Info("Install", "Watching %s for changes", opts.TemplatePath)
	return watch.Run(cmd.Context(), watcher, install, func(err error) {
		logging.Error("Install", err, "Install of %s failed", opts.TemplatePath)
	})
}

func installerOptions(cfg config.InstallerConfig, templateID string, registrar reconciler.HookRegistrar) []reconciler.Option {
	return []reconciler.Option{
		reconciler.WithLogger(logging.For("Installer")),
		reconciler.WithWorkers(cfg.Workers),
		reconciler.WithAdobeID(cfg.AdobeID.Domain, cfg.AdobeID.RedirectURIs),
		reconciler.WithCredentialNames(reconciler.CredentialNames{
			OAuthName:          cfg.Credentials.OAuthName,
			OAuthDescription:   cfg.Credentials.OAuthDescription,
			AdobeIDName:        cfg.Credentials.AdobeIDName,
			AdobeIDDescription: cfg.Credentials.AdobeIDDescription,
		}),
		reconciler.WithHookRegistrar(templateID, registrar),
	}
}

// checkNameTemplates parses the credential name and hook command templates so
// that a typo fails before anything is created.
func checkNameTemplates(cfg config.InstallerConfig) config.ValidationErrors {
	var errs config.ValidationErrors
	engine := template.NewEngine(nil)
	for _, f := range []struct{ field, text string }{
		{"credentials.oauthName", cfg.Credentials.OAuthName},
		{"credentials.oauthDescription", cfg.Credentials.OAuthDescription},
		{"credentials.adobeIdName", cfg.Credentials.AdobeIDName},
		{"credentials.adobeIdDescription", cfg.Credentials.AdobeIDDescription},
		{"hooks.commandTemplate", cfg.Hooks.CommandTemplate},
	} {
		if err := engine.Check(f.field, f.text); err != nil {
			errs.Add(f.field, err.Error(), f.text)
		}
	}
	return errs
}

// templateIDFromPath names a template after the directory holding its
// install file.
func templateIDFromPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return filepath.Base(filepath.Dir(abs))
}

// connect loads the installer configuration and builds a console client for
// commands that only read from the console.
func connect(flags *globalFlags, accessToken string) (console.Client, error) {
	cfg, err := flags.loadInstallerConfig()
	if err != nil {
		return nil, err
	}
	if accessToken != "" {
		cfg.Console.AccessToken = accessToken
	}
	if errs := config.Validate(cfg); errs.HasErrors() {
		return nil, fmt.Errorf("invalid configuration: %w", errs)
	}
	return newConsoleClient(cfg.Console)
}
