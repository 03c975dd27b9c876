package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/giantswarm/projectinstall/internal/cli"
	"github.com/giantswarm/projectinstall/internal/config"
	"github.com/giantswarm/projectinstall/internal/console"
	"github.com/giantswarm/projectinstall/internal/reconciler"
	"github.com/giantswarm/projectinstall/pkg/logging"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeConfiguration indicates an invalid template or a template the
	// organization cannot satisfy.
	ExitCodeConfiguration = 2
	// ExitCodeRemote indicates a failed developer console call.
	ExitCodeRemote = 3
)

// buildVersion is injected by main through SetVersion.
var buildVersion = "dev"

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	Debug      bool
	LogFormat  string
	ConfigPath string
	Output     string
	Quiet      bool
}

// newConsoleClient builds the console client commands talk to. Tests replace it.
var newConsoleClient = func(cfg config.ConsoleConfig) (console.Client, error) {
	return console.NewHTTPClient(console.HTTPClientConfig{
		Endpoint:    cfg.ResolvedEndpoint(),
		APIKey:      cfg.ResolvedAPIKey(),
		AccessToken: cfg.AccessToken,
		Timeout:     cfg.Timeout,
		Logger:      logging.For("ConsoleClient"),
	})
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "projectinstall",
		Short: "Install app templates into developer console projects",
		Long: `projectinstall reads a template's install file and brings a developer
console project in line with it: workspaces and runtime namespaces are
created, credentials are found or created, and every workspace is subscribed
to the APIs the template needs. Re-running an install is safe.`,
		// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return flags.setup(cmd)
		},
	}

	defaultConfigPath, err := config.DefaultConfigPath()
	if err != nil {
		defaultConfigPath = ""
	}
	cmd.PersistentFlags().BoolVar(&flags.Debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&flags.LogFormat, "log-format", string(logging.FormatText), "Log format (text, json)")
	cmd.PersistentFlags().StringVar(&flags.ConfigPath, "config-path", defaultConfigPath, "Configuration directory")
	cmd.PersistentFlags().StringVarP(&flags.Output, "output", "o", string(cli.OutputFormatTable), "Output format (table, json, yaml)")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress progress output")

	cmd.AddCommand(newInstallCmd(flags))
	cmd.AddCommand(newPlanCmd(flags))
	cmd.AddCommand(newValidateCmd(flags))
	cmd.AddCommand(newDependenciesCmd(flags))
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newSelfUpdateCmd())
	return cmd
}

// setup validates the persistent flags and initialises logging. Logs go to
// stderr so that structured output on stdout stays parseable.
func (g *globalFlags) setup(cmd *cobra.Command) error {
	if err := cli.ValidateOutputFormat(g.Output); err != nil {
		return err
	}
	format := logging.Format(g.LogFormat)
	if format != logging.FormatText && format != logging.FormatJSON {
		return fmt.Errorf("unsupported log format: %q (valid: text, json)", g.LogFormat)
	}
	level := logging.LevelWarn
	if g.Debug {
		level = logging.LevelDebug
	}
	logging.Init(level, format, cmd.ErrOrStderr())
	return nil
}

func (g *globalFlags) printer(cmd *cobra.Command) *cli.Printer {
	return cli.NewPrinter(cmd.OutOrStdout(), cli.OutputFormat(g.Output))
}

// loadInstallerConfig reads .env, the config file and environment overrides.
func (g *globalFlags) loadInstallerConfig() (config.InstallerConfig, error) {
	if err := config.LoadEnvFile(".env"); err != nil {
		return config.InstallerConfig{}, err
	}
	cfg, err := config.LoadConfig(g.ConfigPath)
	if err != nil {
		return config.InstallerConfig{}, err
	}
	if err := config.ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return config.InstallerConfig{}, err
	}
	return cfg, nil
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	buildVersion = v
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return buildVersion
}

// Execute is the main entry point for the CLI application. It is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "projectinstall version %s\n" .Version}}`)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(getExitCode(err))
	}
}

// getExitCode maps an error to one of the documented exit codes.
func getExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}

	var validationErrs config.ValidationErrors
	if errors.As(err, &validationErrs) {
		return ExitCodeConfiguration
	}

	switch reconciler.KindOf(err) {
	case reconciler.KindConfiguration:
		return ExitCodeConfiguration
	case reconciler.KindRemoteOperation:
		return ExitCodeRemote
	}

	if _, ok := console.IsAPIError(err); ok {
		return ExitCodeRemote
	}
	return ExitCodeError
}
