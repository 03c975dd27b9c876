package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/giantswarm/projectinstall/internal/cli"
	"github.com/giantswarm/projectinstall/internal/reconciler"
	"github.com/giantswarm/projectinstall/internal/template"
	"github.com/giantswarm/projectinstall/pkg/logging"
)

func newPlanCmd(flags *globalFlags) *cobra.Command {
	var (
		orgID        string
		templatePath string
		accessToken  string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show what an install would subscribe without changing anything",
		Long: `Plan resolves the template's APIs against the organization's services and
prints the workspaces, credential families, services and selected license
configurations an install would use. Only the organization's service list is
read from the console. Templates without APIs are planned offline.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl, err := template.LoadAndValidate(templatePath)
			if err != nil {
				return err
			}

			var plan *reconciler.ServicePlan
			if len(tmpl.APIs) > 0 {
				if orgID == "" {
					return fmt.Errorf("--org is required when the template declares APIs")
				}
				client, err := connect(flags, accessToken)
				if err != nil {
					return err
				}
				installer := reconciler.NewInstaller(client, tmpl, reconciler.WithLogger(logging.For("Installer")))
				plan, err = installer.Plan(cmd.Context(), orgID)
				if err != nil {
					return err
				}
			}
			return flags.printer(cmd).PrintPlan(cli.NewPlanView(tmpl, plan))
		},
	}

	cmd.Flags().StringVar(&orgID, "org", "", "Organization ID (required when the template declares APIs)")
	cmd.Flags().StringVarP(&templatePath, "template", "t", defaultTemplatePath, "Template install file")
	cmd.Flags().StringVar(&accessToken, "access-token", "", "Console access token")

	return cmd
}
