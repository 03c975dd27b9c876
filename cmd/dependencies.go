package cmd

import (
	"github.com/spf13/cobra"

	"github.com/giantswarm/projectinstall/internal/template"
)

func newDependenciesCmd(flags *globalFlags) *cobra.Command {
	var templatePath string

	cmd := &cobra.Command{
		Use:     "dependencies",
		Aliases: []string{"deps"},
		Short:   "List the console services a template needs",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl, err := template.LoadAndValidate(templatePath)
			if err != nil {
				return err
			}
			return flags.printer(cmd).PrintDependencies(tmpl.RequiredServices())
		},
	}

	cmd.Flags().StringVarP(&templatePath, "template", "t", defaultTemplatePath, "Template install file")

	return cmd
}
