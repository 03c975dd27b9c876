package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/giantswarm/projectinstall/internal/cli"
	"github.com/giantswarm/projectinstall/internal/template"
)

func newValidateCmd(flags *globalFlags) *cobra.Command {
	var templatePath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a template install file",
		Long: `Validate parses the template install file as JSON or YAML and reports every
missing or invalid key. The command fails when the template is invalid.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl, _, err := template.Load(templatePath)
			if err != nil {
				return err
			}

			errs := template.Validate(tmpl)
			result := cli.ValidationResult{Valid: !errs.HasErrors(), Errors: []string{}}
			for _, e := range errs {
				result.Errors = append(result.Errors, e.Error())
			}
			if err := flags.printer(cmd).PrintValidation(result); err != nil {
				return err
			}
			if errs.HasErrors() {
				return fmt.Errorf("template is invalid: %w", errs)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&templatePath, "template", "t", defaultTemplatePath, "Template install file")

	return cmd
}
