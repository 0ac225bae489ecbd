package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/pkg/i18n"
)

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "formkit",
		Short:         "Validate values, lay out calendars and fill forms from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setupLogger(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVar(&a.locale, "locale", i18n.DefaultLocale, "Locale for messages and calendar names")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newGridCmd(a))
	cmd.AddCommand(newValidateCmd(a))
	cmd.AddCommand(newFillCmd(a))
	cmd.AddCommand(newHTMLCmd(a))
	cmd.AddCommand(newLintCmd(a))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func addSourceFlags(cmd *cobra.Command, src *formSource) {
	cmd.Flags().StringVar(&src.form, "form", "", "Field set file (YAML or JSON)")
	cmd.Flags().StringVar(&src.openapi, "openapi", "", "OpenAPI document path or URL")
	cmd.Flags().StringVar(&src.operation, "operation", "", "Operation ID to build the form from")
	cmd.Flags().StringVar(&src.preset, "preset", "", "JSON preset adjusting labels, order and rules")
	cmd.Flags().DurationVar(&src.timeout, "timeout", 0, "Timeout for OpenAPI documents fetched over HTTP")
}
