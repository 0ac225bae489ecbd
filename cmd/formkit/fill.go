package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/pkg/renderers/tui"
)

func newFillCmd(a *app) *cobra.Command {
	src := &formSource{}
	var format string

	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill a form interactively and print the submitted values",
		Long: `Prompts for every field of a form, validating each answer the way the
browser form would, and prints the submitted values once the form is valid.
Prompts are written to stderr so stdout carries only the result.`,
		Example: `  formkit fill --form contact.yaml
  formkit fill --openapi api.yaml --operation createAccount --format form`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFormat, ok := tui.ParseOutputFormat(format)
			if !ok {
				return fmt.Errorf("unknown --format %q (json, form, pretty)", format)
			}
			payload, err := a.generate(cmd.Context(), src, "tui", cmd.ErrOrStderr(), tui.WithOutputFormat(outputFormat))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(payload))
			return err
		},
	}

	addSourceFlags(cmd, src)
	cmd.Flags().StringVar(&format, "format", string(tui.OutputFormatJSON), "Output format (json, form, pretty)")

	return cmd
}
