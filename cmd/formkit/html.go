package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newHTMLCmd(a *app) *cobra.Command {
	src := &formSource{}
	var output string

	cmd := &cobra.Command{
		Use:   "html",
		Short: "Render a form as HTML",
		Example: `  formkit html --form contact.yaml --output contact.html
  formkit html --openapi https://example.com/openapi.json --operation createAccount --timeout 5s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := a.generate(cmd.Context(), src, "vanilla", nil)
			if err != nil {
				return err
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(page)
				return err
			}
			if err := os.WriteFile(output, page, 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			a.log.WithFields(map[string]any{"output": output, "bytes": len(page)}).Info("form written")
			fmt.Fprintf(cmd.ErrOrStderr(), "Form written to %s\n", output)
			return nil
		},
	}

	addSourceFlags(cmd, src)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (stdout if empty)")

	return cmd
}
