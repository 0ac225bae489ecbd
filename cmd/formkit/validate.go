package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	validationcomponent "github.com/goliatone/go-formkit/components/validation"
	"github.com/goliatone/go-formkit/pkg/i18n"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// errInvalidValue makes the command exit non-zero after the verdict has
// been printed.
var errInvalidValue = errors.New("value is invalid")

type validateOptions struct {
	required  bool
	minLength int
	maxLength int
	kind      string
	checked   bool
	count     int
	json      bool
}

func newValidateCmd(a *app) *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate [value]",
		Short: "Validate a value against a constraint",
		Example: `  formkit validate --required --min-length 3 ab
  formkit validate --kind email grace@example.com
  formkit validate --required --checked=false`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := validationcomponent.Request{Locale: a.locale}
			if len(args) == 1 {
				req.Value = args[0]
			}

			flags := cmd.Flags()
			req.Constraint.Required = opts.required
			req.Constraint.Kind = validation.Kind(opts.kind)
			if flags.Changed("min-length") {
				req.Constraint.MinLength = &opts.minLength
			}
			if flags.Changed("max-length") {
				req.Constraint.MaxLength = &opts.maxLength
			}
			if flags.Changed("checked") {
				req.Checked = &opts.checked
			}
			if flags.Changed("count") {
				req.Count = &opts.count
			}
			if req.Checked != nil && req.Count != nil {
				return fmt.Errorf("--checked and --count are mutually exclusive")
			}
			if err := req.Constraint.Check(); err != nil {
				return err
			}

			engine := validation.NewEngine(validation.WithTranslator(i18n.Default()))
			verdict := validationcomponent.Evaluate(engine, req)
			a.log.WithFields(map[string]any{"valid": verdict.Valid, "rule": verdict.Rule}).Debug("validated value")

			if err := printVerdict(cmd, verdict, opts.json); err != nil {
				return err
			}
			if !verdict.Valid {
				return errInvalidValue
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.required, "required", false, "Value must be present")
	cmd.Flags().IntVar(&opts.minLength, "min-length", 0, "Minimum length in characters")
	cmd.Flags().IntVar(&opts.maxLength, "max-length", 0, "Maximum length in characters")
	cmd.Flags().StringVar(&opts.kind, "kind", "", "Value kind (text, email, number, decimal)")
	cmd.Flags().BoolVar(&opts.checked, "checked", false, "Validate a checkbox state instead of a value")
	cmd.Flags().IntVar(&opts.count, "count", 0, "Validate a number of selected items instead of a value")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print the verdict as JSON")

	return cmd
}

func printVerdict(cmd *cobra.Command, verdict validation.Verdict, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		return json.NewEncoder(out).Encode(verdict)
	}
	if verdict.Valid {
		_, err := fmt.Fprintln(out, "valid")
		return err
	}
	_, err := fmt.Fprintf(out, "invalid (%s): %s\n", verdict.Rule, verdict.Message)
	return err
}
