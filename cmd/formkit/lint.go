package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit"
	pkgopenapi "github.com/goliatone/go-formkit/pkg/openapi"
)

const extensionNamespace = "x-formkit"

var knownExtensions = map[string]struct{}{
	pkgopenapi.ExtensionLabel:        {},
	pkgopenapi.ExtensionPlaceholder:  {},
	pkgopenapi.ExtensionErrorMessage: {},
	pkgopenapi.ExtensionSearchable:   {},
	pkgopenapi.ExtensionOrder:        {},
}

type violation struct {
	file     string
	location string
	message  string
}

func (v violation) String() string {
	return fmt.Sprintf("%s: %s -> %s", v.file, v.location, v.message)
}

func newLintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lint <openapi>...",
		Short: "Check OpenAPI documents for unsupported formkit extensions and broken constraints",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := formkit.NewParser()

			var violations []violation
			for _, path := range args {
				linted, err := lintFile(cmd.Context(), parser, path)
				if err != nil {
					return fmt.Errorf("lint %s: %w", path, err)
				}
				violations = append(violations, linted...)
			}

			sort.Slice(violations, func(i, j int) bool {
				if violations[i].file == violations[j].file {
					if violations[i].location == violations[j].location {
						return violations[i].message < violations[j].message
					}
					return violations[i].location < violations[j].location
				}
				return violations[i].file < violations[j].file
			})
			for _, v := range violations {
				fmt.Fprintln(cmd.OutOrStdout(), v.String())
			}
			a.log.WithFields(map[string]any{"files": len(args), "violations": len(violations)}).Debug("lint finished")
			if len(violations) > 0 {
				return fmt.Errorf("%d violation(s) found", len(violations))
			}
			return nil
		},
	}
}

func lintFile(ctx context.Context, parser pkgopenapi.Parser, path string) ([]violation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFile(path), raw)
	if err != nil {
		return nil, fmt.Errorf("construct document: %w", err)
	}
	operations, err := parser.Operations(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("parse operations: %w", err)
	}

	var result []violation
	for id, op := range operations {
		base := []string{"operation", id, "requestBody"}
		result = append(result, lintSchema(path, base, op.RequestBody)...)
		result = append(result, lintOrder(path, base, op.RequestBody)...)

		if len(op.RequestBody.Properties) == 0 {
			continue
		}
		set, err := pkgopenapi.FieldSet(op)
		if err != nil {
			result = append(result, violation{file: path, location: formatLocation(base), message: err.Error()})
			continue
		}
		for _, f := range set.Fields {
			if err := f.Check(); err != nil {
				location := formatLocation(appendPath(base, "properties."+f.Name))
				result = append(result, violation{file: path, location: location, message: err.Error()})
			}
		}
	}
	return result, nil
}

func lintSchema(file string, path []string, schema pkgopenapi.Schema) []violation {
	result := lintExtensions(file, path, schema.Extensions)

	keys := make([]string, 0, len(schema.Properties))
	for key := range schema.Properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		result = append(result, lintSchema(file, appendPath(path, "properties."+key), schema.Properties[key])...)
	}

	if schema.Items != nil {
		result = append(result, lintSchema(file, appendPath(path, "items"), *schema.Items)...)
	}
	return result
}

func lintExtensions(file string, path []string, extensions map[string]string) []violation {
	keys := make([]string, 0, len(extensions))
	for key := range extensions {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var result []violation
	for _, key := range keys {
		if !strings.HasPrefix(key, extensionNamespace+"-") {
			continue
		}
		if _, ok := knownExtensions[key]; !ok {
			result = append(result, violation{
				file:     file,
				location: formatLocation(path),
				message:  fmt.Sprintf("unsupported extension %q (supported: %s)", key, strings.Join(supportedExtensions(), ", ")),
			})
		}
	}
	return result
}

// lintOrder reports order entries that name no property.
func lintOrder(file string, path []string, schema pkgopenapi.Schema) []violation {
	raw := strings.TrimSpace(schema.Extensions[pkgopenapi.ExtensionOrder])
	if raw == "" {
		return nil
	}
	var result []violation
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := schema.Properties[name]; !ok {
			result = append(result, violation{
				file:     file,
				location: formatLocation(path),
				message:  fmt.Sprintf("%s names unknown property %q", pkgopenapi.ExtensionOrder, name),
			})
		}
	}
	return result
}

func supportedExtensions() []string {
	out := make([]string, 0, len(knownExtensions))
	for key := range knownExtensions {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

func appendPath(path []string, segment string) []string {
	next := append([]string(nil), path...)
	return append(next, segment)
}

func formatLocation(path []string) string {
	return strings.Join(path, " > ")
}
