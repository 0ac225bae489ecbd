package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-formkit/pkg/openapi"
)

const extensionNamespace = "x-formkit"

var formMediaTypes = []string{
	"application/json",
	"application/x-www-form-urlencoded",
	"multipart/form-data",
}

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) *Parser {
	return &Parser{options: options}
}

// Operations converts a Document into a map keyed by operationId.
// Operations without an id are keyed "method:path".
func (p *Parser) Operations(ctx context.Context, doc pkgopenapi.Document) (map[string]pkgopenapi.Operation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}

	if p.options.Validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}

	operations := make(map[string]pkgopenapi.Operation)
	if spec.Paths != nil {
		for path, item := range spec.Paths.Map() {
			if item == nil {
				continue
			}
			for method, operation := range item.Operations() {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				collectOperation(operations, method, path, operation)
			}
		}
	}

	if len(operations) == 0 && !p.options.AllowEmpty {
		return nil, errors.New("openapi parser: no operations extracted")
	}
	return operations, nil
}

// Operation returns a single operation by id.
func (p *Parser) Operation(ctx context.Context, doc pkgopenapi.Document, id string) (pkgopenapi.Operation, error) {
	ops, err := p.Operations(ctx, doc)
	if err != nil {
		return pkgopenapi.Operation{}, err
	}
	op, ok := ops[id]
	if !ok {
		return pkgopenapi.Operation{}, fmt.Errorf("openapi parser: operation %q not found", id)
	}
	return op, nil
}

func collectOperation(target map[string]pkgopenapi.Operation, method, path string, operation *openapi3.Operation) {
	if operation == nil {
		return
	}
	method = strings.ToUpper(method)
	id := operation.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}

	contentType, body := extractRequestSchema(operation.RequestBody)
	target[id] = pkgopenapi.Operation{
		ID:          id,
		Method:      method,
		Path:        path,
		Summary:     operation.Summary,
		Description: operation.Description,
		ContentType: contentType,
		RequestBody: body,
	}
}

func extractRequestSchema(requestBody *openapi3.RequestBodyRef) (string, pkgopenapi.Schema) {
	if requestBody == nil {
		return "", pkgopenapi.Schema{}
	}
	if requestBody.Value == nil {
		return "", pkgopenapi.Schema{Ref: requestBody.Ref}
	}
	content := requestBody.Value.Content
	for _, mediaType := range formMediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil {
			return mediaType, convertSchema(mt.Schema, 0)
		}
	}
	return "", pkgopenapi.Schema{}
}

// maxDepth bounds recursion through self-referencing schemas.
const maxDepth = 8

func convertSchema(ref *openapi3.SchemaRef, depth int) pkgopenapi.Schema {
	if ref == nil {
		return pkgopenapi.Schema{}
	}
	if ref.Value == nil || depth > maxDepth {
		return pkgopenapi.Schema{Ref: ref.Ref}
	}
	src := ref.Value
	schema := pkgopenapi.Schema{
		Ref:         ref.Ref,
		Type:        firstSchemaType(src.Type),
		Format:      src.Format,
		Title:       src.Title,
		Description: src.Description,
		Default:     src.Default,
		Extensions:  extractExtensions(src.Extensions),
	}

	if len(src.Required) > 0 {
		schema.Required = append([]string(nil), src.Required...)
	}
	if len(src.Enum) > 0 {
		schema.Enum = append([]any(nil), src.Enum...)
	}
	if len(src.Properties) > 0 {
		schema.Properties = make(map[string]pkgopenapi.Schema, len(src.Properties))
		for name, property := range src.Properties {
			schema.Properties[name] = convertSchema(property, depth+1)
		}
	}
	if src.Items != nil {
		items := convertSchema(src.Items, depth+1)
		schema.Items = &items
	}
	if src.MinLength != 0 {
		value := int(src.MinLength)
		schema.MinLength = &value
	}
	if src.MaxLength != nil {
		value := int(*src.MaxLength)
		schema.MaxLength = &value
	}

	mergeAllOf(&schema, src.AllOf, depth)
	return schema
}

// mergeAllOf folds allOf members into target: properties, required names and
// extensions the target does not already declare.
func mergeAllOf(target *pkgopenapi.Schema, refs openapi3.SchemaRefs, depth int) {
	for _, ref := range refs {
		if ref == nil || ref.Value == nil {
			continue
		}
		member := convertSchema(ref, depth+1)
		if target.Type == "" {
			target.Type = member.Type
		}
		for name, prop := range member.Properties {
			if target.Properties == nil {
				target.Properties = make(map[string]pkgopenapi.Schema)
			}
			if _, exists := target.Properties[name]; !exists {
				target.Properties[name] = prop
			}
		}
		for _, req := range member.Required {
			if !target.IsRequired(req) {
				target.Required = append(target.Required, req)
			}
		}
		for key, value := range member.Extensions {
			if target.Extensions == nil {
				target.Extensions = make(map[string]string)
			}
			if _, exists := target.Extensions[key]; !exists {
				target.Extensions[key] = value
			}
		}
	}
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, value := range types.Slice() {
		if value != "null" {
			return value
		}
	}
	return ""
}

// extractExtensions keeps x-formkit-* keys with scalar or list values.
func extractExtensions(raw map[string]any) map[string]string {
	if len(raw) == 0 {
		return nil
	}
	result := make(map[string]string)
	for key, value := range raw {
		if !strings.HasPrefix(key, extensionNamespace+"-") {
			continue
		}
		switch typed := value.(type) {
		case nil:
			continue
		case []any:
			parts := make([]string, 0, len(typed))
			for _, item := range typed {
				parts = append(parts, fmt.Sprint(item))
			}
			result[key] = strings.Join(parts, ",")
		default:
			result[key] = fmt.Sprint(typed)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
