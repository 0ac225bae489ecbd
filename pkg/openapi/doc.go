// Package openapi exposes the contracts for loading OpenAPI documents and
// extracting request-body constraints from them. The kin-openapi backed
// implementations live under internal/openapi; FieldSet turns a parsed
// operation into a field.Set ready for validation and rendering.
package openapi
