package parser

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgopenapi "github.com/goliatone/go-formkit/pkg/openapi"
)

func loadFixture(t *testing.T) pkgopenapi.Document {
	t.Helper()
	path := filepath.Join("testdata", "signup.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFile(path), data)
}

func TestOperations_ExtractsRequestBody(t *testing.T) {
	p := New(pkgopenapi.NewParserOptions())
	ops, err := p.Operations(context.Background(), loadFixture(t))
	if err != nil {
		t.Fatalf("operations: %v", err)
	}

	if _, ok := ops["get:/health"]; !ok {
		t.Fatalf("operations without id should be keyed by method and path, got %v", keys(ops))
	}

	op, ok := ops["createAccount"]
	if !ok {
		t.Fatalf("createAccount missing, got %v", keys(ops))
	}
	if op.Method != "POST" || op.Path != "/signup" || op.ContentType != "application/json" {
		t.Fatalf("unexpected operation header %+v", op)
	}

	body := op.RequestBody
	if body.Type != "object" {
		t.Fatalf("allOf should contribute the object type, got %q", body.Type)
	}
	for _, name := range []string{"email", "username", "plan"} {
		if !body.IsRequired(name) {
			t.Fatalf("expected %s to be required, got %v", name, body.Required)
		}
	}
	if body.Extensions["x-formkit-order"] != "username,email,password,plan,age,newsletter" {
		t.Fatalf("unexpected order extension %q", body.Extensions["x-formkit-order"])
	}

	username := body.Properties["username"]
	if username.MinLength == nil || *username.MinLength != 3 || username.MaxLength == nil || *username.MaxLength != 20 {
		t.Fatalf("unexpected username bounds %+v", username)
	}
	if username.Extensions["x-formkit-label"] != "Handle" {
		t.Fatalf("expected label extension, got %v", username.Extensions)
	}

	email := body.Properties["email"]
	if email.Format != "email" || email.Extensions["x-formkit-error-message"] != "We need a valid address" {
		t.Fatalf("unexpected email property %+v", email)
	}

	wantEnum := []any{"free", "pro", "team", "enterprise"}
	if diff := cmp.Diff(wantEnum, body.Properties["plan"].Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}
}

func TestOperation_NotFound(t *testing.T) {
	p := New(pkgopenapi.NewParserOptions())
	if _, err := p.Operation(context.Background(), loadFixture(t), "missing"); err == nil {
		t.Fatalf("expected error for missing operation")
	}
}

func TestOperations_RejectsEmptyDocuments(t *testing.T) {
	const document = `{"openapi":"3.0.0","info":{"title":"Empty","version":"1"},"paths":{}}`
	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromBytes("empty"), []byte(document))

	if _, err := New(pkgopenapi.NewParserOptions()).Operations(context.Background(), doc); err == nil {
		t.Fatalf("expected error for document without operations")
	}

	ops, err := New(pkgopenapi.NewParserOptions(pkgopenapi.WithEmptyDocuments(true))).Operations(context.Background(), doc)
	if err != nil {
		t.Fatalf("empty documents allowed: %v", err)
	}
	if len(ops) != 0 {
		t.Fatalf("expected no operations, got %d", len(ops))
	}
}

func TestOperations_HonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(pkgopenapi.NewParserOptions()).Operations(ctx, loadFixture(t)); err == nil {
		t.Fatalf("expected context error")
	}
}

func keys(ops map[string]pkgopenapi.Operation) []string {
	out := make([]string, 0, len(ops))
	for key := range ops {
		out = append(out, key)
	}
	return out
}
