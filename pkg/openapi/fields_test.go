package openapi_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/openapi"
)

func intPtr(n int) *int { return &n }

func signupOperation() openapi.Operation {
	return openapi.Operation{
		ID:      "createAccount",
		Method:  "POST",
		Path:    "/signup",
		Summary: "Create an account",
		RequestBody: openapi.Schema{
			Type:     "object",
			Required: []string{"username", "email", "plan"},
			Extensions: map[string]string{
				openapi.ExtensionOrder: "username,email",
			},
			Properties: map[string]openapi.Schema{
				"username":  {Type: "string", MinLength: intPtr(3), MaxLength: intPtr(20), Extensions: map[string]string{openapi.ExtensionLabel: "Handle"}},
				"email":     {Type: "string", Format: "email", Extensions: map[string]string{openapi.ExtensionErrorMessage: "Bad address"}},
				"plan":      {Type: "string", Enum: []any{"free", "pro", "team", "enterprise"}, Default: "free"},
				"tier":      {Type: "string", Enum: []any{"a", "b"}},
				"birthDate": {Type: "string", Format: "date"},
				"tags":      {Type: "array", Items: &openapi.Schema{Type: "string", Enum: []any{"x", "y"}}, Default: []any{"x"}},
				"avatar":    {Type: "string", Format: "binary"},
				"accept":    {Type: "boolean"},
			},
		},
	}
}

func TestFieldSet_ConvertsProperties(t *testing.T) {
	set, err := openapi.FieldSet(signupOperation())
	if err != nil {
		t.Fatalf("field set: %v", err)
	}

	if set.ID != "createAccount" || set.Action != "/signup" || set.EffectiveMethod() != "POST" || set.Title != "Create an account" {
		t.Fatalf("unexpected set header %+v", set)
	}

	wantOrder := []string{"username", "email", "accept", "avatar", "birthDate", "plan", "tags", "tier"}
	if diff := cmp.Diff(wantOrder, set.Names()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}

	wantControls := map[string]field.Control{
		"username":  field.ControlText,
		"email":     field.ControlEmail,
		"accept":    field.ControlCheckbox,
		"avatar":    field.ControlFile,
		"birthDate": field.ControlDate,
		"plan":      field.ControlSelect,
		"tags":      field.ControlSelect,
		"tier":      field.ControlRadio,
	}
	for _, f := range set.Fields {
		if f.Control != wantControls[f.Name] {
			t.Fatalf("%s: expected %q, got %q", f.Name, wantControls[f.Name], f.Control)
		}
	}

	username, _ := set.Field("username")
	if username.Label != "Handle" || !username.Constraint.Required || *username.Constraint.MinLength != 3 {
		t.Fatalf("unexpected username field %+v", username)
	}

	email, _ := set.Field("email")
	if email.ErrorMessage != "Bad address" {
		t.Fatalf("expected error message override, got %q", email.ErrorMessage)
	}

	birth, _ := set.Field("birthDate")
	if birth.Label != "Birth date" {
		t.Fatalf("expected humanized label, got %q", birth.Label)
	}

	tags, _ := set.Field("tags")
	if !tags.Multiple || tags.Default != "x" || len(tags.Options) != 2 {
		t.Fatalf("unexpected tags field %+v", tags)
	}

	plan, _ := set.Field("plan")
	if plan.Default != "free" || len(plan.Options) != 4 {
		t.Fatalf("unexpected plan field %+v", plan)
	}
}

func TestFieldSet_NoBody(t *testing.T) {
	_, err := openapi.FieldSet(openapi.Operation{ID: "ping"})
	if !errors.Is(err, openapi.ErrNoRequestBody) {
		t.Fatalf("expected ErrNoRequestBody, got %v", err)
	}
}
