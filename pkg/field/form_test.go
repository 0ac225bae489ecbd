package field_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/testsupport"
	"github.com/goliatone/go-formkit/pkg/validation"
)

func TestParse_ContactFixture(t *testing.T) {
	set := testsupport.ContactSet(t)

	if set.ID != "contact" || set.EffectiveMethod() != "POST" {
		t.Fatalf("unexpected set header %+v", set)
	}
	want := []string{"name", "email", "age", "budget", "topic", "message", "birthday", "attachment", "terms"}
	if diff := cmp.Diff(want, set.Names()); diff != "" {
		t.Fatalf("field names mismatch (-want +got):\n%s", diff)
	}

	email, ok := set.Field("email")
	if !ok || email.Kind() != validation.KindEmail {
		t.Fatalf("expected email field with email kind, got %+v", email)
	}
}

func TestParse_RejectsBadSets(t *testing.T) {
	cases := map[string]struct {
		doc  string
		want error
	}{
		"missing name": {
			doc:  "id: x\nfields:\n  - label: Nameless\n",
			want: field.ErrFieldName,
		},
		"duplicate": {
			doc:  "id: x\nfields:\n  - name: a\n  - name: a\n",
			want: field.ErrDuplicateField,
		},
		"unknown control": {
			doc:  "id: x\nfields:\n  - name: a\n    control: slider\n",
			want: field.ErrUnknownControl,
		},
		"select without options": {
			doc:  "id: x\nfields:\n  - name: a\n    control: select\n",
			want: field.ErrMissingOptions,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := field.Parse([]byte(tc.doc))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	_, err := field.Parse([]byte("id: x\nfields:\n  - name: a\n    constraint:\n      minLength: 5\n      maxLength: 1\n"))
	var constraintErr *validation.ConstraintError
	if !errors.As(err, &constraintErr) {
		t.Fatalf("expected constraint error, got %v", err)
	}
}

func TestParse_JSON(t *testing.T) {
	set, err := field.Parse([]byte(`{"id":"j","fields":[{"name":"a","control":"EMAIL","constraint":{"required":true}}]}`))
	if err != nil {
		t.Fatalf("parse json: %v", err)
	}
	if set.Fields[0].Control != field.ControlEmail {
		t.Fatalf("control should be normalised, got %q", set.Fields[0].Control)
	}
}

func TestForm_SubmitReportsEveryField(t *testing.T) {
	form := field.NewForm(testsupport.ContactSet(t))

	result := form.Submit()
	if result.Valid {
		t.Fatalf("empty contact form should be invalid")
	}
	want := map[string]string{
		"name":  "field is required",
		"email": "field is required",
		"topic": "field is required",
		"terms": "You must accept the terms",
	}
	if diff := cmp.Diff(want, result.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_BindAndSubmit(t *testing.T) {
	form := field.NewForm(testsupport.ContactSet(t))
	form.Bind(map[string][]string{
		"name":       {"Ada"},
		"email":      {"ada@example.com"},
		"age":        {"-36"},
		"topic":      {"support"},
		"message":    {strings.Repeat("x", 600)},
		"attachment": {"a.txt", "b.txt"},
		"terms":      {"on"},
	})

	result := form.Submit()
	if !result.Valid {
		t.Fatalf("expected valid submission, got %#v", result.Errors)
	}
	if result.Values["age"] != "36" {
		t.Fatalf("expected filtered age, got %#v", result.Values["age"])
	}
	if got := result.Values["message"].(string); len(got) != 500 {
		t.Fatalf("expected truncated message, got %d chars", len(got))
	}
	if result.Values["terms"] != true {
		t.Fatalf("expected checked terms, got %#v", result.Values["terms"])
	}
	if diff := cmp.Diff([]string{"a.txt", "b.txt"}, result.Values["attachment"]); diff != "" {
		t.Fatalf("attachment mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_ChangeUnknownField(t *testing.T) {
	form := field.NewForm(testsupport.ContactSet(t))
	if _, err := form.Change("nope", "x"); !errors.Is(err, field.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	verdict, err := form.Change("email", "bad")
	if err != nil || verdict.Rule != validation.RuleEmail {
		t.Fatalf("expected email failure, got %#v (%v)", verdict, err)
	}
	if _, err := form.Change("terms", "true"); err != nil {
		t.Fatalf("change checkbox: %v", err)
	}
	if s, _ := form.State("terms"); !s.Checked {
		t.Fatalf("expected terms checked")
	}
}

func TestForm_ApplyServerErrors(t *testing.T) {
	form := field.NewForm(testsupport.ContactSet(t))
	mapping := form.ApplyServerErrors(map[string][]string{
		"/data/attributes/email": {"Email already registered"},
		"body.topic[0]":          {"Topic closed"},
		"non_field_errors":       {"Try again later"},
		"unknown":                {"Upstream failure"},
	})

	wantFields := map[string][]string{
		"email": {"Email already registered"},
		"topic": {"Topic closed"},
	}
	if diff := cmp.Diff(wantFields, mapping.Fields); diff != "" {
		t.Fatalf("field mapping mismatch (-want +got):\n%s", diff)
	}
	if len(form.FormErrors()) != 2 {
		t.Fatalf("expected two form-level errors, got %#v", form.FormErrors())
	}

	errs := form.Errors()
	if errs["email"] != "Email already registered" || errs["topic"] != "Topic closed" {
		t.Fatalf("unexpected field errors %#v", errs)
	}

	form.Reset()
	if len(form.Errors()) != 0 || len(form.FormErrors()) != 0 {
		t.Fatalf("reset should clear errors")
	}
}

func TestWithDefaults(t *testing.T) {
	form := field.NewForm(testsupport.ContactSet(t), field.WithDefaults(map[string]string{"name": "Grace"}))
	if s, _ := form.State("name"); s.Value != "Grace" {
		t.Fatalf("expected default value, got %q", s.Value)
	}
}

func TestFilterOptions(t *testing.T) {
	topic, _ := testsupport.ContactSet(t).Field("topic")

	got := topic.FilterOptions("SUP")
	if len(got) != 1 || got[0].Value != "support" {
		t.Fatalf("unexpected filtered options %#v", got)
	}
	if len(topic.FilterOptions("")) != 3 {
		t.Fatalf("empty term keeps every option")
	}
	if len(topic.FilterOptions("zzz")) != 0 {
		t.Fatalf("expected no matches")
	}
}
