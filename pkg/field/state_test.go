package field_test

import (
	"testing"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/validation"
)

func TestState_ChangeTruncatesAndValidates(t *testing.T) {
	s := field.NewState(field.Field{
		Name:       "name",
		Constraint: validation.New(validation.WithRequired(), validation.WithMinLength(2), validation.WithMaxLength(4)),
	}, nil)

	verdict := s.Change("a")
	if verdict.Rule != validation.RuleMinLength || !s.HasError() {
		t.Fatalf("expected visible minLength error, got %#v", verdict)
	}
	if s.Message() != "minimum length is 2 characters" {
		t.Fatalf("unexpected message %q", s.Message())
	}

	verdict = s.Change("abcdefgh")
	if s.Value != "abcd" {
		t.Fatalf("expected truncated value, got %q", s.Value)
	}
	if !verdict.Valid || s.HasError() || s.Message() != "" {
		t.Fatalf("truncated value should be valid, got %#v", verdict)
	}

	s.Change("")
	if s.Message() != "field is required" {
		t.Fatalf("unexpected message %q", s.Message())
	}
}

func TestState_NumericFiltering(t *testing.T) {
	s := field.NewState(field.Field{Name: "amount", Control: field.ControlDecimal}, nil)
	s.Change("-12.5.0x")
	if s.Value != "12.50" {
		t.Fatalf("expected filtered decimal, got %q", s.Value)
	}

	n := field.NewState(field.Field{Name: "qty", Control: field.ControlNumber}, nil)
	n.Change("-4.2")
	if n.Value != "42" {
		t.Fatalf("expected filtered number, got %q", n.Value)
	}
}

func TestState_OverrideMessageWins(t *testing.T) {
	s := field.NewState(field.Field{
		Name:         "terms",
		Control:      field.ControlCheckbox,
		ErrorMessage: "Please accept",
		Constraint:   validation.New(validation.WithRequired()),
	}, nil)

	if s.HasError() {
		t.Fatalf("fresh state should not show an error")
	}
	s.Invalid()
	if s.Message() != "Please accept" {
		t.Fatalf("override should win, got %q", s.Message())
	}
	if s.Verdict().Message != "field is required" {
		t.Fatalf("verdict keeps the computed message, got %q", s.Verdict().Message)
	}

	s.SetChecked(true)
	if s.HasError() || s.Message() != "" {
		t.Fatalf("checked box should clear the error")
	}
}

func TestState_RequiredOnlyControls(t *testing.T) {
	s := field.NewState(field.Field{
		Name:       "q",
		Control:    field.ControlSearch,
		Constraint: validation.New(validation.WithMinLength(5), validation.WithKind(validation.KindEmail)),
	}, nil)
	if verdict := s.Change("ab"); !verdict.Valid {
		t.Fatalf("search only checks required, got %#v", verdict)
	}
}

func TestState_FileCount(t *testing.T) {
	s := field.NewState(field.Field{
		Name:       "upload",
		Control:    field.ControlFile,
		Constraint: validation.New(validation.WithRequired()),
	}, nil)

	if verdict := s.SetItems(nil); verdict.Valid {
		t.Fatalf("expected required failure without files")
	}
	if verdict := s.SetItems([]string{" ", "cv.pdf"}); !verdict.Valid {
		t.Fatalf("expected valid with one file, got %#v", verdict)
	}
	items, ok := s.Submitted().([]string)
	if !ok || len(items) != 1 || items[0] != "cv.pdf" {
		t.Fatalf("unexpected submitted items %#v", s.Submitted())
	}
}

func TestState_CheckDoesNotRevealError(t *testing.T) {
	s := field.NewState(field.Field{Name: "name", Constraint: validation.New(validation.WithRequired())}, nil)
	if verdict := s.Check(); verdict.Valid {
		t.Fatalf("expected failing verdict")
	}
	if s.HasError() {
		t.Fatalf("Check must not reveal the error")
	}
	s.Blur()
	if !s.HasError() || !s.Touched {
		t.Fatalf("Blur should reveal the error and mark the field touched")
	}
}

func TestState_ServerErrorsClearOnChange(t *testing.T) {
	s := field.NewState(field.Field{Name: "email", Control: field.ControlEmail}, nil)
	s.SetServerErrors([]string{" already taken ", "already taken"})
	if !s.HasError() || s.Message() != "already taken" {
		t.Fatalf("expected server error on display, got %q", s.Message())
	}
	s.Change("new@example.com")
	if s.HasError() {
		t.Fatalf("changing the value should drop server errors")
	}
}

func TestState_Localized(t *testing.T) {
	engine := validation.NewEngine(validation.WithLocale("es"))
	s := field.NewState(field.Field{Name: "email", Control: field.ControlEmail}, engine)
	s.Change("nope")
	if s.Message() != "Email inválido" {
		t.Fatalf("unexpected message %q", s.Message())
	}
}

func TestState_Defaults(t *testing.T) {
	box := field.NewState(field.Field{Name: "news", Control: field.ControlCheckbox, Default: "true"}, nil)
	if !box.Checked {
		t.Fatalf("expected default checked")
	}
	text := field.NewState(field.Field{
		Name:       "code",
		Default:    "abcdef",
		Constraint: validation.New(validation.WithMaxLength(3)),
	}, nil)
	if text.Value != "abc" {
		t.Fatalf("defaults are truncated like typed input, got %q", text.Value)
	}
}
