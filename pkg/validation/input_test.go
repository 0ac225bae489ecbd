package validation_test

import (
	"testing"

	"github.com/goliatone/go-formkit/pkg/validation"
)

func TestTruncate(t *testing.T) {
	c := validation.New(validation.WithMaxLength(4))

	cases := map[string]string{
		"":          "",
		"abc":       "abc",
		"abcd":      "abcd",
		"abcdef":    "abcd",
		"ñañañaña":  "ñaña",
		"日本語テキスト": "日本語テ",
	}
	for in, want := range cases {
		got := validation.Truncate(in, c)
		if got != want {
			t.Fatalf("Truncate(%q) = %q, want %q", in, got, want)
		}
		if validation.Length(got) > 4 {
			t.Fatalf("Truncate(%q) exceeded maxLength: %q", in, got)
		}
	}

	if got := validation.Truncate("unbounded", validation.Constraint{}); got != "unbounded" {
		t.Fatalf("no maxLength should leave value untouched, got %q", got)
	}
	if got := validation.Truncate("abc", validation.New(validation.WithMaxLength(0))); got != "" {
		t.Fatalf("maxLength 0 should empty the value, got %q", got)
	}
}

func TestFilterNumeric(t *testing.T) {
	cases := []struct {
		kind validation.Kind
		in   string
		want string
	}{
		{validation.KindNumber, "12a3", "123"},
		{validation.KindNumber, "-45", "45"},
		{validation.KindNumber, "1.5", "15"},
		{validation.KindDecimal, "1.5.7", "1.57"},
		{validation.KindDecimal, "-0.25", "0.25"},
		{validation.KindDecimal, "abc", ""},
		{validation.KindText, "-a.b", "-a.b"},
		{validation.KindEmail, "a-b@c.d", "a-b@c.d"},
	}
	for _, tc := range cases {
		if got := validation.FilterNumeric(tc.in, tc.kind); got != tc.want {
			t.Fatalf("FilterNumeric(%q, %s) = %q, want %q", tc.in, tc.kind, got, tc.want)
		}
	}
}

func TestAcceptsRune(t *testing.T) {
	if validation.AcceptsRune('-', validation.KindNumber) || validation.AcceptsRune('-', validation.KindDecimal) {
		t.Fatalf("numeric kinds must reject minus")
	}
	if !validation.AcceptsRune('-', validation.KindText) {
		t.Fatalf("text accepts minus")
	}
}

func TestHintsFor(t *testing.T) {
	if got := validation.HintsFor(validation.KindDecimal); got.Step != "0.01" || got.Min != "0" || got.Type != "number" {
		t.Fatalf("unexpected decimal hints %#v", got)
	}
	if got := validation.HintsFor(validation.KindNumber); got.Step != "1" {
		t.Fatalf("unexpected number hints %#v", got)
	}
	if got := validation.HintsFor(""); got.Type != "text" {
		t.Fatalf("unexpected default hints %#v", got)
	}
}
