package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/render"
)

func TestMergeAndSortHiddenFields(t *testing.T) {
	base := map[string]string{
		" existing ": "keep",
		"":           "ignored",
	}

	merged := render.MergeHiddenFields(base,
		render.CSRFToken("_csrf", "token123"),
		render.Hidden("version", 4),
		render.Hidden("  ", "skip"),
	)

	wantMerged := map[string]string{
		"existing": "keep",
		"_csrf":    "token123",
		"version":  "4",
	}
	if diff := cmp.Diff(wantMerged, merged); diff != "" {
		t.Fatalf("merged hidden fields mismatch (-want +got):\n%s", diff)
	}

	wantSorted := []render.HiddenField{
		{Name: "_csrf", Value: "token123"},
		{Name: "existing", Value: "keep"},
		{Name: "version", Value: "4"},
	}
	if diff := cmp.Diff(wantSorted, render.SortedHiddenFields(merged)); diff != "" {
		t.Fatalf("sorted hidden fields mismatch (-want +got):\n%s", diff)
	}

	if render.SortedHiddenFields(nil) != nil {
		t.Fatalf("expected nil for empty input")
	}
}

func TestResolveMethod(t *testing.T) {
	cases := []struct {
		in, method, override string
	}{
		{"", "POST", ""},
		{"get", "GET", ""},
		{"POST", "POST", ""},
		{"patch", "POST", "PATCH"},
		{"DELETE", "POST", "DELETE"},
	}
	for _, tc := range cases {
		method, override := render.ResolveMethod(tc.in)
		if method != tc.method || override != tc.override {
			t.Fatalf("ResolveMethod(%q) = %q, %q; want %q, %q", tc.in, method, override, tc.method, tc.override)
		}
	}
}
