package testsupport

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/field"
)

//go:embed testdata/*.yaml
var fixtures embed.FS

// ContactSet returns the bundled contact form fixture. It covers every
// validation mode: full rules, required-only choices, checked and counted
// controls.
func ContactSet(t *testing.T) field.Set {
	t.Helper()

	set, err := LoadSet("contact.yaml")
	if err != nil {
		t.Fatalf("load contact set: %v", err)
	}
	return set
}

// LoadSet loads a bundled fixture without requiring testing.T so callers can
// wire fixtures in setup functions.
func LoadSet(name string) (field.Set, error) {
	if name == "" {
		return field.Set{}, errors.New("testsupport: fixture name is required")
	}
	set, err := field.LoadFS(fixtures, filepath.ToSlash(filepath.Join("testdata", name)))
	if err != nil {
		return field.Set{}, fmt.Errorf("testsupport: %w", err)
	}
	return set, nil
}

// MustLoadSetFile loads a field set from disk.
func MustLoadSetFile(t *testing.T, path string) field.Set {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open field set: %v", err)
	}
	defer f.Close()

	set, err := field.Load(f)
	if err != nil {
		t.Fatalf("load field set: %v", err)
	}
	return set
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureOutput runs render against a buffer and returns both the returned
// string and what was written, so tests can assert they agree.
func CaptureOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out, buf.String()
}
