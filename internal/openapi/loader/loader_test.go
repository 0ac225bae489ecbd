package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	pkgopenapi "github.com/goliatone/go-formkit/pkg/openapi"
)

const document = `{"openapi":"3.0.0","info":{"title":"t","version":"1"},"paths":{}}`

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := os.WriteFile(path, []byte(document), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	doc, err := New(pkgopenapi.NewLoaderOptions()).Load(context.Background(), pkgopenapi.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != document || doc.Location() != path {
		t.Fatalf("unexpected document %q from %s", doc.Raw(), doc.Location())
	}
}

func TestLoad_FS(t *testing.T) {
	fsys := fstest.MapFS{"specs/doc.json": {Data: []byte(document)}}

	l := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithFileSystem(fsys)))
	if _, err := l.Load(context.Background(), pkgopenapi.SourceFromFS("specs/doc.json")); err != nil {
		t.Fatalf("load fs: %v", err)
	}

	bare := New(pkgopenapi.NewLoaderOptions())
	if _, err := bare.Load(context.Background(), pkgopenapi.SourceFromFS("specs/doc.json")); err == nil {
		t.Fatalf("expected error without filesystem")
	}
}

func TestLoad_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(document))
	}))
	defer server.Close()

	src, err := pkgopenapi.SourceFromURL(server.URL + "/doc.json")
	if err != nil {
		t.Fatalf("source: %v", err)
	}

	if _, err := New(pkgopenapi.NewLoaderOptions()).Load(context.Background(), src); err == nil {
		t.Fatalf("http should be disabled by default")
	}

	l := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithHTTP(2 * time.Second)))
	if l.timeoutFor() != 2*time.Second {
		t.Fatalf("expected timeout to reach the client, got %v", l.timeoutFor())
	}
	doc, err := l.Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load http: %v", err)
	}
	if string(doc.Raw()) != document {
		t.Fatalf("unexpected body %q", doc.Raw())
	}

	missing, _ := pkgopenapi.SourceFromURL(server.URL + "/missing")
	if _, err := l.Load(context.Background(), missing); err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestLoad_MaxBytes(t *testing.T) {
	fsys := fstest.MapFS{"doc.json": {Data: []byte(document)}}
	l := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithFileSystem(fsys), pkgopenapi.WithMaxBytes(10)))
	if _, err := l.Load(context.Background(), pkgopenapi.SourceFromFS("doc.json")); err == nil {
		t.Fatalf("expected size error")
	}
}

func TestSourceFromURL_Rejects(t *testing.T) {
	for _, raw := range []string{"", "not a url", "ftp://example.com/doc.json"} {
		if _, err := pkgopenapi.SourceFromURL(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}
