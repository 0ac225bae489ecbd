package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"

	pkgopenapi "github.com/goliatone/go-formkit/pkg/openapi"
)

// Loader implements pkgopenapi.Loader by delegating to file, fs.FS, or HTTP
// strategies. Construction helpers live in the root formkit package.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	maxBytes  int64
}

var _ pkgopenapi.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options pkgopenapi.LoaderOptions) *Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTP:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		maxBytes:  options.MaxBytes,
	}
}

// Load fetches a document from the provided source and wraps it in a Document.
func (l *Loader) Load(ctx context.Context, src pkgopenapi.Source) (pkgopenapi.Document, error) {
	if src == nil {
		return pkgopenapi.Document{}, errors.New("openapi loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return pkgopenapi.Document{}, err
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case pkgopenapi.SourceKindFile:
		data, err = l.loadFile(src.Location())
	case pkgopenapi.SourceKindFS:
		data, err = l.loadFromFS(src.Location())
	case pkgopenapi.SourceKindURL:
		if !l.allowHTTP {
			return pkgopenapi.Document{}, errors.New("openapi loader: http support disabled")
		}
		data, err = l.loadHTTP(ctx, src.Location())
	default:
		err = fmt.Errorf("openapi loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return pkgopenapi.Document{}, err
	}

	return pkgopenapi.NewDocument(src, data)
}

func (l *Loader) loadFile(path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("openapi loader: file path is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("openapi loader: open %s: %w", path, err)
	}
	defer f.Close()
	return l.read(f)
}

func (l *Loader) loadFromFS(name string) ([]byte, error) {
	if l.fs == nil {
		return nil, errors.New("openapi loader: filesystem is not configured")
	}
	if name == "" {
		return nil, errors.New("openapi loader: fs path is required")
	}
	f, err := l.fs.Open(name)
	if err != nil {
		return nil, fmt.Errorf("openapi loader: open %s: %w", name, err)
	}
	defer f.Close()
	return l.read(f)
}

func (l *Loader) loadHTTP(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("openapi loader: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.1")

	resp, err := l.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openapi loader: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("openapi loader: fetch %s: unexpected status %d", url, resp.StatusCode)
	}
	return l.read(resp.Body)
}

func (l *Loader) read(r io.Reader) ([]byte, error) {
	if l.maxBytes <= 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("openapi loader: read: %w", err)
		}
		return data, nil
	}

	data, err := io.ReadAll(io.LimitReader(r, l.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("openapi loader: read: %w", err)
	}
	if int64(len(data)) > l.maxBytes {
		return nil, fmt.Errorf("openapi loader: document exceeds %d bytes", l.maxBytes)
	}
	return data, nil
}

// timeoutFor is exposed for tests that assert client wiring.
func (l *Loader) timeoutFor() time.Duration {
	if l.http == nil {
		return 0
	}
	return l.http.Timeout
}
