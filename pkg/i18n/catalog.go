package i18n

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultLocale is used when a requested locale has no catalog entry.
const DefaultLocale = "en"

var (
	// ErrMissingTranslation is returned when neither the requested locale nor
	// the fallback locale defines a key.
	ErrMissingTranslation = errors.New("i18n: missing translation")
	// ErrMissingTranslator is passed to MissingTranslationHandler when no
	// translator has been configured.
	ErrMissingTranslator = errors.New("i18n: translator not configured")
)

// Translator resolves a message key for a locale. Args follow fmt verbs used
// inside the catalog entry.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler decides the string used when a translation is
// missing or failed.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

//go:embed locales/*.yaml
var embeddedLocales embed.FS

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Catalog is an in-memory Translator keyed by locale and dotted message key.
type Catalog struct {
	mu       sync.RWMutex
	fallback string
	messages map[string]map[string]string
}

// NewCatalog returns an empty catalog falling back to the supplied locale.
func NewCatalog(fallback string) *Catalog {
	fallback = normalizeLocale(fallback)
	if fallback == "" {
		fallback = DefaultLocale
	}
	return &Catalog{
		fallback: fallback,
		messages: make(map[string]map[string]string),
	}
}

// Default returns the catalog bundled with the module (English and Spanish).
// The instance is shared; callers wanting overrides should build their own
// catalog with LoadFS and Add.
func Default() *Catalog {
	defaultOnce.Do(func() {
		catalog, err := LoadFS(embeddedLocales, DefaultLocale)
		if err != nil {
			catalog = NewCatalog(DefaultLocale)
		}
		defaultCatalog = catalog
	})
	return defaultCatalog
}

// LoadFS walks fsys and loads every YAML or JSON file as a locale bundle. The
// locale is the file name without extension (locales/es.yaml -> "es").
// Nested maps and lists are flattened into dotted keys.
func LoadFS(fsys fs.FS, fallback string) (*Catalog, error) {
	catalog := NewCatalog(fallback)
	if fsys == nil {
		return catalog, nil
	}

	err := fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		ext := strings.ToLower(path.Ext(p))
		if ext != ".yaml" && ext != ".yml" && ext != ".json" {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("i18n: read %s: %w", p, err)
		}

		var raw map[string]any
		if ext == ".json" {
			err = json.Unmarshal(data, &raw)
		} else {
			err = yaml.Unmarshal(data, &raw)
		}
		if err != nil {
			return fmt.Errorf("i18n: parse %s: %w", p, err)
		}

		locale := strings.TrimSuffix(path.Base(p), path.Ext(p))
		messages := make(map[string]string)
		flatten("", raw, messages)
		catalog.Add(locale, messages)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

// Add merges messages into the catalog for locale. Later calls win on key
// collisions.
func (c *Catalog) Add(locale string, messages map[string]string) {
	if c == nil {
		return
	}
	locale = normalizeLocale(locale)
	if locale == "" || len(messages) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	bundle, ok := c.messages[locale]
	if !ok {
		bundle = make(map[string]string, len(messages))
		c.messages[locale] = bundle
	}
	for key, value := range messages {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		bundle[key] = value
	}
}

// Locales lists the locales with at least one message, sorted.
func (c *Catalog) Locales() []string {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Translate implements Translator. Resolution order is the exact locale, its
// base language ("es-MX" -> "es"), then the catalog fallback.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	if c == nil {
		return "", ErrMissingTranslator
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrMissingTranslation
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, candidate := range localeChain(locale, c.fallback) {
		bundle, ok := c.messages[candidate]
		if !ok {
			continue
		}
		msg, ok := bundle[key]
		if !ok {
			continue
		}
		if len(args) > 0 {
			return fmt.Sprintf(msg, args...), nil
		}
		return msg, nil
	}
	return "", fmt.Errorf("%w: %s (%s)", ErrMissingTranslation, key, locale)
}

// Lookup translates key and falls back to fallback (formatted with args) when
// the translator is nil or misses. onMissing, when set, takes precedence over
// the fallback.
func Lookup(t Translator, locale, key, fallback string, onMissing MissingTranslationHandler, args ...any) string {
	if t == nil {
		if onMissing != nil {
			return onMissing(locale, key, args, ErrMissingTranslator)
		}
		return formatFallback(key, fallback, args)
	}

	msg, err := t.Translate(locale, key, args...)
	if err == nil && strings.TrimSpace(msg) != "" {
		return msg
	}
	if onMissing != nil {
		return onMissing(locale, key, args, err)
	}
	return formatFallback(key, fallback, args)
}

func formatFallback(key, fallback string, args []any) string {
	if strings.TrimSpace(fallback) == "" {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(fallback, args...)
	}
	return fallback
}

func localeChain(locale, fallback string) []string {
	locale = normalizeLocale(locale)
	chain := make([]string, 0, 3)
	if locale != "" {
		chain = append(chain, locale)
		if idx := strings.IndexByte(locale, '-'); idx > 0 {
			chain = append(chain, locale[:idx])
		}
	}
	if fallback != "" && (len(chain) == 0 || chain[len(chain)-1] != fallback) {
		chain = append(chain, fallback)
	}
	return chain
}

func normalizeLocale(locale string) string {
	locale = strings.TrimSpace(locale)
	locale = strings.ReplaceAll(locale, "_", "-")
	return strings.ToLower(locale)
}

func flatten(prefix string, value any, dest map[string]string) {
	switch typed := value.(type) {
	case map[string]any:
		for key, child := range typed {
			flatten(joinKey(prefix, key), child, dest)
		}
	case map[any]any:
		for key, child := range typed {
			flatten(joinKey(prefix, fmt.Sprint(key)), child, dest)
		}
	case []any:
		for idx, child := range typed {
			flatten(joinKey(prefix, strconv.Itoa(idx)), child, dest)
		}
	case nil:
		if prefix != "" {
			dest[prefix] = ""
		}
	default:
		if prefix != "" {
			dest[prefix] = fmt.Sprint(typed)
		}
	}
}

func joinKey(prefix, key string) string {
	key = strings.TrimSpace(key)
	if prefix == "" {
		return key
	}
	if key == "" {
		return prefix
	}
	return prefix + "." + key
}
