package field

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes a YAML or JSON field set and checks it.
func Parse(data []byte) (Set, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Set{}, fmt.Errorf("field: empty document")
	}

	var set Set
	if err := yaml.Unmarshal(data, &set); err != nil {
		return Set{}, fmt.Errorf("field: decode set: %w", err)
	}
	for idx := range set.Fields {
		control, _ := ParseControl(string(set.Fields[idx].Control))
		set.Fields[idx].Control = control
		set.Fields[idx].Name = strings.TrimSpace(set.Fields[idx].Name)
	}
	if err := set.Check(); err != nil {
		return Set{}, err
	}
	return set, nil
}

// Load reads a field set from r.
func Load(r io.Reader) (Set, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Set{}, fmt.Errorf("field: read set: %w", err)
	}
	return Parse(data)
}

// LoadFS reads a field set stored at name inside fsys.
func LoadFS(fsys fs.FS, name string) (Set, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Set{}, fmt.Errorf("field: read %s: %w", name, err)
	}
	set, err := Parse(data)
	if err != nil {
		return Set{}, fmt.Errorf("%s: %w", name, err)
	}
	return set, nil
}
