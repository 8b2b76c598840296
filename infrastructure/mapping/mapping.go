// Package mapping defines the campus code reconciliation artifact: a YAML
// document listing which duplicate campus codes fold into which canonical
// ones. A default mapping covering the known historical duplicates is
// embedded; operators can supply their own file to extend it.
package mapping

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed campus_codes.yaml
var defaultMappingYAML []byte

// Entry folds one duplicate campus code into a canonical one.
type Entry struct {
	Duplicate string `yaml:"duplicate"`
	Canonical string `yaml:"canonical"`
	Note      string `yaml:"note,omitempty"`
}

// Mapping is the full reconciliation artifact.
type Mapping struct {
	Entries []Entry `yaml:"mappings"`
}

// Default returns the embedded mapping of known historical duplicates.
func Default() (Mapping, error) {
	return parse(defaultMappingYAML)
}

// Load reads a mapping artifact from a YAML file.
func Load(path string) (Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Mapping{}, fmt.Errorf("read mapping file: %w", err)
	}
	m, err := parse(data)
	if err != nil {
		return Mapping{}, fmt.Errorf("mapping file %s: %w", path, err)
	}
	return m, nil
}

func parse(data []byte) (Mapping, error) {
	var m Mapping
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Mapping{}, fmt.Errorf("unmarshal mapping: %w", err)
	}
	if err := m.Validate(); err != nil {
		return Mapping{}, err
	}
	return m, nil
}

// Validate checks the artifact for structural mistakes: blank codes,
// self-mappings, a duplicate listed twice, and chains where a canonical
// code is itself scheduled for folding.
func (m Mapping) Validate() error {
	seen := make(map[string]bool, len(m.Entries))
	duplicates := make(map[string]bool, len(m.Entries))
	for _, e := range m.Entries {
		if e.Duplicate == "" || e.Canonical == "" {
			return fmt.Errorf("mapping entry with blank code: %+v", e)
		}
		if e.Duplicate == e.Canonical {
			return fmt.Errorf("mapping entry folds %s into itself", e.Duplicate)
		}
		if seen[e.Duplicate] {
			return fmt.Errorf("duplicate code %s mapped more than once", e.Duplicate)
		}
		seen[e.Duplicate] = true
		duplicates[e.Duplicate] = true
	}
	for _, e := range m.Entries {
		if duplicates[e.Canonical] {
			return fmt.Errorf("canonical code %s is itself mapped as a duplicate", e.Canonical)
		}
	}
	return nil
}

// CanonicalFor returns the canonical code for the given code, or the code
// itself when it is not mapped.
func (m Mapping) CanonicalFor(code string) string {
	for _, e := range m.Entries {
		if e.Duplicate == code {
			return e.Canonical
		}
	}
	return code
}
