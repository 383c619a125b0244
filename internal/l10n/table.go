package l10n

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Table is the on-disk string table format.
//
//	internal:
//	  outline1: Outline 1
//	locales:
//	  de:
//	    Outline: Gliederung
type Table struct {
	Internal map[string]string            `yaml:"internal"`
	Locales  map[string]map[string]string `yaml:"locales"`
}

//go:embed strings.yaml
var builtinStrings []byte

// Builtin returns the string table shipped with the binary.
func Builtin() (Table, error) {
	return Parse(builtinStrings)
}

// Parse decodes a YAML string table.
func Parse(data []byte) (Table, error) {
	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return Table{}, fmt.Errorf("decode string table: %w", err)
	}
	return table, nil
}

// LoadFile reads a YAML string table from disk.
func LoadFile(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("read string table: %w", err)
	}
	return Parse(data)
}

// NewDefault returns a translator over the builtin table, extended by the
// tables at extraPaths.
func NewDefault(extraPaths ...string) (*Translator, error) {
	builtin, err := Builtin()
	if err != nil {
		return nil, err
	}
	tables := []Table{builtin}
	for _, path := range extraPaths {
		if path == "" {
			continue
		}
		table, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return New(tables...)
}
