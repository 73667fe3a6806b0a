// Package config is the key/value configuration consulted by the tagger.
//
// Values are plain strings keyed by section name. A switch is "on" when
// its value contains the substring "1", so "1", "10" and "yes1" all
// enable while "0", "" and "true" disable.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Well-known sections.
const (
	SectionTagger       = "tagger"
	SectionVerbose      = "verbose"
	SectionLexicon      = "lexicon"
	SectionRegexLexicon = "regex_lexicon"
	SectionStore        = "store"
	SectionStopwords    = "stopwords"
	SectionStopwordType = "stopword_type"
	SectionAddr         = "addr"
)

// EnvPrefix prefixes environment overrides: POSTAG_TAGGER=0 overrides
// the "tagger" section.
const EnvPrefix = "POSTAG_"

// Store is a read-only view of configuration sections.
type Store interface {
	// Get returns the value of section and whether it is set.
	Get(section string) (string, bool)
}

// Value returns the value of section, or def when store is nil or the
// section is unset.
func Value(store Store, section, def string) string {
	if store == nil {
		return def
	}
	if v, ok := store.Get(section); ok {
		return v
	}
	return def
}

// Enabled applies the "contains 1" rule to section, falling back to def.
func Enabled(store Store, section, def string) bool {
	return strings.Contains(Value(store, section, def), "1")
}

// Map is an in-memory Store.
type Map map[string]string

// Get implements Store.
func (m Map) Get(section string) (string, bool) {
	v, ok := m[section]
	return v, ok
}

// File is a Store loaded from a YAML document of top-level scalar
// sections, with POSTAG_* environment variables taking precedence.
type File struct {
	Path   string
	values map[string]string
}

// Load reads the YAML file at path. A missing file yields an empty
// configuration (every section falls back to its default).
func Load(path string) (*File, error) {
	f := &File{Path: path, values: make(map[string]string)}
	if path == "" {
		return f, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return f, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := f.parse(data); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return f, nil
}

// Parse builds a File from YAML bytes.
func Parse(data []byte) (*File, error) {
	f := &File{values: make(map[string]string)}
	if err := f.parse(data); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) parse(data []byte) error {
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	for section, node := range raw {
		if node.Kind != yaml.ScalarNode {
			return fmt.Errorf("section %q: expected a scalar value", section)
		}
		f.values[section] = node.Value
	}
	return nil
}

// Get implements Store. Environment overrides win over file values.
func (f *File) Get(section string) (string, bool) {
	if v, ok := os.LookupEnv(EnvPrefix + strings.ToUpper(section)); ok {
		return v, true
	}
	v, ok := f.values[section]
	return v, ok
}

// Set overrides a section in memory.
func (f *File) Set(section, value string) {
	f.values[section] = value
}
