package vocab

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed locales.yaml
var locales []byte

// Locale holds the word lists of a single language.
type Locale struct {
	Words       []string `yaml:"words"`
	ArtistTypes []string `yaml:"artistTypes"`
	AlbumWords  []string `yaml:"albumWords"`
	Genres      []string `yaml:"genres"`
	Reviews     []string `yaml:"reviews"`
	FirstNames  []string `yaml:"firstNames"`
	LastNames   []string `yaml:"lastNames"`
}

func (l *Locale) validate() error {
	lists := []struct {
		name string
		v    []string
	}{
		{"words", l.Words},
		{"artistTypes", l.ArtistTypes},
		{"albumWords", l.AlbumWords},
		{"genres", l.Genres},
		{"reviews", l.Reviews},
		{"firstNames", l.FirstNames},
		{"lastNames", l.LastNames},
	}
	for _, list := range lists {
		if len(list.v) == 0 {
			return fmt.Errorf("%s is empty", list.name)
		}
	}
	return nil
}

type file struct {
	Fallback string             `yaml:"fallback"`
	Locales  map[string]*Locale `yaml:"locales"`
}

// Set is an immutable collection of locales with a fallback.
type Set struct {
	fallback string
	locales  map[string]*Locale
	keys     map[string]string
}

// Load parses and validates vocabulary tables in YAML format.
func Load(b []byte) (*Set, error) {
	var f file
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("vocab: couldn't parse tables: %w", err)
	}
	if f.Fallback == "" {
		return nil, fmt.Errorf("vocab: fallback locale not defined")
	}
	if _, ok := f.Locales[f.Fallback]; !ok {
		return nil, fmt.Errorf("vocab: fallback locale %q not found", f.Fallback)
	}
	keys := make(map[string]string, len(f.Locales))
	for name, l := range f.Locales {
		if l == nil {
			return nil, fmt.Errorf("vocab: locale %q is empty", name)
		}
		if err := l.validate(); err != nil {
			return nil, fmt.Errorf("vocab: locale %q: %w", name, err)
		}
		keys[strings.ToLower(name)] = name
	}
	return &Set{
		fallback: f.Fallback,
		locales:  f.Locales,
		keys:     keys,
	}, nil
}

var defaultSet = mustLoad(locales)

func mustLoad(b []byte) *Set {
	s, err := Load(b)
	if err != nil {
		panic(err)
	}
	return s
}

// Default returns the embedded vocabulary tables.
func Default() *Set {
	return defaultSet
}

// Fallback returns the name of the fallback locale.
func (s *Set) Fallback() string {
	return s.fallback
}

// Names returns the supported locale names sorted alphabetically.
func (s *Set) Names() []string {
	var names []string
	for name := range s.locales {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves a language to a supported locale.
// Unknown languages resolve to the fallback locale.
func (s *Set) Lookup(language string) (string, *Locale) {
	name, ok := s.keys[strings.ToLower(language)]
	if !ok {
		name = s.fallback
	}
	return name, s.locales[name]
}
