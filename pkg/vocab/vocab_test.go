package vocab

import (
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	s := Default()
	if s.Fallback() != "en-US" {
		t.Errorf("Fallback() = %q, want en-US", s.Fallback())
	}
	names := s.Names()
	if len(names) < 2 {
		t.Fatalf("Names() = %v, want at least two locales", names)
	}
	for _, name := range names {
		_, l := s.Lookup(name)
		if err := l.validate(); err != nil {
			t.Errorf("locale %s: %v", name, err)
		}
	}
}

func TestLookup(t *testing.T) {
	s := Default()
	tests := []struct {
		language string
		want     string
	}{
		{"en-US", "en-US"},
		{"ru-RU", "ru-RU"},
		{"RU-ru", "ru-RU"},
		{"de-DE", "de-DE"},
		{"fr-FR", "en-US"},
		{"", "en-US"},
		{"klingon", "en-US"},
	}
	for _, tt := range tests {
		t.Run(tt.language, func(t *testing.T) {
			got, l := s.Lookup(tt.language)
			if got != tt.want {
				t.Errorf("Lookup(%q) = %q, want %q", tt.language, got, tt.want)
			}
			if l == nil {
				t.Errorf("Lookup(%q) returned nil locale", tt.language)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	full := `
    words: [a]
    artistTypes: [a]
    albumWords: [a]
    genres: [a]
    reviews: [a]
    firstNames: [a]
    lastNames: [a]
`
	tests := []struct {
		name string
		data string
		want string
	}{
		{"invalid yaml", "fallback: [", "couldn't parse"},
		{"no fallback", "locales:\n  xx:" + full, "fallback locale not defined"},
		{"missing fallback", "fallback: en-US\nlocales:\n  xx:" + full, `"en-US" not found`},
		{"empty list", "fallback: xx\nlocales:\n  xx:\n    words: [a]\n", "artistTypes is empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.data))
			if err == nil {
				t.Fatalf("Load() err = nil, want error containing %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() err = %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestLoadValid(t *testing.T) {
	data := `
fallback: xx
locales:
  xx:
    words: [a, b]
    artistTypes: [c]
    albumWords: [d]
    genres: [e]
    reviews: [f]
    firstNames: [g]
    lastNames: [h]
`
	s, err := Load([]byte(data))
	if err != nil {
		t.Fatalf("Load() err = %v", err)
	}
	name, l := s.Lookup("unknown")
	if name != "xx" || len(l.Words) != 2 {
		t.Errorf("Lookup(unknown) = %q %v, want xx with two words", name, l.Words)
	}
}
