package search

import (
	"testing"

	"golang.org/x/text/language"
)

func TestMatcher_CaseInsensitiveSubstring(t *testing.T) {
	m := NewMatcher(language.Und)

	tests := []struct {
		text  string
		query string
		want  bool
	}{
		{"Smartphone", "phone", true},
		{"Smartphone", "PHONE", true},
		{"Smartphone", "Smart", true},
		{"Laptop", "phone", false},
		{"Coffee Maker", "maker", true},
		{"Coffee Maker", "", true}, // empty query matches everything
		{"", "", true},
		{"", "x", false},
	}
	for _, tc := range tests {
		if got := m.Contains(tc.text, tc.query); got != tc.want {
			t.Errorf("Contains(%q, %q) = %v, want %v", tc.text, tc.query, got, tc.want)
		}
	}
}

func TestMatcher_UnicodeFolding(t *testing.T) {
	m := NewMatcher(language.Und)
	if !m.Contains("Café Grinder", "CAFÉ") {
		t.Fatalf("expected case folding to match accented text")
	}
}
