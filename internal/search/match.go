// Package search provides a small, deterministic, concurrency-safe
// substring matcher used by the catalog's product search. It is a thin
// library with no logging (callers decide how/what to log).
//
// Matching is case-insensitive and Unicode-aware, built on
// golang.org/x/text/search so that case folding follows the locale rules
// rather than ASCII-only lowering.
package search

import (
	"golang.org/x/text/language"
	textsearch "golang.org/x/text/search"
)

// Matcher performs case-insensitive substring matching.
// A Matcher is immutable after construction and safe for concurrent use.
type Matcher struct {
	m *textsearch.Matcher
}

// NewMatcher builds a Matcher for the given locale. The zero language tag
// (language.Und) is valid and uses the default collation rules.
func NewMatcher(tag language.Tag) *Matcher {
	return &Matcher{m: textsearch.New(tag, textsearch.IgnoreCase)}
}

// Contains reports whether query occurs within text, ignoring case.
// An empty query matches any text.
func (s *Matcher) Contains(text, query string) bool {
	if query == "" {
		return true
	}
	start, _ := s.m.IndexString(text, query)
	return start >= 0
}
