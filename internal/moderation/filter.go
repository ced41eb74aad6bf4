// Package moderation provides the blocklist check applied to submitted text.
package moderation

import "strings"

// Filter rejects text containing any configured term. Matching is a
// case-insensitive substring check, so "class" trips a blocklist
// containing "ass".
type Filter struct {
	terms []string
}

// NewFilter lowers and trims the configured terms; empty terms are dropped.
func NewFilter(terms []string) *Filter {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return &Filter{terms: out}
}

// Blocked reports whether text contains a blocklisted term.
func (f *Filter) Blocked(text string) bool {
	if len(f.terms) == 0 {
		return false
	}
	lowered := strings.ToLower(text)
	for _, t := range f.terms {
		if strings.Contains(lowered, t) {
			return true
		}
	}
	return false
}
