// Package selection decides which files of a folder take part in a batch.
package selection

import (
	"slices"
	"strings"
)

// 🧹 ParseTokens splits a ";" separated filter into trimmed, lowercase,
// de-duplicated tokens in their original order.
func ParseTokens(raw string) []string {
	var tokens []string
	for _, part := range strings.Split(raw, ";") {
		token := strings.ToLower(strings.TrimSpace(part))
		if token == "" || slices.Contains(tokens, token) {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// 🎯 FilterSpec holds include and exclude substring tokens
type FilterSpec struct {
	Include []string
	Exclude []string
}

// NewFilterSpec parses raw include and exclude filters
func NewFilterSpec(include, exclude string) FilterSpec {
	return FilterSpec{
		Include: ParseTokens(include),
		Exclude: ParseTokens(exclude),
	}
}

// Match reports whether name passes the filter. Exclude tokens always win and
// an empty include set admits every name.
func (f FilterSpec) Match(name string) bool {
	lowered := strings.ToLower(name)
	if slices.ContainsFunc(f.Exclude, func(t string) bool { return strings.Contains(lowered, t) }) {
		return false
	}
	if len(f.Include) == 0 {
		return true
	}
	return slices.ContainsFunc(f.Include, func(t string) bool { return strings.Contains(lowered, t) })
}
