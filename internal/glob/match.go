// Package glob matches slash-separated relative paths against glob
// patterns. Dot-files always match.
package glob

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Match reports whether path survives the ordered pattern list.
// Positive patterns add the path, negated patterns only remove an
// earlier match, so a list of negations alone matches nothing.
// Invalid patterns never match.
func Match(patterns []string, path string) bool {
	matched := false
	for _, pattern := range patterns {
		if negated := strings.TrimPrefix(pattern, "!"); negated != pattern {
			if matched && matchOne(negated, path) {
				matched = false
			}
			continue
		}
		if !matched && matchOne(pattern, path) {
			matched = true
		}
	}
	return matched
}

// MatchPattern matches path against a single pattern. A leading `!`
// inverts the result.
func MatchPattern(pattern, path string) bool {
	if negated := strings.TrimPrefix(pattern, "!"); negated != pattern {
		return !matchOne(negated, path)
	}
	return matchOne(pattern, path)
}

// Valid reports whether every pattern in the list is well formed
func Valid(patterns ...string) bool {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(strings.TrimPrefix(pattern, "!")) {
			return false
		}
	}
	return true
}

func matchOne(pattern, path string) bool {
	ok, err := doublestar.Match(pattern, path)
	return err == nil && ok
}
