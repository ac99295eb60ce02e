package glob

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		path     string
		want     bool
	}{
		{"empty list", nil, "a.txt", false},
		{"simple star", []string{"src/*.ts"}, "src/main.ts", true},
		{"star stays in segment", []string{"src/*.ts"}, "src/deep/main.ts", false},
		{"double star", []string{"src/**/*.ts"}, "src/deep/main.ts", true},
		{"dot file", []string{"*"}, ".eslintrc", true},
		{"dot dir", []string{"**/*.js"}, ".github/ci.js", true},
		{"braces", []string{"test/{unit,e2e}/**"}, "test/e2e/specs/a.js", true},
		{"negation removes", []string{"src/**", "!src/vendor/**"}, "src/vendor/x.js", false},
		{"negation keeps others", []string{"src/**", "!src/vendor/**"}, "src/app.js", true},
		{"leading negation matches nothing", []string{"!**/*.png"}, "src/app.js", false},
		{"leading negation excludes", []string{"!**/*.png"}, "img/logo.png", false},
		{"negation before positive", []string{"!README.md", "*.md"}, "README.md", true},
		{"later positive readds", []string{"*.md", "!README.md", "README.md"}, "README.md", true},
		{"invalid pattern", []string{"[unclosed"}, "a", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.patterns, tt.path))
		})
	}
}

func TestMatchPattern(t *testing.T) {
	assert.True(t, MatchPattern("src/*.ts", "src/main.ts"))
	assert.False(t, MatchPattern("src/*.ts", "src/main.js"))
	assert.True(t, MatchPattern("!**/*.png", "src/app.js"))
	assert.False(t, MatchPattern("!**/*.png", "img/logo.png"))
	assert.True(t, MatchPattern(".*", ".env"))
	assert.False(t, MatchPattern("[unclosed", "a"))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("src/**", "!*.png"))
	assert.False(t, Valid("src/[", "ok"))
}
