package filter

import (
	"context"
	"errors"
	"testing"

	"github.com/aescanero/dago-scaffold/internal/eval/cel"
	"github.com/aescanero/dago-scaffold/internal/metadata"
	"github.com/aescanero/dago-scaffold/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFiles() tree.Files {
	return tree.Files{
		"README.md":         {Contents: []byte("# app")},
		"src/main.ts":       {Contents: []byte("ts")},
		"src/util.ts":       {Contents: []byte("ts")},
		"src/main.js":       {Contents: []byte("js")},
		"src/router/a.js":   {Contents: []byte("router")},
		".eslintrc.js":      {Contents: []byte("lint")},
		"test/unit/spec.js": {Contents: []byte("unit")},
	}
}

func evaluator(t *testing.T) *cel.Evaluator {
	t.Helper()
	e, err := cel.NewEvaluator([]string{"useTs", "router", "lint", "unit"})
	require.NoError(t, err)
	return e
}

func TestApply_NoRulesKeepsEverything(t *testing.T) {
	files := sampleFiles()
	removed, err := New(nil, nil).Apply(context.Background(), files, metadata.Context{})
	require.NoError(t, err)
	assert.Empty(t, removed)
	assert.Len(t, files, 7)
}

func TestApply_ExcludesWhenConditionFails(t *testing.T) {
	ev := evaluator(t)
	rules := []Rule{
		{Pattern: "src/*.ts", Condition: ev.Condition("useTs")},
		{Pattern: ".eslintrc.js", Condition: ev.Condition("lint")},
	}

	files := sampleFiles()
	removed, err := New(rules, nil).Apply(context.Background(), files, metadata.Context{"useTs": false, "lint": true})
	require.NoError(t, err)

	assert.Equal(t, []string{"src/main.ts", "src/util.ts"}, removed)
	assert.Contains(t, files, ".eslintrc.js")
	assert.Contains(t, files, "src/main.js")
}

func TestApply_AbsentKeyExcludes(t *testing.T) {
	ev := evaluator(t)
	files := sampleFiles()

	removed, err := New([]Rule{{Pattern: "src/router/**", Condition: ev.Condition("router")}}, nil).
		Apply(context.Background(), files, metadata.Context{})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/router/a.js"}, removed)
}

func TestApply_ExclusionIsSticky(t *testing.T) {
	ev := evaluator(t)
	rules := []Rule{
		{Pattern: "src/**", Condition: cel.Always},
		{Pattern: "src/*.ts", Condition: ev.Condition("useTs")},
		{Pattern: "**/*.ts", Condition: cel.Always},
	}

	files := sampleFiles()
	_, err := New(rules, nil).Apply(context.Background(), files, metadata.Context{"useTs": false})
	require.NoError(t, err)
	assert.NotContains(t, files, "src/main.ts")
}

func TestApply_NilConditionExcludes(t *testing.T) {
	files := sampleFiles()
	removed, err := New([]Rule{{Pattern: "test/**"}}, nil).Apply(context.Background(), files, metadata.Context{})
	require.NoError(t, err)
	assert.Equal(t, []string{"test/unit/spec.js"}, removed)
}

func TestApply_OrderIndependent(t *testing.T) {
	ev := evaluator(t)
	a := Rule{Pattern: "src/*.ts", Condition: ev.Condition("useTs")}
	b := Rule{Pattern: "test/**", Condition: ev.Condition("unit")}
	data := metadata.Context{"useTs": false, "unit": false}

	first := sampleFiles()
	second := sampleFiles()
	r1, err := New([]Rule{a, b}, nil).Apply(context.Background(), first, data)
	require.NoError(t, err)
	r2, err := New([]Rule{b, a}, nil).Apply(context.Background(), second, data)
	require.NoError(t, err)

	assert.Equal(t, r1, r2)
	assert.Equal(t, first.Paths(), second.Paths())
}

func TestApply_ConditionErrorLeavesFilesUntouched(t *testing.T) {
	ev := evaluator(t)
	files := sampleFiles()

	_, err := New([]Rule{
		{Pattern: "src/*.ts", Condition: ev.Condition("useTs")},
		{Pattern: "test/**", Condition: ev.Condition("!unit")},
	}, nil).Apply(context.Background(), files, metadata.Context{"useTs": false})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFilter))
	assert.Len(t, files, 7)
}

func TestApply_NegatedPattern(t *testing.T) {
	files := sampleFiles()
	removed, err := New([]Rule{{Pattern: "!src/**", Condition: cel.Never}}, nil).
		Apply(context.Background(), files, metadata.Context{})
	require.NoError(t, err)
	assert.Equal(t, []string{".eslintrc.js", "README.md", "test/unit/spec.js"}, removed)
	assert.Contains(t, files, "src/main.ts")
}
