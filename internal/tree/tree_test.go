package tree

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
}

func TestRead(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "README.md", "# {{name}}")
	writeFile(t, root, "src/main.ts", "export {}")
	writeFile(t, root, ".gitignore", "node_modules")
	writeFile(t, root, ".git/HEAD", "ref")

	files, err := Read(root)
	require.NoError(t, err)

	assert.Equal(t, []string{".gitignore", "README.md", "src/main.ts"}, files.Paths())
	assert.Equal(t, "# {{name}}", string(files["README.md"].Contents))
	assert.Equal(t, os.FileMode(0644), files["README.md"].Mode)
}

func TestRead_MissingRoot(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestWrite_KeepsExistingContent(t *testing.T) {
	dest := t.TempDir()
	writeFile(t, dest, "keep.txt", "mine")
	writeFile(t, dest, "a/b.txt", "old")

	files := Files{
		"a/b.txt":     {Contents: []byte("new"), Mode: 0644},
		"bin/run.sh":  {Contents: []byte("#!/bin/sh"), Mode: 0755},
		"empty/x.txt": {Contents: []byte{}},
	}
	require.NoError(t, Write(context.Background(), dest, files))

	got, err := os.ReadFile(filepath.Join(dest, "a", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))

	got, err = os.ReadFile(filepath.Join(dest, "keep.txt"))
	require.NoError(t, err)
	assert.Equal(t, "mine", string(got))

	info, err := os.Stat(filepath.Join(dest, "bin", "run.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

func TestWrite_RejectsEscapingPaths(t *testing.T) {
	err := Write(context.Background(), t.TempDir(), Files{"../evil": {Contents: []byte("x")}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWrite))
}

func TestClone(t *testing.T) {
	files := Files{"a": {Contents: []byte("x")}}
	cp := files.Clone()
	cp["a"].Contents[0] = 'y'
	assert.Equal(t, "x", string(files["a"].Contents))
}
