package render

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aescanero/dago-scaffold/internal/console"
	"github.com/aescanero/dago-scaffold/internal/metadata"
	"github.com/aescanero/dago-scaffold/internal/persist"
	"github.com/aescanero/dago-scaffold/internal/prompt"
	"github.com/aescanero/dago-scaffold/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	persist.Store
	saves int
}

func (s *failingStore) Save(context.Context, metadata.Context) error {
	s.saves++
	return errors.New("permission denied")
}

func baseData() metadata.Context {
	data := metadata.Seed(metadata.Reserved{DestDirName: "app", NoEscape: true})
	data["name"] = "Ada"
	return data
}

func TestRun_SubstitutesTokens(t *testing.T) {
	files := tree.Files{"README.md": {Contents: []byte("Hello {{name}}!")}}

	require.NoError(t, New(Config{}).Run(context.Background(), files, baseData()))
	assert.Equal(t, "Hello Ada!", string(files["README.md"].Contents))
}

func TestRun_TokenFreeFilesUntouched(t *testing.T) {
	binary := []byte{0x89, 'P', 'N', 'G', 0x00, 0xff, '{', '}'}
	files := tree.Files{
		"logo.png":  {Contents: binary},
		"plain.txt": {Contents: []byte("no tokens {here}")},
	}

	require.NoError(t, New(Config{}).Run(context.Background(), files, baseData()))
	assert.Equal(t, binary, files["logo.png"].Contents)
	assert.Equal(t, "no tokens {here}", string(files["plain.txt"].Contents))
}

func TestRun_SkipInterpolation(t *testing.T) {
	files := tree.Files{
		"src/App.vue":    {Contents: []byte("<p>{{ msg }}</p>")},
		".github/ci.yml": {Contents: []byte("name: {{name}}")},
		"src/index.txt":  {Contents: []byte("{{name}}")},
	}
	r := New(Config{SkipInterpolation: []string{"src/**/*.vue", ".github/**"}})

	require.NoError(t, r.Run(context.Background(), files, baseData()))
	assert.Equal(t, "<p>{{ msg }}</p>", string(files["src/App.vue"].Contents))
	assert.Equal(t, "name: {{name}}", string(files[".github/ci.yml"].Contents))
	assert.Equal(t, "Ada", string(files["src/index.txt"].Contents))
}

func TestRun_LeadingNegationSkipsNothing(t *testing.T) {
	files := tree.Files{
		"README.md": {Contents: []byte("{{destDirName}}")},
		"src/x.txt": {Contents: []byte("{{destDirName}}")},
	}
	r := New(Config{SkipInterpolation: []string{"!src/**"}})

	require.NoError(t, r.Run(context.Background(), files, baseData()))
	assert.Equal(t, "app", string(files["README.md"].Contents))
	assert.Equal(t, "app", string(files["src/x.txt"].Contents))
}

func TestRun_ErrorPrefixesPath(t *testing.T) {
	files := tree.Files{
		"a/b.txt": {Contents: []byte(`{{#if_eq name "x"}}unterminated`)},
		"ok.txt":  {Contents: []byte("{{name}}")},
	}

	err := New(Config{}).Run(context.Background(), files, baseData())
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "[a/b.txt] "), err.Error())
	assert.True(t, errors.Is(err, ErrSubstitution))

	var subErr *SubstitutionError
	require.True(t, errors.As(err, &subErr))
	assert.Equal(t, "a/b.txt", subErr.Path)
}

func TestRun_BoundedConcurrency(t *testing.T) {
	files := tree.Files{}
	for _, n := range []string{"a", "b", "c", "d", "e"} {
		files[n+".txt"] = &tree.File{Contents: []byte(n + "={{name}}")}
	}

	require.NoError(t, New(Config{Concurrency: 2}).Run(context.Background(), files, baseData()))
	assert.Equal(t, "c=Ada", string(files["c.txt"].Contents))
}

func TestRun_SavesWhenAccepted(t *testing.T) {
	store := persist.NewFileStore(filepath.Join(t.TempDir(), persist.DefaultFileName))
	asker := prompt.NewScripted(map[string]interface{}{"save": true})
	files := tree.Files{"x.txt": {Contents: []byte("{{name}}")}}

	r := New(Config{Store: store, Asker: asker, Console: console.New(&bytes.Buffer{})})
	require.NoError(t, r.Run(context.Background(), files, baseData()))

	saved, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ada", saved["name"])
	assert.Equal(t, "app", saved["destDirName"])
}

func TestRun_DeclinedSaveWritesNothing(t *testing.T) {
	store := persist.NewFileStore(filepath.Join(t.TempDir(), persist.DefaultFileName))
	asker := prompt.NewScripted(map[string]interface{}{"save": false})

	r := New(Config{Store: store, Asker: asker, Console: console.New(&bytes.Buffer{})})
	require.NoError(t, r.Run(context.Background(), tree.Files{}, baseData()))

	ok, err := store.Exists(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRun_SaveFailureIsNotFatal(t *testing.T) {
	store := &failingStore{}
	asker := prompt.NewScripted(map[string]interface{}{"save": true})
	var out bytes.Buffer
	files := tree.Files{"x.txt": {Contents: []byte("{{name}}")}}

	r := New(Config{Store: store, Asker: asker, Console: console.New(&out)})
	require.NoError(t, r.Run(context.Background(), files, baseData()))

	assert.Equal(t, 1, store.saves)
	assert.Contains(t, out.String(), "permission denied")
	assert.Equal(t, "Ada", string(files["x.txt"].Contents))
}

func TestRun_SavePromptFailureAborts(t *testing.T) {
	asker := &prompt.Scripted{Err: errors.New("closed")}
	files := tree.Files{"x.txt": {Contents: []byte("{{name}}")}}

	r := New(Config{Store: &failingStore{}, Asker: asker, Console: console.New(&bytes.Buffer{})})
	err := r.Run(context.Background(), files, baseData())
	require.Error(t, err)
	assert.True(t, errors.Is(err, prompt.ErrPrompt))
	assert.Equal(t, "{{name}}", string(files["x.txt"].Contents))
}
