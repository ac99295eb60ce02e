package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aescanero/dago-scaffold/internal/config"
	"github.com/aescanero/dago-scaffold/internal/persist"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestProjectName(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	assert.Equal(t, filepath.Base(wd), projectName("."))
	assert.Equal(t, filepath.Base(wd), projectName("./"))
	assert.Equal(t, "app", projectName("out/app"))
	assert.Equal(t, "app", projectName(filepath.Join(t.TempDir(), "app")))
}

func TestSaveIDDistinguishesParents(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a", "vue")
	b := filepath.Join(root, "b", "vue")

	assert.NotEqual(t, saveID(a), saveID(b))
	assert.Equal(t, saveID(a), saveID(filepath.Join(root, "a", ".", "vue")))
}

func TestStores_RedisKeysOnAbsolutePath(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{SaveBackend: config.BackendRedis, RedisAddr: mr.Addr()}
	factory := stores(cfg, client, zap.NewNop())

	root := t.TempDir()
	a, ok := factory(filepath.Join(root, "a", "vue")).(*persist.RedisStore)
	require.True(t, ok)
	b, ok := factory(filepath.Join(root, "b", "vue")).(*persist.RedisStore)
	require.True(t, ok)

	assert.NotEqual(t, a.Key(), b.Key())
	assert.Equal(t, persist.RedisKeyPrefix+saveID(filepath.Join(root, "a", "vue")), a.Key())
}

func TestStores_FileBackend(t *testing.T) {
	cfg := &config.Config{SaveBackend: config.BackendFile, SaveFile: "answers.json"}
	store, ok := stores(cfg, nil, zap.NewNop())("/tmp/tmpl").(*persist.FileStore)
	require.True(t, ok)
	assert.Equal(t, filepath.Join("/tmp/tmpl", "answers.json"), store.Path)
}
