package persist

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aescanero/dago-scaffold/internal/metadata"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	ok, err := store.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.Load(ctx)
	assert.True(t, errors.Is(err, ErrNotFound))

	first := metadata.Context{"name": "app", "useTs": true, "destDirName": "app"}
	require.NoError(t, store.Save(ctx, first))

	second := metadata.Context{"name": "other"}
	require.NoError(t, store.Save(ctx, second))

	ok, err = store.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	saved, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"name": "other"}, saved)

	require.NoError(t, store.Delete(ctx))
	ok, err = store.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore(t *testing.T) {
	exerciseStore(t, NewFileStore(filepath.Join(t.TempDir(), DefaultFileName)))
}

func TestFileStore_RoundTripTypes(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), DefaultFileName))

	require.NoError(t, store.Save(ctx, metadata.Context{
		"port":     8080,
		"features": map[string]interface{}{"router": true},
	}))

	saved, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8080.0, saved["port"])
	assert.Equal(t, map[string]interface{}{"router": true}, saved["features"])
}

func TestFileStore_RejectsNonObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("[1,2]"), 0644))

	_, err := NewFileStore(path).Load(context.Background())
	assert.Error(t, err)
}

func TestFileStore_SaveFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", DefaultFileName)
	err := NewFileStore(path).Save(context.Background(), metadata.Context{"a": 1})
	assert.Error(t, err)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client, "vue-webpack", 0, nil)
	assert.Equal(t, "scaffold:save:vue-webpack", store.Key())
	exerciseStore(t, store)
}

func TestRedisStore_TTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client, "tpl", time.Hour, nil)
	require.NoError(t, store.Save(context.Background(), metadata.Context{"a": "b"}))
	assert.Equal(t, time.Hour, mr.TTL(store.Key()))
}
