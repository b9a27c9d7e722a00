package slotstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goquote/internal/common"
	"goquote/internal/config"
)

func TestPebble_GetSetRemove(t *testing.T) {
	store, err := OpenPebble(filepath.Join(t.TempDir(), "slots"), nil)
	require.NoError(t, err)
	defer store.Close()

	_, found, err := store.Get("quoted_post_c1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set("quoted_post_c1", `{"postId":"p1"}`))
	value, found, err := store.Get("quoted_post_c1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"postId":"p1"}`, value)

	require.NoError(t, store.Remove("quoted_post_c1"))
	_, found, err = store.Get("quoted_post_c1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPebble_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slots")

	store, err := OpenPebble(path, nil)
	require.NoError(t, err)
	require.NoError(t, store.Set("quoted_post_c1", "persisted"))
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())

	reopened, err := OpenPebble(path, nil)
	require.NoError(t, err)
	defer reopened.Close()

	value, found, err := reopened.Get("quoted_post_c1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "persisted", value)
}

func TestPebble_KeysByPrefix(t *testing.T) {
	store, err := OpenPebble(filepath.Join(t.TempDir(), "slots"), nil)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set("quoted_post_a", "1"))
	require.NoError(t, store.Set("quoted_post_b", "2"))
	require.NoError(t, store.Set("home_last_visited_u1_t", "/t"))

	keys, err := store.Keys("quoted_post_")
	require.NoError(t, err)
	assert.Equal(t, []string{"quoted_post_a", "quoted_post_b"}, keys)

	all, err := store.Keys("")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestOpen_Backends(t *testing.T) {
	dir := t.TempDir()

	mem, cleanup, err := Open(config.StorageConfig{Backend: BackendMemory}, nil)
	require.NoError(t, err)
	cleanup()
	_, ok := mem.(common.WatchableStorage)
	assert.True(t, ok)

	file, cleanup, err := Open(config.StorageConfig{Backend: BackendFile, Path: filepath.Join(dir, "files")}, nil)
	require.NoError(t, err)
	cleanup()
	_, ok = file.(common.WatchableStorage)
	assert.True(t, ok)

	peb, cleanup, err := Open(config.StorageConfig{Backend: BackendPebble, Path: filepath.Join(dir, "pebble")}, nil)
	require.NoError(t, err)
	_, ok = peb.(common.WatchableStorage)
	assert.False(t, ok)
	cleanup()

	_, cleanup, err = Open(config.StorageConfig{Backend: "redis"}, nil)
	assert.Error(t, err)
	cleanup()
}
