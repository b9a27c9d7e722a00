package slotstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_GetSetRemove(t *testing.T) {
	store, err := NewFile(t.TempDir(), nil)
	require.NoError(t, err)

	_, found, err := store.Get("quoted_post_c1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set("quoted_post_c1", `{"postId":"p1"}`))
	require.NoError(t, store.Set("quoted_post_c1", `{"postId":"p2"}`))

	value, found, err := store.Get("quoted_post_c1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"postId":"p2"}`, value)

	require.NoError(t, store.Remove("quoted_post_c1"))
	_, found, err = store.Get("quoted_post_c1")
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, store.Remove("quoted_post_c1"))
}

func TestFile_KeysAreEscaped(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFile(dir, nil)
	require.NoError(t, err)

	require.NoError(t, store.Set("home_last_visited_u1_team/a", "/team/a/home"))
	require.NoError(t, store.Set("quoted_post_c1", "{}"))

	keys, err := store.Keys()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"home_last_visited_u1_team/a", "quoted_post_c1"}, keys)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.False(t, entry.IsDir())
	}
}

func TestFile_SharedDirectory(t *testing.T) {
	dir := t.TempDir()
	writer, err := NewFile(dir, nil)
	require.NoError(t, err)
	reader, err := NewFile(dir, nil)
	require.NoError(t, err)

	require.NoError(t, writer.Set("quoted_post_c1", "v"))

	value, found, err := reader.Get("quoted_post_c1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", value)
}

func TestFile_WatchReportsChanges(t *testing.T) {
	dir := t.TempDir()
	watched, err := NewFile(dir, nil)
	require.NoError(t, err)
	other, err := NewFile(dir, nil)
	require.NoError(t, err)

	rec := &keyRecorder{}
	startWatch(t, watched.Watch, rec)

	// give the watcher time to register the directory
	require.Eventually(t, func() bool {
		_ = other.Set("marker", "1")
		for _, k := range rec.snapshot() {
			if k == "marker" {
				return true
			}
		}
		return false
	}, 2*time.Second, 20*time.Millisecond)

	require.NoError(t, other.Set("quoted_post_c1", "v"))
	require.Eventually(t, func() bool {
		for _, k := range rec.snapshot() {
			if k == "quoted_post_c1" {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)

	for _, k := range rec.snapshot() {
		assert.NotContains(t, filepath.Base(k), tempPrefix)
	}
}

func TestNewFile_RequiresDir(t *testing.T) {
	_, err := NewFile("", nil)
	assert.Error(t, err)
}
