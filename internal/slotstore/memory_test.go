package slotstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type keyRecorder struct {
	mu   sync.Mutex
	keys []string
}

func (r *keyRecorder) record(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, key)
}

func (r *keyRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.keys...)
}

func startWatch(t *testing.T, watch func(ctx context.Context, fn func(string)) error, rec *keyRecorder) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = watch(ctx, rec.record)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func TestMemoryView_GetSetRemove(t *testing.T) {
	view := NewMemory().View()

	_, found, err := view.Get("quoted_post_c1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, view.Set("quoted_post_c1", `{"postId":"p1"}`))
	value, found, err := view.Get("quoted_post_c1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"postId":"p1"}`, value)

	require.NoError(t, view.Remove("quoted_post_c1"))
	_, found, _ = view.Get("quoted_post_c1")
	assert.False(t, found)

	assert.NoError(t, view.Remove("never-set"))
}

func TestMemoryView_ViewsShareData(t *testing.T) {
	store := NewMemory()
	tab1, tab2 := store.View(), store.View()

	require.NoError(t, tab1.Set("k", "v"))

	value, found, err := tab2.Get("k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", value)
}

func TestMemoryView_WatchSkipsOwnWrites(t *testing.T) {
	store := NewMemory()
	tab1, tab2 := store.View(), store.View()

	own, other := &keyRecorder{}, &keyRecorder{}
	startWatch(t, tab1.Watch, own)
	startWatch(t, tab2.Watch, other)

	require.Eventually(t, func() bool {
		store.mu.RLock()
		defer store.mu.RUnlock()
		return len(store.watchers) == 2
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, tab1.Set("quoted_post_c1", "x"))
	require.NoError(t, tab1.Remove("quoted_post_c1"))
	require.NoError(t, tab1.Remove("quoted_post_c1"))

	assert.Empty(t, own.snapshot())
	assert.Equal(t, []string{"quoted_post_c1", "quoted_post_c1"}, other.snapshot())
}

func TestMemoryView_WatchStopsOnCancel(t *testing.T) {
	store := NewMemory()
	tab1, tab2 := store.View(), store.View()

	rec := &keyRecorder{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = tab2.Watch(ctx, rec.record)
	}()

	require.Eventually(t, func() bool {
		store.mu.RLock()
		defer store.mu.RUnlock()
		return len(store.watchers) == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done

	require.NoError(t, tab1.Set("k", "v"))
	assert.Empty(t, rec.snapshot())
}
