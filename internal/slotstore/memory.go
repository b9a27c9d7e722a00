// Package slotstore provides the durable key-value backends that hold pending
// quote slots.
package slotstore

import (
	"context"
	"sync"
)

// Memory is a process-local store shared by any number of views. Each view
// plays the part of one document: its own writes are not reported to its own
// watchers, only to the watchers of the other views.
type Memory struct {
	mu       sync.RWMutex
	data     map[string]string
	watchers map[*MemoryView][]func(key string)
}

func NewMemory() *Memory {
	return &Memory{
		data:     make(map[string]string),
		watchers: make(map[*MemoryView][]func(key string)),
	}
}

// View opens a new document over the shared data.
func (m *Memory) View() *MemoryView {
	return &MemoryView{store: m}
}

func (m *Memory) get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.data[key]
	return value, ok
}

func (m *Memory) set(origin *MemoryView, key, value string) {
	m.mu.Lock()
	m.data[key] = value
	m.mu.Unlock()
	m.broadcast(origin, key)
}

func (m *Memory) remove(origin *MemoryView, key string) {
	m.mu.Lock()
	_, existed := m.data[key]
	delete(m.data, key)
	m.mu.Unlock()
	if existed {
		m.broadcast(origin, key)
	}
}

func (m *Memory) broadcast(origin *MemoryView, key string) {
	m.mu.RLock()
	var fns []func(string)
	for view, viewFns := range m.watchers {
		if view == origin {
			continue
		}
		for _, fn := range viewFns {
			if fn != nil {
				fns = append(fns, fn)
			}
		}
	}
	m.mu.RUnlock()

	for _, fn := range fns {
		fn(key)
	}
}

func (m *Memory) addWatcher(view *MemoryView, fn func(string)) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.watchers[view] = append(m.watchers[view], fn)
	return len(m.watchers[view]) - 1
}

func (m *Memory) removeWatcher(view *MemoryView, idx int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fns := m.watchers[view]
	if idx < len(fns) {
		fns[idx] = nil
	}
	for _, fn := range fns {
		if fn != nil {
			return
		}
	}
	delete(m.watchers, view)
}

// MemoryView is one document's handle on a Memory store.
type MemoryView struct {
	store *Memory
}

func (v *MemoryView) Get(key string) (string, bool, error) {
	value, ok := v.store.get(key)
	return value, ok, nil
}

func (v *MemoryView) Set(key, value string) error {
	v.store.set(v, key, value)
	return nil
}

func (v *MemoryView) Remove(key string) error {
	v.store.remove(v, key)
	return nil
}

// Watch reports keys written through other views until ctx is done.
func (v *MemoryView) Watch(ctx context.Context, fn func(key string)) error {
	idx := v.store.addWatcher(v, fn)
	<-ctx.Done()
	v.store.removeWatcher(v, idx)
	return nil
}
