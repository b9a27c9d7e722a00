package slotstore

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"goquote/internal/logger"
)

const tempPrefix = ".tmp-"

// File keeps one file per key in a directory. Several processes may share the
// directory; Watch reports their writes through fsnotify.
type File struct {
	dir string
	log *zap.Logger
}

func NewFile(dir string, log *zap.Logger) (*File, error) {
	if dir == "" {
		return nil, errors.New("slot directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create slot directory: %w", err)
	}
	return &File{dir: dir, log: logger.OrNop(log)}, nil
}

func (f *File) Dir() string {
	return f.dir
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, url.PathEscape(key))
}

func (f *File) Get(key string) (string, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set replaces the value atomically with a temp file and a rename.
func (f *File) Set(key, value string) error {
	tmp, err := os.CreateTemp(f.dir, tempPrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp slot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close slot %s: %w", key, err)
	}
	if err := os.Rename(tmpName, f.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to commit slot %s: %w", key, err)
	}
	return nil
}

func (f *File) Remove(key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove slot %s: %w", key, err)
	}
	return nil
}

// Keys lists every stored key.
func (f *File) Keys() ([]string, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), tempPrefix) {
			continue
		}
		if key, err := url.PathUnescape(entry.Name()); err == nil {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// Watch calls fn with the key of every slot file that is created, written,
// renamed or removed until ctx is done. Writes made by this process are
// reported as well.
func (f *File) Watch(ctx context.Context, fn func(key string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(f.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", f.dir, err)
	}
	f.log.Info("slot_watch_started", zap.String("dir", f.dir))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			name := filepath.Base(event.Name)
			if strings.HasPrefix(name, tempPrefix) {
				continue
			}
			key, err := url.PathUnescape(name)
			if err != nil {
				continue
			}
			fn(key)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			f.log.Warn("slot_watch_error", zap.Error(err))
		}
	}
}
